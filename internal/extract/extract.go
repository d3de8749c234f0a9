// Package extract reads positioned text fragments out of documents.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/mind-engage/mcq-reviewer/internal/layout"
)

var (
	ErrNoPages      = errors.New("document has no pages")
	ErrNotSupported = errors.New("unsupported document type")
)

// Error is a failed extraction. No partial text accompanies it.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Source returns every page of a document, in page order.
type Source interface {
	Extract(ctx context.Context, path string) ([]layout.Page, error)
}

// PageSource hands pages to yield one at a time, in page order. An error
// from yield stops the walk and is returned.
type PageSource interface {
	Pages(ctx context.Context, path string, yield func(layout.Page) error) error
}

// Document feeds every page of path through a layout.Builder and returns the
// normalized document text and page count.
func Document(ctx context.Context, src PageSource, path string) (string, int, error) {
	var b layout.Builder
	err := src.Pages(ctx, path, func(p layout.Page) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.AddPage(p)
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return b.Text(), b.Pages(), nil
}

// collect adapts a PageSource into Extract semantics.
func collect(ctx context.Context, src PageSource, path string) ([]layout.Page, error) {
	var pages []layout.Page
	err := src.Pages(ctx, path, func(p layout.Page) error {
		pages = append(pages, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}
