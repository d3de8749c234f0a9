package extract

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mind-engage/mcq-reviewer/internal/layout"
)

// FragmentsSource reads pre-extracted fragments from a JSON file holding an
// array of pages, each an array of {"x","y","text"} objects.
type FragmentsSource struct{}

func (FragmentsSource) Extract(ctx context.Context, path string) ([]layout.Page, error) {
	return collect(ctx, FragmentsSource{}, path)
}

func (FragmentsSource) Pages(_ context.Context, path string, yield func(layout.Page) error) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return &Error{Op: "read", Path: path, Err: err}
	}
	pages, err := DecodeFragments(b)
	if err != nil {
		return &Error{Op: "decode", Path: path, Err: err}
	}
	for _, p := range pages {
		if err := yield(p); err != nil {
			return err
		}
	}
	return nil
}

func DecodeFragments(b []byte) ([]layout.Page, error) {
	var pages []layout.Page
	if err := json.Unmarshal(b, &pages); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}
