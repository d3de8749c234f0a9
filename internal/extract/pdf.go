package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/mind-engage/mcq-reviewer/internal/layout"
	"github.com/mind-engage/mcq-reviewer/internal/logger"
)

// PDFSource extracts word boxes with poppler's pdftotext -bbox.
type PDFSource struct {
	Bin      string // defaults to "pdftotext"
	MaxPages int    // 0 = all
	Runner   Runner
	Log      *logger.Logger
}

func NewPDFSource(bin string, maxPages int, log *logger.Logger) *PDFSource {
	return &PDFSource{Bin: bin, MaxPages: maxPages, Runner: ExecRunner{Log: log}, Log: log}
}

func (s *PDFSource) Extract(ctx context.Context, path string) ([]layout.Page, error) {
	return collect(ctx, s, path)
}

func (s *PDFSource) Pages(ctx context.Context, path string, yield func(layout.Page) error) error {
	bin := s.Bin
	if bin == "" {
		bin = "pdftotext"
	}
	runner := s.Runner
	if runner == nil {
		runner = ExecRunner{Log: s.Log}
	}

	// pdftotext -bbox -enc UTF-8 [-l N] <path> -
	args := []string{"-bbox", "-enc", "UTF-8"}
	if s.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(s.MaxPages))
	}
	args = append(args, path, "-")
	out, errb, err := runner.Run(ctx, bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			err = fmt.Errorf("%w: %s", err, truncate(msg, 512))
		}
		return &Error{Op: "pdftotext", Path: path, Err: err}
	}

	pages, err := ParseBBox(out)
	if err != nil {
		return &Error{Op: "parse", Path: path, Err: err}
	}
	logger.OrNop(s.Log).Debug("pdf extracted", "path", path, "pages", len(pages))
	for _, p := range pages {
		if err := yield(p); err != nil {
			return err
		}
	}
	return nil
}

// ParseBBox converts pdftotext -bbox XHTML into pages of fragments. The tool
// measures y downward from the top of the page; fragments carry y measured
// upward so that a larger Y is higher on the page.
func ParseBBox(data []byte) ([]layout.Page, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing bbox xml: %w", err)
	}
	pageNodes := xmlquery.Find(doc, "//page")
	if len(pageNodes) == 0 {
		return nil, ErrNoPages
	}

	pages := make([]layout.Page, 0, len(pageNodes))
	for i, pn := range pageNodes {
		height, err := floatAttr(pn, "height")
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		var page layout.Page
		for _, w := range xmlquery.Find(pn, "word") {
			text := w.InnerText()
			if strings.TrimSpace(text) == "" {
				continue
			}
			xMin, err := floatAttr(w, "xMin")
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", i+1, err)
			}
			yMax, err := floatAttr(w, "yMax")
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", i+1, err)
			}
			page = append(page, layout.Fragment{X: xMin, Y: height - yMax, Text: text})
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func floatAttr(n *xmlquery.Node, name string) (float64, error) {
	raw := n.SelectAttr(name)
	if raw == "" {
		return 0, errors.New("missing attribute " + name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", name, err)
	}
	return v, nil
}
