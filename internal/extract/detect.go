package extract

import (
	"path/filepath"
	"strings"

	"github.com/mind-engage/mcq-reviewer/internal/logger"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindPDF
	KindFragments
	KindText
)

// DetectKind guesses the document kind from the file extension.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF
	case ".json":
		return KindFragments
	case ".txt", ".text", ".md":
		return KindText
	}
	return KindUnknown
}

// SourceFor returns the PageSource for kind. Plain text has no fragments, so
// KindText and KindUnknown return ErrNotSupported.
func SourceFor(kind Kind, pdftotext string, maxPages int, log *logger.Logger) (PageSource, error) {
	switch kind {
	case KindPDF:
		return NewPDFSource(pdftotext, maxPages, log), nil
	case KindFragments:
		return FragmentsSource{}, nil
	}
	return nil, ErrNotSupported
}
