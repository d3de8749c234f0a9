// Package export writes parsed question sets to files and reads them back.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatXLSX   Format = "xlsx"
	FormatJSONXZ Format = "json.xz"
	FormatQTI    Format = "qti.zip"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatXLSX, FormatJSONXZ, FormatQTI:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "qti":
		return FormatQTI, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSONXZ:
		return "application/x-xz"
	case FormatQTI:
		return "application/zip"
	}
	return "application/json"
}

// FileName is the default download name for f.
func (f Format) FileName() string { return "mcq_questions." + string(f) }

// Encode renders qs in format f.
func Encode(f Format, qs []mcq.Question) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(qs)
	case FormatYAML:
		return YAML(qs)
	case FormatXLSX:
		return XLSX(qs)
	case FormatJSONXZ:
		return JSONXZ(qs)
	case FormatQTI:
		return QTI(qs)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// Write encodes qs and copies the result to w.
func Write(w io.Writer, f Format, qs []mcq.Question) error {
	b, err := Encode(f, qs)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// JSON is the indented, human-readable export.
func JSON(qs []mcq.Question) ([]byte, error) {
	if qs == nil {
		qs = []mcq.Question{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(qs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
