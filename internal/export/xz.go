package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

// JSONXZ is the JSON export compressed with xz.
func JSONXZ(qs []mcq.Question) ([]byte, error) {
	raw, err := JSON(qs)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("xz writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeJSONXZ(b []byte) ([]mcq.Question, error) {
	r, err := xz.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, invalid(err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, invalid(err)
	}
	return DecodeJSON(raw)
}
