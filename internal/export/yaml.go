package export

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

func YAML(qs []mcq.Question) ([]byte, error) {
	if qs == nil {
		qs = []mcq.Question{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(qs); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeYAML reads a YAML export back and validates it like DecodeJSON.
func DecodeYAML(b []byte) ([]mcq.Question, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, invalid(err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, invalid(err)
	}
	return DecodeJSON(raw)
}
