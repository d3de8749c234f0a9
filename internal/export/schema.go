package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

//go:embed questions.schema.json
var questionsSchema []byte

var ErrInvalidDocument = errors.New("invalid question document")

func invalid(err error) error { return fmt.Errorf("%w: %v", ErrInvalidDocument, err) }

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("questions.schema.json", bytes.NewReader(questionsSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("questions.schema.json")
	})
	return schema, schemaErr
}

func validateValue(v any) error {
	s, err := compiled()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return invalid(err)
	}
	return nil
}

// DecodeJSON reads a JSON export. The document must be an array of valid
// question records.
func DecodeJSON(b []byte) ([]mcq.Question, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, invalid(err)
	}
	if err := validateValue(v); err != nil {
		return nil, err
	}
	var qs []mcq.Question
	if err := json.Unmarshal(b, &qs); err != nil {
		return nil, invalid(err)
	}
	for i := range qs {
		q, err := normalizeRecord(qs[i])
		if err != nil {
			return nil, invalid(fmt.Errorf("record %d: %w", i+1, err))
		}
		qs[i] = q
	}
	return qs, nil
}

var optionLetters = "ABCDEF"

// normalizeRecord holds an imported record to the invariants of parsed ones:
// trimmed stem and option text, uppercase unique option keys (missing keys
// take their letter by position) and at least mcq.MinOptions options.
func normalizeRecord(q mcq.Question) (mcq.Question, error) {
	q.Question = strings.TrimSpace(q.Question)
	q.Explanation = strings.TrimSpace(q.Explanation)
	q.AnswerKey = strings.ToUpper(strings.TrimSpace(q.AnswerKey))
	seen := make(map[string]bool, len(q.Options))
	opts := make([]mcq.Option, len(q.Options))
	for i, o := range q.Options {
		key := strings.ToUpper(strings.TrimSpace(o.Key))
		if key == "" && i < len(optionLetters) {
			key = optionLetters[i : i+1]
		}
		text := strings.TrimSpace(o.Text)
		switch {
		case key == "":
			return q, fmt.Errorf("option %d has no key", i+1)
		case text == "":
			return q, fmt.Errorf("option %s is empty", key)
		case seen[key]:
			return q, fmt.Errorf("duplicate option key %s", key)
		}
		seen[key] = true
		opts[i] = mcq.Option{Key: key, Text: text}
	}
	q.Options = opts
	if !q.Valid() {
		return q, fmt.Errorf("needs a question and at least %d options", mcq.MinOptions)
	}
	return q, nil
}
