package mcq

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/mind-engage/mcq-reviewer/internal/layout"
	"github.com/mind-engage/mcq-reviewer/internal/textnorm"
)

// Result is the outcome of parsing one document.
type Result struct {
	Questions   []Question
	Blocks      int    // blocks found by the segmenter
	Rejected    int    // blocks without two option labels, or failing Valid
	KeyEntries  int    // usable lines in the answer-key section
	Fingerprint string // BLAKE3 of the normalized text
}

// Fingerprint returns the hex BLAKE3 digest of normalized document text.
func Fingerprint(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Parse runs the full text pipeline on raw text: normalize, segment, extract
// every block, correlate with the answer key and keep valid records only.
// An empty result is not an error.
func Parse(raw string) Result {
	text := textnorm.Normalize(raw)
	seg := Segment(text)
	key := ParseAnswerKey(seg.AnswerKeyText)

	res := Result{
		Questions:   []Question{},
		Blocks:      len(seg.Blocks),
		KeyEntries:  len(key),
		Fingerprint: Fingerprint(text),
	}
	for _, b := range seg.Blocks {
		q, ok := ExtractQuestion(b)
		if !ok {
			res.Rejected++
			continue
		}
		q = Correlate(q, key)
		if !q.Valid() {
			res.Rejected++
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res
}

// ParseText is Parse returning the question list only. It is the ingestion
// path for pasted text, which has no page geometry.
func ParseText(raw string) []Question {
	return Parse(raw).Questions
}

// ParsePages reconstructs lines from positioned fragments and parses the
// resulting document text.
func ParsePages(pages []layout.Page) Result {
	return Parse(layout.DocumentText(pages))
}
