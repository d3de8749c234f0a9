// Package mcq turns normalized document text into multiple-choice question
// records: it segments the text into numbered blocks, extracts stems and
// lettered options from each block and correlates them with an answer key.
package mcq

// Option is one lettered choice of a question.
type Option struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// Question is a parsed question record. AnswerKey is a single uppercase
// letter, or empty when the answer is unknown. It is not checked against the
// option keys.
type Question struct {
	Number      int      `json:"number" yaml:"number"`
	Question    string   `json:"question" yaml:"question"`
	Options     []Option `json:"options" yaml:"options"`
	AnswerKey   string   `json:"answerKey" yaml:"answerKey"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// MinOptions is the number of options a record needs to be kept.
const MinOptions = 3

// Valid reports whether q has a stem and at least MinOptions options.
func (q Question) Valid() bool {
	return q.Question != "" && len(q.Options) >= MinOptions
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]Option(nil), q.Options...)
	return c
}

// CloneAll deep-copies a question list. A nil list stays nil.
func CloneAll(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// Block is the raw text attributed to one detected question number.
type Block struct {
	Number int
	Body   string
}

// AnswerKeyEntry is one line of a separate answer-key section.
type AnswerKeyEntry struct {
	Number      int
	Letter      string
	Explanation string
}
