package mcq

import (
	"regexp"
	"strconv"
	"strings"
)

var reKeyLine = regexp.MustCompile(`(?i)^(\d{1,4})\s*[).:\-]?\s*([A-D])\b(?:\s*[-–—:]\s*(.+))?$`)

// ParseAnswerKey reads an answer-key section. Lines of the form
// "5) B - note" map question 5 to letter B with explanation "note". Lines that
// do not match are ignored; a later line for the same number wins.
func ParseAnswerKey(text string) map[int]AnswerKeyEntry {
	out := make(map[int]AnswerKeyEntry)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := reKeyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out[n] = AnswerKeyEntry{
			Number:      n,
			Letter:      strings.ToUpper(m[2]),
			Explanation: strings.TrimSpace(m[3]),
		}
	}
	return out
}

// Correlate finalizes the answer key and explanation of q. Inline annotations
// always win over the answer-key section.
func Correlate(q Question, key map[int]AnswerKeyEntry) Question {
	e, ok := key[q.Number]
	if q.AnswerKey == "" && ok {
		q.AnswerKey = e.Letter
	}
	if q.Explanation == "" && ok {
		q.Explanation = e.Explanation
	}
	return q
}
