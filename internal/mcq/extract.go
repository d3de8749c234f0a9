package mcq

import (
	"regexp"
	"strings"
)

var (
	reInlineAnswer      = regexp.MustCompile(`(?i)\banswer\s*[:\-]\s*([A-D])\b`)
	reInlineExplanation = regexp.MustCompile(`(?is)\bexplanation\s*[:\-]\s*(.+)$`)
)

// cut removes s[loc[0]:loc[1]] and trims the result.
func cut(s string, loc []int) string {
	return strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
}

// ExtractQuestion parses a block into a question record. It returns false when
// the block has fewer than two option labels. AnswerKey and Explanation carry
// only inline annotations; Correlate fills them from an answer-key section.
func ExtractQuestion(b Block) (Question, bool) {
	body := b.Body
	q := Question{Number: b.Number}

	if m := reInlineAnswer.FindStringSubmatchIndex(body); m != nil {
		q.AnswerKey = strings.ToUpper(body[m[2]:m[3]])
		body = cut(body, m[:2])
	}
	if m := reInlineExplanation.FindStringSubmatchIndex(body); m != nil {
		q.Explanation = strings.TrimSpace(body[m[2]:m[3]])
		body = cut(body, m[:2])
	}

	marks := scanMarkers(body, matchOptionMarker)
	if len(marks) < 2 {
		return Question{}, false
	}

	q.Question = strings.TrimSpace(body[:marks[0].start])
	seen := make(map[string]bool, len(marks))
	for i, m := range marks {
		end := len(body)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		text := strings.TrimSpace(body[m.end:end])
		if text == "" || seen[m.label] {
			continue
		}
		seen[m.label] = true
		q.Options = append(q.Options, Option{Key: m.label, Text: text})
	}
	return q, true
}
