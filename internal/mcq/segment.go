package mcq

import (
	"strconv"
	"strings"
)

// Segmentation is the result of splitting document text into question blocks
// and a trailing answer-key section.
type Segmentation struct {
	Blocks        []Block
	AnswerKeyText string
}

var answerHeadings = map[string]bool{
	"answer":     true,
	"answers":    true,
	"answer key": true,
}

// isAnswerHeading reports whether line is an "Answers" style section heading.
// A trailing colon is tolerated.
func isAnswerHeading(line string) bool {
	h := strings.ToLower(strings.TrimSpace(line))
	h = strings.TrimSpace(strings.TrimSuffix(h, ":"))
	return answerHeadings[h]
}

// splitAnswerKey locates the first answer-key heading that is followed by
// another line and splits text there.
func splitAnswerKey(text string) (main, key string) {
	cut := -1
	eachLine(text, func(start int, line string) {
		if cut >= 0 || start+len(line) >= len(text) {
			return
		}
		if isAnswerHeading(line) {
			cut = start
		}
	})
	if cut < 0 {
		return text, ""
	}
	return strings.TrimSpace(text[:cut]), text[cut:]
}

// Segment splits normalized document text into numbered question blocks.
//
// The answer-key section, if any, is removed first. Every line-start question
// label ("12." "3)" "7 -") opens a block whose body runs to the next label;
// text before the first label is preamble and is dropped. Numbers are labels,
// not an ordering contract. Without any label the whole text becomes block 1.
func Segment(text string) Segmentation {
	main, key := splitAnswerKey(text)
	seg := Segmentation{AnswerKeyText: key}

	marks := scanMarkers(main, matchNumberMarker)
	if len(marks) == 0 {
		if body := strings.TrimSpace(main); body != "" {
			seg.Blocks = append(seg.Blocks, Block{Number: 1, Body: body})
		}
		return seg
	}

	for i, m := range marks {
		end := len(main)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		body := strings.TrimSpace(main[m.end:end])
		if body == "" {
			continue
		}
		n, _ := strconv.Atoi(m.label)
		seg.Blocks = append(seg.Blocks, Block{Number: n, Body: body})
	}
	return seg
}
