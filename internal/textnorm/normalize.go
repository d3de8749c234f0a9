// Package textnorm canonicalizes extracted or pasted document text.
package textnorm

import "strings"

var punct = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u2013", "-", // en dash
	"\u2014", "-", // em dash
	"\r", "",
)

// Normalize returns s in canonical form: no non-breaking spaces, en/em dashes
// turned into hyphens, no carriage returns, runs of spaces and tabs collapsed to
// one space, continuation lines de-indented and the whole string trimmed.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = punct.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	lineStart := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t':
			if inRun || lineStart {
				continue
			}
			inRun = true
			b.WriteByte(' ')
		case '\n':
			inRun = false
			lineStart = true
			b.WriteByte('\n')
		default:
			inRun = false
			lineStart = false
			b.WriteByte(c)
		}
	}
	return strings.TrimSpace(b.String())
}
