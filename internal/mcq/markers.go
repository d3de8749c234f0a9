package mcq

import "strings"

// marker is a label found at the start of a line. start is the offset of the
// line, end the offset just past the label and its separator.
type marker struct {
	start int
	end   int
	label string
}

// eachLine calls fn with the start offset and content of every line in s.
func eachLine(s string, fn func(start int, line string)) {
	start := 0
	for start <= len(s) {
		nl := strings.IndexByte(s[start:], '\n')
		if nl < 0 {
			fn(start, s[start:])
			return
		}
		fn(start, s[start:start+nl])
		start += nl + 1
	}
}

func isHSpace(c byte) bool { return c == ' ' || c == '\t' }

func skipHSpace(line string, i int) int {
	for i < len(line) && isHSpace(line[i]) {
		i++
	}
	return i
}

// separated reports whether position i of line (just past a separator) is
// followed by whitespace: a space or tab on the same line, or a line break
// that is not the end of the text.
func separated(text string, lineStart int, line string, i int) bool {
	if i < len(line) {
		return isHSpace(line[i])
	}
	return lineStart+len(line) < len(text)
}

// matchNumberMarker matches "12." "3)" "7 -" style question labels.
func matchNumberMarker(text string, lineStart int, line string) (marker, bool) {
	i := skipHSpace(line, 0)
	j := i
	for j < len(line) && j-i < 5 && line[j] >= '0' && line[j] <= '9' {
		j++
	}
	if j == i || j-i > 4 {
		return marker{}, false
	}
	label := line[i:j]
	k := skipHSpace(line, j)
	if k >= len(line) || strings.IndexByte(".)-", line[k]) < 0 {
		return marker{}, false
	}
	k++
	if !separated(text, lineStart, line, k) {
		return marker{}, false
	}
	return marker{start: lineStart, end: lineStart + k, label: label}, true
}

// matchOptionMarker matches "A)" "B." "C:" "D -" style option labels, A to F.
func matchOptionMarker(text string, lineStart int, line string) (marker, bool) {
	i := skipHSpace(line, 0)
	if i >= len(line) || line[i] < 'A' || line[i] > 'F' {
		return marker{}, false
	}
	label := line[i : i+1]
	k := skipHSpace(line, i+1)
	if k >= len(line) || strings.IndexByte(").:-", line[k]) < 0 {
		return marker{}, false
	}
	k++
	if !separated(text, lineStart, line, k) {
		return marker{}, false
	}
	return marker{start: lineStart, end: lineStart + k, label: label}, true
}

// scanMarkers collects every line-start marker accepted by match, in order.
func scanMarkers(text string, match func(text string, lineStart int, line string) (marker, bool)) []marker {
	var out []marker
	eachLine(text, func(start int, line string) {
		if m, ok := match(text, start, line); ok {
			out = append(out, m)
		}
	})
	return out
}
