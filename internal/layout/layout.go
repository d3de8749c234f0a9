// Package layout rebuilds reading-order lines from positioned text fragments.
//
// Coordinates are page-local; a higher Y is higher on the page. Fragments whose
// Y values quantize to the same half unit are treated as one line.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/mind-engage/mcq-reviewer/internal/textnorm"
)

// Fragment is one atomic run of text at a page position.
type Fragment struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Page is the fragment list of a single page, in extraction order.
type Page []Fragment

// Line is a reconstructed line of text with its quantized vertical key.
type Line struct {
	Key  float64
	Text string
}

// QuantizeY rounds y to the nearest half unit, halves rounding up.
func QuantizeY(y float64) float64 {
	return math.Floor(y*2+0.5) / 2
}

// ReconstructPage groups the fragments of one page into lines ordered top to
// bottom, each line's fragments ordered left to right. Lines that normalize to
// nothing are omitted. Fragments without a usable Y (NaN) share one line placed
// after every positioned line.
func ReconstructPage(p Page) []Line {
	rows := make(map[float64][]Fragment)
	var unplaced []Fragment
	for _, f := range p {
		if math.IsNaN(f.Y) {
			unplaced = append(unplaced, f)
			continue
		}
		k := QuantizeY(f.Y)
		rows[k] = append(rows[k], f)
	}

	keys := make([]float64, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(keys)))

	lines := make([]Line, 0, len(keys)+1)
	for _, k := range keys {
		if text := joinRow(rows[k]); text != "" {
			lines = append(lines, Line{Key: k, Text: text})
		}
	}
	if text := joinRow(unplaced); text != "" {
		lines = append(lines, Line{Key: math.NaN(), Text: text})
	}
	return lines
}

// joinRow orders row left to right and joins it into normalized line text.
func joinRow(row []Fragment) string {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	parts := make([]string, len(row))
	for i, f := range row {
		parts[i] = f.Text
	}
	return textnorm.Normalize(strings.Join(parts, " "))
}

// Builder accumulates pages in arrival order and produces document text.
// Pages must be added in page order; nothing is reordered downstream.
type Builder struct {
	lines []string
	pages int
}

// AddPage reconstructs p and appends its lines followed by a blank page
// separator. The separator is emitted even for pages with no text.
func (b *Builder) AddPage(p Page) {
	for _, l := range ReconstructPage(p) {
		b.lines = append(b.lines, l.Text)
	}
	b.lines = append(b.lines, "")
	b.pages++
}

// Pages reports how many pages were added.
func (b *Builder) Pages() int { return b.pages }

// Text returns the normalized document text of all pages added so far.
func (b *Builder) Text() string {
	return textnorm.Normalize(strings.Join(b.lines, "\n"))
}

// DocumentText is a convenience over Builder for fully materialized pages.
func DocumentText(pages []Page) string {
	var b Builder
	for _, p := range pages {
		b.AddPage(p)
	}
	return b.Text()
}
