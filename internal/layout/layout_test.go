package layout

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestQuantizeY(t *testing.T) {
	cases := map[float64]float64{
		700:    700,
		700.2:  700,
		700.25: 700.5,
		700.6:  700.5,
		700.74: 700.5,
		700.75: 701,
		-1.25:  -1,
	}
	for in, want := range cases {
		if got := QuantizeY(in); got != want {
			t.Errorf("QuantizeY(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestReconstructPageOrdersLines(t *testing.T) {
	p := Page{
		{X: 120, Y: 700.1, Text: "world"},
		{X: 10, Y: 650, Text: "A."},
		{X: 10, Y: 699.9, Text: "hello"},
		{X: 40, Y: 650, Text: "first"},
		{X: 10, Y: 720, Text: "1)"},
		{X: 30, Y: 500, Text: "   "},
	}
	lines := ReconstructPage(p)
	want := []string{"1)", "hello world", "A. first"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines (%+v), want %d", len(lines), lines, len(want))
	}
	for i, l := range lines {
		if l.Text != want[i] {
			t.Errorf("line %d = %q, want %q", i, l.Text, want[i])
		}
	}
}

func TestReconstructPageProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var p Page
	for i := 0; i < 200; i++ {
		x := float64(r.IntN(500))
		y := float64(r.IntN(40)) + r.Float64()
		p = append(p, Fragment{X: x, Y: y, Text: "w"})
	}
	lines := ReconstructPage(p)
	for i := 1; i < len(lines); i++ {
		if !(lines[i-1].Key > lines[i].Key) {
			t.Fatalf("keys not strictly descending at %d: %v then %v", i, lines[i-1].Key, lines[i].Key)
		}
	}
}

func TestReconstructPageLeftToRight(t *testing.T) {
	p := Page{
		{X: 300, Y: 10, Text: "c"},
		{X: 100, Y: 10, Text: "a"},
		{X: 200, Y: 10.1, Text: "b"},
	}
	lines := ReconstructPage(p)
	if len(lines) != 1 || lines[0].Text != "a b c" {
		t.Fatalf("got %+v, want single line %q", lines, "a b c")
	}
}

func TestReconstructPageKeepsNaNY(t *testing.T) {
	p := Page{
		{X: 50, Y: math.NaN(), Text: "stray2"},
		{X: 10, Y: 100, Text: "top"},
		{X: 5, Y: math.NaN(), Text: "stray1"},
	}
	lines := ReconstructPage(p)
	if len(lines) != 2 || lines[0].Text != "top" || lines[1].Text != "stray1 stray2" {
		t.Fatalf("got %+v, want [top, stray1 stray2]", lines)
	}
}

func TestBuilderSeparatesPages(t *testing.T) {
	var b Builder
	b.AddPage(Page{{X: 0, Y: 100, Text: "12."}, {X: 20, Y: 100, Text: "Tail of page one"}})
	b.AddPage(Page{})
	b.AddPage(Page{{X: 0, Y: 100, Text: "13) Next"}})

	if b.Pages() != 3 {
		t.Fatalf("Pages() = %d, want 3", b.Pages())
	}
	want := "12. Tail of page one\n\n\n13) Next"
	if got := b.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentTextEmpty(t *testing.T) {
	if got := DocumentText(nil); got != "" {
		t.Fatalf("DocumentText(nil) = %q", got)
	}
}
