package mcq

import (
	"reflect"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []Block
		wantKey string
	}{
		{
			name: "preamble dropped",
			text: "Chapter 1 quiz\n1. First?\nA. a\n2) Second?\nB. b",
			want: []Block{{1, "First?\nA. a"}, {2, "Second?\nB. b"}},
		},
		{
			name: "out of sequence numbers kept",
			text: "7 - Seven\n3) Three",
			want: []Block{{7, "Seven"}, {3, "Three"}},
		},
		{
			name: "label alone on its line",
			text: "4.\nStem on next line\n5. Five",
			want: []Block{{4, "Stem on next line"}, {5, "Five"}},
		},
		{
			name: "not markers",
			text: "1.5 kg of flour\n12345. too long\nx 3) inline",
			want: []Block{{1, "1.5 kg of flour\n12345. too long\nx 3) inline"}},
		},
		{
			name: "empty body dropped",
			text: "1. \n2. Two",
			want: []Block{{2, "Two"}},
		},
		{
			name: "fallback single block",
			text: "What is 2+2?\nA) 3\nB) 4",
			want: []Block{{1, "What is 2+2?\nA) 3\nB) 4"}},
		},
		{
			name:    "answer key split",
			text:    "1. One\n\nAnswer Key:\n1) A",
			want:    []Block{{1, "One"}},
			wantKey: "Answer Key:\n1) A",
		},
		{
			name: "inline answer is not a heading",
			text: "1. One\nAnswer: B",
			want: []Block{{1, "One\nAnswer: B"}},
		},
		{
			name: "heading on last line is not a section",
			text: "1. One\nAnswers",
			want: []Block{{1, "One\nAnswers"}},
		},
		{
			name:    "empty main text",
			text:    "Answers\n1) A",
			want:    nil,
			wantKey: "Answers\n1) A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text)
			if !reflect.DeepEqual(got.Blocks, tt.want) {
				t.Fatalf("blocks = %#v, want %#v", got.Blocks, tt.want)
			}
			if got.AnswerKeyText != tt.wantKey {
				t.Fatalf("answer key = %q, want %q", got.AnswerKeyText, tt.wantKey)
			}
		})
	}
}
