package quiz

import (
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

func sampleQuestions() []mcq.Question {
	return []mcq.Question{
		{Number: 1, Question: "Q1", AnswerKey: "A", Explanation: "because",
			Options: []mcq.Option{{Key: "A", Text: "a1"}, {Key: "B", Text: "b1"}, {Key: "C", Text: "c1"}}},
		{Number: 2, Question: "Q2", AnswerKey: "B",
			Options: []mcq.Option{{Key: "A", Text: "a2"}, {Key: "B", Text: "b2"}, {Key: "C", Text: "c2"}}},
	}
}

func TestScoring(t *testing.T) {
	tests := []struct {
		name    string
		choices []string
		score   int
		pct     int
	}{
		{"all correct", []string{"A", "B"}, 2, 100},
		{"half", []string{"A", "A"}, 1, 50},
		{"lowercase choice", []string{"a", "c"}, 1, 50},
		{"none", []string{"C", "C"}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := Prepare(sampleQuestions(), PrepareOptions{}, nil)
			for _, c := range tc.choices {
				var ok bool
				if st, ok = st.Submit(c); !ok {
					t.Fatalf("Submit(%q) rejected", c)
				}
				if st, ok = st.Advance(); !ok {
					t.Fatal("Advance rejected")
				}
			}
			if st.Phase != Finished {
				t.Fatalf("phase = %v", st.Phase)
			}
			res := st.Result()
			if res.Score != tc.score || res.Total != 2 || res.Percentage != tc.pct {
				t.Fatalf("result = %d/%d %d%%", res.Score, res.Total, res.Percentage)
			}
		})
	}
}

func TestPrepareDoesNotMutateSource(t *testing.T) {
	src := sampleQuestions()
	src[0].Options[0].Key = "a"
	src[0].Options[1].Text = "  padded  "
	before := mcq.CloneAll(src)

	st := Prepare(src, PrepareOptions{ShuffleQuestions: true, ShuffleOptions: true}, rand.New(rand.NewPCG(1, 2)))
	if !reflect.DeepEqual(src, before) {
		t.Fatal("Prepare modified its source")
	}
	st.Questions[0].Options[0].Text = "changed"
	if reflect.DeepEqual(src[0].Options, st.Questions[0].Options) {
		t.Fatal("prepared questions share option storage with source")
	}
}

func TestPrepareNormalizesOptions(t *testing.T) {
	src := []mcq.Question{{Number: 1, Question: "Q", Options: []mcq.Option{
		{Key: "", Text: " one "}, {Key: "b", Text: "two"}, {Key: "", Text: "three"},
		{Key: "", Text: "4"}, {Key: "", Text: "5"}, {Key: "", Text: "6"}, {Key: "", Text: "7"},
	}}}
	st := Prepare(src, PrepareOptions{}, nil)
	var keys []string
	for _, o := range st.Questions[0].Options {
		keys = append(keys, o.Key)
	}
	want := []string{"A", "B", "C", "D", "E", "F", "7"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	if got := st.Questions[0].Options[0].Text; got != "one" {
		t.Fatalf("text = %q", got)
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	var src []mcq.Question
	for i := 1; i <= 20; i++ {
		src = append(src, mcq.Question{Number: i, Question: "Q", Options: []mcq.Option{
			{Key: "A", Text: "x"}, {Key: "B", Text: "y"}, {Key: "C", Text: "z"}, {Key: "D", Text: "w"},
		}})
	}
	r := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 10; round++ {
		st := Prepare(src, PrepareOptions{ShuffleQuestions: true, ShuffleOptions: true}, r)
		var nums []int
		for _, q := range st.Questions {
			nums = append(nums, q.Number)
			var keys []string
			for _, o := range q.Options {
				keys = append(keys, o.Key)
			}
			sort.Strings(keys)
			if !reflect.DeepEqual(keys, []string{"A", "B", "C", "D"}) {
				t.Fatalf("option keys = %v", keys)
			}
		}
		sort.Ints(nums)
		for i, n := range nums {
			if n != i+1 {
				t.Fatalf("question numbers = %v", nums)
			}
		}
	}
}

func TestEmptyQuizFinishesAtZero(t *testing.T) {
	st := Prepare(nil, PrepareOptions{}, nil)
	if st.Phase != Finished {
		t.Fatalf("phase = %v", st.Phase)
	}
	if res := st.Result(); res.Percentage != 0 || res.Total != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestNoOpTransitions(t *testing.T) {
	var zero State
	if _, ok := zero.Submit("A"); ok {
		t.Fatal("Submit before start should be a no-op")
	}
	if _, ok := zero.Advance(); ok {
		t.Fatal("Advance before start should be a no-op")
	}

	st := Prepare(sampleQuestions(), PrepareOptions{}, nil)
	if _, ok := st.Advance(); ok {
		t.Fatal("Advance while answering should be a no-op")
	}
	if _, ok := st.Submit("  "); ok {
		t.Fatal("empty choice should be a no-op")
	}
	for _, bad := range []string{"x", "D", "AB"} {
		if same, ok := st.Submit(bad); ok || same.Phase != Answering || same.Locked {
			t.Fatalf("Submit(%q) on a question without that option should be a no-op", bad)
		}
	}
	st, _ = st.Submit("A")
	if again, ok := st.Submit("B"); ok || again.Score != 1 {
		t.Fatal("second Submit on a revealed question should be a no-op")
	}
	if !st.Locked || st.Phase != Revealed {
		t.Fatalf("after submit: locked=%v phase=%v", st.Locked, st.Phase)
	}
}

func TestSubmitLeavesPriorStateIntact(t *testing.T) {
	st := Prepare(sampleQuestions(), PrepareOptions{}, nil)
	next, _ := st.Submit("A")
	if _, ok := st.Event(0); ok {
		t.Fatal("Submit mutated the receiver's log")
	}
	if ev, ok := next.Event(0); !ok || ev.ChosenKey != "A" || !ev.IsCorrect {
		t.Fatalf("event = %+v, %v", ev, ok)
	}
}

func TestMissingAnswerKeyNeverCorrect(t *testing.T) {
	qs := sampleQuestions()
	qs[0].AnswerKey = ""
	st := Prepare(qs[:1], PrepareOptions{}, nil)
	st, _ = st.Submit("A")
	if ev, _ := st.Event(0); ev.IsCorrect || st.Score != 0 {
		t.Fatalf("event = %+v score = %d", ev, st.Score)
	}
}

func TestResultReviewDefaults(t *testing.T) {
	st := Prepare(sampleQuestions(), PrepareOptions{}, nil)
	st, _ = st.Submit("B")
	res := st.Result()
	if res.Review[0].ChosenKey != "B" || res.Review[0].IsCorrect || !res.Review[0].Answered {
		t.Fatalf("review[0] = %+v", res.Review[0])
	}
	r1 := res.Review[1]
	if r1.ChosenKey != NoSelection || r1.IsCorrect || r1.Answered {
		t.Fatalf("review[1] = %+v", r1)
	}
	if r1.Explanation != "No explanation provided." {
		t.Fatalf("review[1] explanation = %q", r1.Explanation)
	}
}

func TestPercentageRounding(t *testing.T) {
	cases := []struct{ score, total, want int }{
		{0, 0, 0}, {1, 3, 33}, {2, 3, 67}, {1, 8, 13}, {3, 3, 100},
	}
	for _, c := range cases {
		if got := Percentage(c.score, c.total); got != c.want {
			t.Errorf("Percentage(%d,%d) = %d, want %d", c.score, c.total, got, c.want)
		}
	}
}

func TestMessages(t *testing.T) {
	cases := map[string]string{
		ParsedDocumentMessage(0): "Parsed 0 questions. Try paste mode.",
		ParsedDocumentMessage(3): "Parsed 3 question(s). Ready to start.",
		ParsedTextMessage(0):     "Parsed 0 from pasted text.",
		ParsedTextMessage(2):     "Parsed 2 from pasted text.",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
