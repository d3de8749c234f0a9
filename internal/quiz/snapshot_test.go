package quiz

import "testing"

func TestSnapshotProjection(t *testing.T) {
	var zero State
	snap := zero.Snapshot(0)
	if snap.Phase != NotStarted || snap.Position != "0/0" || snap.Progress != 0 || snap.Question != nil {
		t.Fatalf("zero snapshot = %+v", snap)
	}

	st := Prepare(sampleQuestions(), PrepareOptions{}, nil)
	snap = st.Snapshot(2)
	if snap.Position != "1/2" || snap.Progress != 0 || !snap.CanSubmit || snap.CanAdvance {
		t.Fatalf("answering snapshot = %+v", snap)
	}
	if snap.Question.Header != "Q#1 (source #1)" || snap.Question.Meta != "Answer key: A" {
		t.Fatalf("question view = %+v", snap.Question)
	}
	if snap.Feedback != nil {
		t.Fatal("feedback before reveal")
	}
	for _, o := range snap.Question.Options {
		if o.Mark != MarkNeutral {
			t.Fatalf("option %s marked before reveal", o.Key)
		}
	}

	st, _ = st.Submit("B")
	snap = st.Snapshot(2)
	marks := map[string]Mark{}
	for _, o := range snap.Question.Options {
		marks[o.Key] = o.Mark
	}
	if marks["A"] != MarkCorrect || marks["B"] != MarkWrong || marks["C"] != MarkNeutral {
		t.Fatalf("marks = %v", marks)
	}
	fb := snap.Feedback
	if fb == nil || fb.Correct || fb.Tag != "Incorrect" || fb.AnswerLine != "Correct answer: A" || fb.Explanation != "because" {
		t.Fatalf("feedback = %+v", fb)
	}

	st, _ = st.Advance()
	snap = st.Snapshot(2)
	if snap.Position != "2/2" || snap.Progress != 0.5 {
		t.Fatalf("second question snapshot = %+v", snap)
	}
	if snap.Question.Header != "Q#2 (source #2)" {
		t.Fatalf("header = %q", snap.Question.Header)
	}

	st, _ = st.Submit("B")
	if fb := st.Snapshot(2).Feedback; fb.Explanation != NoExplanation || fb.Tag != "Correct" {
		t.Fatalf("feedback = %+v", fb)
	}
	st, _ = st.Advance()
	snap = st.Snapshot(2)
	if snap.Phase != Finished || snap.Progress != 1 || snap.Result == nil || snap.Result.Percentage != 50 {
		t.Fatalf("finished snapshot = %+v", snap)
	}
	if snap.Position != "2/2" {
		t.Fatalf("finished position = %q", snap.Position)
	}
}

func TestSnapshotMissingAnswerKey(t *testing.T) {
	qs := sampleQuestions()[:1]
	qs[0].AnswerKey = ""
	st := Prepare(qs, PrepareOptions{}, nil)
	if meta := st.Snapshot(1).Question.Meta; meta != "Answer key: (missing)" {
		t.Fatalf("meta = %q", meta)
	}
	st, _ = st.Submit("C")
	snap := st.Snapshot(1)
	if snap.Feedback.AnswerLine != "Correct answer: (missing)" {
		t.Fatalf("answer line = %q", snap.Feedback.AnswerLine)
	}
	for _, o := range snap.Question.Options {
		want := MarkNeutral
		if o.Key == "C" {
			want = MarkWrong
		}
		if o.Mark != want {
			t.Fatalf("option %s mark = %q", o.Key, o.Mark)
		}
	}
}
