package quiz

import (
	"fmt"
	"strings"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

// NoExplanation is shown after a reveal when the question has no explanation.
const NoExplanation = "No explanation provided in the PDF text."

// Mark classifies an option once the answer is revealed.
type Mark string

const (
	MarkNeutral Mark = ""
	MarkCorrect Mark = "correct"
	MarkWrong   Mark = "wrong"
)

type OptionView struct {
	Key  string `json:"key"`
	Text string `json:"text"`
	Mark Mark   `json:"mark,omitempty"`
}

type QuestionView struct {
	Header  string       `json:"header"` // Q#n (source #m)
	Meta    string       `json:"meta"`   // Answer key: X
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
}

type Feedback struct {
	Correct     bool   `json:"correct"`
	Tag         string `json:"tag"`
	AnswerLine  string `json:"answerLine"`
	Explanation string `json:"explanation"`
	ChosenKey   string `json:"chosenKey"`
}

// Snapshot is a read-only projection of a State for display.
type Snapshot struct {
	Phase       Phase         `json:"phase"`
	ParsedCount int           `json:"parsedCount"`
	Total       int           `json:"total"`
	Position    string        `json:"position"`
	Score       int           `json:"score"`
	Progress    float64       `json:"progress"` // 0..1
	Question    *QuestionView `json:"question,omitempty"`
	Feedback    *Feedback     `json:"feedback,omitempty"`
	Result      *Result       `json:"result,omitempty"`
	CanSubmit   bool          `json:"canSubmit"`
	CanAdvance  bool          `json:"canAdvance"`
}

// Snapshot projects s. parsedCount is the size of the parsed set the quiz
// was prepared from.
func (s State) Snapshot(parsedCount int) Snapshot {
	total := len(s.Questions)
	snap := Snapshot{
		Phase:       s.Phase,
		ParsedCount: parsedCount,
		Total:       total,
		Position:    "0/0",
		Score:       s.Score,
		CanSubmit:   s.Phase == Answering,
		CanAdvance:  s.Phase == Revealed,
	}
	if total > 0 {
		snap.Position = fmt.Sprintf("%d/%d", clamp(s.CurrentIndex+1, 0, total), total)
		snap.Progress = float64(clamp(s.CurrentIndex, 0, total)) / float64(total)
	}

	switch s.Phase {
	case Finished:
		snap.Progress = 1
		res := s.Result()
		snap.Result = &res
	case Answering, Revealed:
		q, ok := s.Current()
		if !ok {
			break
		}
		ev, answered := s.Event(s.CurrentIndex)
		snap.Question = questionView(s.CurrentIndex, q, ev, answered && s.Phase == Revealed)
		if s.Phase == Revealed && answered {
			snap.Feedback = feedback(q, ev)
		}
	}
	return snap
}

func questionView(idx int, q mcq.Question, ev AnswerEvent, revealed bool) *QuestionView {
	v := &QuestionView{
		Header:  fmt.Sprintf("Q#%d (source #%d)", idx+1, q.Number),
		Meta:    "Answer key: " + orDefault(q.AnswerKey, Missing),
		Text:    q.Question,
		Options: make([]OptionView, len(q.Options)),
	}
	correct := strings.ToUpper(q.AnswerKey)
	for i, o := range q.Options {
		ov := OptionView{Key: o.Key, Text: o.Text}
		if revealed {
			ov.Mark = classify(o.Key, ev.ChosenKey, correct)
		}
		v.Options[i] = ov
	}
	return v
}

// classify marks the correct option, and the chosen one when it was wrong.
func classify(key, chosen, correct string) Mark {
	switch {
	case correct != "" && key == correct:
		return MarkCorrect
	case key == chosen && chosen != correct:
		return MarkWrong
	}
	return MarkNeutral
}

func feedback(q mcq.Question, ev AnswerEvent) *Feedback {
	fb := &Feedback{
		Correct:     ev.IsCorrect,
		Tag:         "Incorrect",
		AnswerLine:  "Correct answer: " + orDefault(strings.ToUpper(q.AnswerKey), Missing),
		Explanation: orDefault(q.Explanation, NoExplanation),
		ChosenKey:   ev.ChosenKey,
	}
	if ev.IsCorrect {
		fb.Tag = "Correct"
	}
	return fb
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
