// Package quiz runs a scored multiple-choice quiz over parsed questions.
//
// State is a plain value: every transition returns a new State and never
// mutates the receiver's slices. Session holds the live State for one user,
// persists it and drives auto-advance.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

type Phase int

const (
	NotStarted Phase = iota
	Answering
	Revealed
	Finished
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Answering:
		return "answering"
	case Revealed:
		return "revealed"
	case Finished:
		return "finished"
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	for _, c := range []Phase{NotStarted, Answering, Revealed, Finished} {
		if string(b) == c.String() {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// AnswerEvent records the choice made for one question.
type AnswerEvent struct {
	ChosenKey string `json:"chosenKey"`
	IsCorrect bool   `json:"isCorrect"`
}

type State struct {
	Questions    []mcq.Question
	CurrentIndex int
	Score        int
	AnsweredLog  []*AnswerEvent // len == len(Questions); nil until submitted
	Locked       bool
	Phase        Phase
}

type PrepareOptions struct {
	ShuffleQuestions bool
	ShuffleOptions   bool
}

// Rand is the randomness Prepare shuffles with. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

var optionLetters = [...]string{"A", "B", "C", "D", "E", "F"}

// Prepare builds a fresh quiz from source. source is never modified. A nil r
// uses the process-wide generator.
func Prepare(source []mcq.Question, opts PrepareOptions, r Rand) State {
	if r == nil {
		r = globalRand{}
	}
	qs := mcq.CloneAll(source)
	if qs == nil {
		qs = []mcq.Question{}
	}
	for i := range qs {
		qs[i].Options = normalizeOptions(qs[i].Options)
		if opts.ShuffleOptions {
			opt := qs[i].Options
			shuffle(r, len(opt), func(a, b int) { opt[a], opt[b] = opt[b], opt[a] })
		}
	}
	if opts.ShuffleQuestions {
		shuffle(r, len(qs), func(a, b int) { qs[a], qs[b] = qs[b], qs[a] })
	}

	st := State{
		Questions:   qs,
		AnsweredLog: make([]*AnswerEvent, len(qs)),
		Phase:       Answering,
	}
	if len(qs) == 0 {
		st.Phase = Finished
	}
	return st
}

func normalizeOptions(in []mcq.Option) []mcq.Option {
	out := make([]mcq.Option, len(in))
	for i, o := range in {
		key := strings.TrimSpace(o.Key)
		if key == "" {
			if i < len(optionLetters) {
				key = optionLetters[i]
			} else {
				key = strconv.Itoa(i + 1)
			}
		}
		out[i] = mcq.Option{Key: strings.ToUpper(key), Text: strings.TrimSpace(o.Text)}
	}
	return out
}

// shuffle is Fisher-Yates driven by r.
func shuffle(r Rand, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.IntN(i+1))
	}
}

// Current returns the question at CurrentIndex.
func (s State) Current() (mcq.Question, bool) {
	if s.Phase != Answering && s.Phase != Revealed {
		return mcq.Question{}, false
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return mcq.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Event returns the recorded answer for question i, if any.
func (s State) Event(i int) (AnswerEvent, bool) {
	if i < 0 || i >= len(s.AnsweredLog) || s.AnsweredLog[i] == nil {
		return AnswerEvent{}, false
	}
	return *s.AnsweredLog[i], true
}

// Submit records chosenKey for the current question. It is a no-op, returning
// false, unless the quiz is Answering and the choice is one of the current
// question's option keys.
func (s State) Submit(chosenKey string) (State, bool) {
	chosen := strings.ToUpper(strings.TrimSpace(chosenKey))
	if s.Phase != Answering || chosen == "" {
		return s, false
	}
	q, ok := s.Current()
	if !ok {
		return s, false
	}
	if _, done := s.Event(s.CurrentIndex); done {
		return s, false
	}
	if !hasOption(q, chosen) {
		return s, false
	}

	correct := strings.ToUpper(strings.TrimSpace(q.AnswerKey))
	ev := &AnswerEvent{ChosenKey: chosen, IsCorrect: correct != "" && chosen == correct}

	log := make([]*AnswerEvent, len(s.Questions))
	copy(log, s.AnsweredLog)
	log[s.CurrentIndex] = ev

	s.AnsweredLog = log
	s.Locked = true
	s.Phase = Revealed
	if ev.IsCorrect {
		s.Score++
	}
	return s, true
}

// hasOption reports whether key is one of q's option keys.
func hasOption(q mcq.Question, key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// Advance moves past a revealed question. It is a no-op, returning false, in
// any other phase.
func (s State) Advance() (State, bool) {
	if s.Phase != Revealed {
		return s, false
	}
	s.Locked = false
	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Questions) {
		s.Phase = Finished
	} else {
		s.Phase = Answering
	}
	return s, true
}

// Clear discards all working state.
func Clear() State { return State{} }
