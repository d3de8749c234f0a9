package quiz

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

// DefaultSessionKey is the storage key prefix for saved sessions.
const DefaultSessionKey = "mcq_pdf_reviewer_v1"

var ErrNoSession = errors.New("quiz: no saved session")

// Settings are the per-session toggles saved alongside the quiz.
type Settings struct {
	ShuffleQuestions bool `json:"shuffleQ"`
	ShuffleOptions   bool `json:"shuffleO"`
	AutoNext         bool `json:"autoNext"`
	SessionSave      bool `json:"sessionSave"`
}

func DefaultSettings() Settings { return Settings{SessionSave: true} }

func (s Settings) prepareOptions() PrepareOptions {
	return PrepareOptions{ShuffleQuestions: s.ShuffleQuestions, ShuffleOptions: s.ShuffleOptions}
}

type savedSettings struct {
	ShuffleQuestions bool  `json:"shuffleQ"`
	ShuffleOptions   bool  `json:"shuffleO"`
	AutoNext         bool  `json:"autoNext"`
	SessionSave      *bool `json:"sessionSave"`
}

type savedSession struct {
	ParsedQuestions []mcq.Question `json:"parsedQuestions"`
	QuizQuestions   []mcq.Question `json:"quizQuestions"`
	Idx             int            `json:"idx"`
	Score           int            `json:"score"`
	Answered        []*AnswerEvent `json:"answered"`
	Settings        *savedSettings `json:"settings,omitempty"`
}

func encodeSession(parsed []mcq.Question, st State, set Settings) ([]byte, error) {
	if parsed == nil {
		parsed = []mcq.Question{}
	}
	quiz := st.Questions
	if quiz == nil {
		quiz = []mcq.Question{}
	}
	save := set.SessionSave
	return json.Marshal(savedSession{
		ParsedQuestions: parsed,
		QuizQuestions:   quiz,
		Idx:             st.CurrentIndex,
		Score:           st.Score,
		Answered:        st.AnsweredLog,
		Settings: &savedSettings{
			ShuffleQuestions: set.ShuffleQuestions,
			ShuffleOptions:   set.ShuffleOptions,
			AutoNext:         set.AutoNext,
			SessionSave:      &save,
		},
	})
}

// decodeSession validates a saved blob and rebuilds the state it describes.
// The blob must carry a parsedQuestions array; everything else defaults.
func decodeSession(b []byte) ([]mcq.Question, State, Settings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, State{}, Settings{}, err
	}
	pq, ok := raw["parsedQuestions"]
	if !ok || len(pq) == 0 || pq[0] != '[' {
		return nil, State{}, Settings{}, ErrNoSession
	}
	var saved savedSession
	if err := json.Unmarshal(b, &saved); err != nil {
		return nil, State{}, Settings{}, err
	}

	set := DefaultSettings()
	if ss := saved.Settings; ss != nil {
		set.ShuffleQuestions = ss.ShuffleQuestions
		set.ShuffleOptions = ss.ShuffleOptions
		set.AutoNext = ss.AutoNext
		if ss.SessionSave != nil {
			set.SessionSave = *ss.SessionSave
		}
	}

	parsed := saved.ParsedQuestions
	if parsed == nil {
		parsed = []mcq.Question{}
	}
	if len(saved.QuizQuestions) == 0 {
		return parsed, State{}, set, nil
	}

	st := State{
		Questions:    saved.QuizQuestions,
		CurrentIndex: clamp(saved.Idx, 0, len(saved.QuizQuestions)),
		AnsweredLog:  make([]*AnswerEvent, len(saved.QuizQuestions)),
	}
	// correctness and score are rederived from the answer keys; saved flags are not trusted
	for i, ev := range saved.Answered {
		if i >= len(st.AnsweredLog) || ev == nil {
			continue
		}
		chosen := strings.ToUpper(strings.TrimSpace(ev.ChosenKey))
		correct := strings.ToUpper(strings.TrimSpace(st.Questions[i].AnswerKey))
		st.AnsweredLog[i] = &AnswerEvent{ChosenKey: chosen, IsCorrect: correct != "" && chosen == correct}
		if st.AnsweredLog[i].IsCorrect {
			st.Score++
		}
	}
	switch {
	case st.CurrentIndex >= len(st.Questions):
		st.Phase = Finished
	case st.AnsweredLog[st.CurrentIndex] != nil:
		st.Phase = Revealed
		st.Locked = true
	default:
		st.Phase = Answering
	}
	return parsed, st, set, nil
}
