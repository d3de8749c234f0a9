package quiz

import (
	"math"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

const (
	// NoSelection is the chosen key shown for a question that was never answered.
	NoSelection = "(none)"
	// Missing stands in for an unknown answer key.
	Missing = "(missing)"

	reviewNoExplanation = "No explanation provided."
)

type ReviewItem struct {
	Position    int          `json:"position"` // 1-based position in the quiz
	Question    mcq.Question `json:"question"`
	ChosenKey   string       `json:"chosenKey"`
	IsCorrect   bool         `json:"isCorrect"`
	Answered    bool         `json:"answered"`
	CorrectKey  string       `json:"correctKey"`
	Explanation string       `json:"explanation"`
}

type Result struct {
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage int          `json:"percentage"`
	Review     []ReviewItem `json:"review"`
}

// Percentage is round(100*score/total), or 0 for an empty quiz.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// Result summarizes the quiz. Unanswered questions count as incorrect with no
// selection.
func (s State) Result() Result {
	res := Result{
		Score:      s.Score,
		Total:      len(s.Questions),
		Percentage: Percentage(s.Score, len(s.Questions)),
		Review:     make([]ReviewItem, 0, len(s.Questions)),
	}
	for i, q := range s.Questions {
		item := ReviewItem{
			Position:    i + 1,
			Question:    q,
			ChosenKey:   NoSelection,
			CorrectKey:  orDefault(q.AnswerKey, Missing),
			Explanation: orDefault(q.Explanation, reviewNoExplanation),
		}
		if ev, ok := s.Event(i); ok {
			item.ChosenKey = ev.ChosenKey
			item.IsCorrect = ev.IsCorrect
			item.Answered = true
		}
		res.Review = append(res.Review, item)
	}
	return res
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
