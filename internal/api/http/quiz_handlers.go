package http

import (
	"encoding/json"
	"net/http"

	auth "github.com/mind-engage/mcq-reviewer/internal/auth/middleware"
	"github.com/mind-engage/mcq-reviewer/internal/quiz"
)

type quizOut struct {
	Message  string        `json:"message,omitempty"`
	Accepted bool          `json:"accepted"`
	Snapshot quiz.Snapshot `json:"snapshot"`
}

func session(reg *SessionRegistry, r *http.Request) *quiz.Session {
	return reg.Get(r.Context(), auth.SubjectFromContext(r.Context()))
}

// GET /quiz
func GetQuizHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, quizOut{Accepted: true, Snapshot: session(reg, r).Snapshot()})
	}
}

// POST /quiz/start and POST /quiz/restart
func StartQuizHandler(reg *SessionRegistry, restart bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(reg, r)
		if !s.Start(r.Context()) {
			writeJSON(w, http.StatusConflict, quizOut{Message: quiz.MsgNothingParsed, Snapshot: s.Snapshot()})
			return
		}
		out := quizOut{Accepted: true, Snapshot: s.Snapshot()}
		if restart {
			out.Message = quiz.MsgRestarted
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /quiz/submit  { "key": "B" }
func SubmitAnswerHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Key string `json:"key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		snap, ok := session(reg, r).Submit(r.Context(), req.Key)
		writeJSON(w, http.StatusOK, quizOut{Accepted: ok, Snapshot: snap})
	}
}

// POST /quiz/next
func NextQuestionHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := session(reg, r).Next(r.Context())
		writeJSON(w, http.StatusOK, quizOut{Accepted: ok, Snapshot: snap})
	}
}

// GET /quiz/settings
func GetSettingsHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, session(reg, r).Settings())
	}
}

// PUT /quiz/settings  { "shuffleQ", "shuffleO", "autoNext", "sessionSave" }
func UpdateSettingsHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(reg, r)
		set := s.Settings()
		if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		msg := s.UpdateSettings(r.Context(), set)
		writeJSON(w, http.StatusOK, map[string]any{"message": msg, "settings": s.Settings()})
	}
}

// DELETE /session
func ClearSessionHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := session(reg, r).Clear(r.Context())
		writeJSON(w, http.StatusOK, messageOut{Message: msg})
	}
}
