package http

import (
	"net/http"
	"strconv"

	"github.com/mind-engage/mcq-reviewer/internal/eventlog"
)

// GET /admin/events?session=<key>&limit=<n>
func ListEventsHandler(repo *eventlog.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		events, err := repo.List(r.Context(), q.Get("session"), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}
