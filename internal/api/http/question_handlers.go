package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	auth "github.com/mind-engage/mcq-reviewer/internal/auth/middleware"
	"github.com/mind-engage/mcq-reviewer/internal/export"
	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

// GET /questions/export?format=json|yaml|xlsx|json.xz|qti.zip
func ExportQuestionsHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		qs := reg.Get(r.Context(), auth.SubjectFromContext(r.Context())).Parsed()
		b, err := export.Encode(format, qs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
		_, _ = w.Write(b)
	}
}

// POST /questions/import  (body: a JSON, YAML or json.xz export)
func ImportQuestionsHandler(reg *SessionRegistry, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
		if err != nil {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		var qs []mcq.Question
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch ct {
		case "application/x-xz":
			qs, err = export.DecodeJSONXZ(body)
		case "application/yaml", "application/x-yaml", "text/yaml":
			qs, err = export.DecodeYAML(body)
		default:
			qs, err = export.DecodeJSON(body)
		}
		if errors.Is(err, export.ErrInvalidDocument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		reg.Get(r.Context(), auth.SubjectFromContext(r.Context())).LoadParsed(r.Context(), qs)
		writeJSON(w, http.StatusOK, map[string]any{
			"message": fmt.Sprintf("Imported %d question(s).", len(qs)),
			"count":   len(qs),
		})
	}
}
