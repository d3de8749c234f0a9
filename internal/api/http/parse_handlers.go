package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	auth "github.com/mind-engage/mcq-reviewer/internal/auth/middleware"
	"github.com/mind-engage/mcq-reviewer/internal/extract"
	"github.com/mind-engage/mcq-reviewer/internal/logger"
	"github.com/mind-engage/mcq-reviewer/internal/mcq"
	"github.com/mind-engage/mcq-reviewer/internal/quiz"
)

type parseOut struct {
	Message     string         `json:"message"`
	Count       int            `json:"count"`
	Blocks      int            `json:"blocks"`
	Rejected    int            `json:"rejected"`
	KeyEntries  int            `json:"keyEntries"`
	Pages       int            `json:"pages,omitempty"`
	Fingerprint string         `json:"fingerprint"`
	Questions   []mcq.Question `json:"questions"`
}

func newParseOut(msg string, res mcq.Result) parseOut {
	return parseOut{
		Message:     msg,
		Count:       len(res.Questions),
		Blocks:      res.Blocks,
		Rejected:    res.Rejected,
		KeyEntries:  res.KeyEntries,
		Fingerprint: res.Fingerprint,
		Questions:   res.Questions,
	}
}

// POST /parse/text  (text/plain body, or JSON {"text": "..."})
func ParseTextHandler(reg *SessionRegistry, maxBytes int64, log *logger.Logger) http.HandlerFunc {
	log = logger.OrNop(log)
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
		if err != nil {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		raw := string(body)
		if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
			var req struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			raw = req.Text
		}

		res := mcq.Parse(raw)
		log.Debug("parsed pasted text", "questions", len(res.Questions), "blocks", res.Blocks, "rejected", res.Rejected)
		sess := reg.Get(r.Context(), auth.SubjectFromContext(r.Context()))
		sess.LoadParsed(r.Context(), res.Questions)
		writeJSON(w, http.StatusOK, newParseOut(quiz.ParsedTextMessage(len(res.Questions)), res))
	}
}

// POST /parse/pdf (multipart: file=document.pdf)
func ParsePDFHandler(reg *SessionRegistry, src extract.PageSource, maxBytes int64, log *logger.Logger) http.HandlerFunc {
	log = logger.OrNop(log)
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		// pdftotext needs a path
		ext := filepath.Ext(hdr.Filename)
		if ext == "" {
			ext = ".pdf"
		}
		tmp, err := os.CreateTemp("", "mcq-upload-*"+ext)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer os.Remove(tmp.Name())
		if _, err := io.Copy(tmp, f); err != nil {
			tmp.Close()
			http.Error(w, "upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := tmp.Close(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		text, pages, err := extract.Document(r.Context(), src, tmp.Name())
		if err != nil {
			log.Warn("document extraction failed", "file", hdr.Filename, "error", err)
			status := http.StatusInternalServerError
			var xe *extract.Error
			if errors.As(err, &xe) {
				status = http.StatusUnprocessableEntity
			}
			writeJSON(w, status, messageOut{Message: quiz.MsgExtractFailed})
			return
		}

		res := mcq.Parse(text)
		log.Info("parsed document", "file", hdr.Filename, "pages", pages,
			"questions", len(res.Questions), "rejected", res.Rejected, "fingerprint", res.Fingerprint)
		sess := reg.Get(r.Context(), auth.SubjectFromContext(r.Context()))
		sess.LoadParsed(r.Context(), res.Questions)

		out := newParseOut(quiz.ParsedDocumentMessage(len(res.Questions)), res)
		out.Pages = pages
		writeJSON(w, http.StatusOK, out)
	}
}
