package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mind-engage/mcq-reviewer/internal/auth"
	authmw "github.com/mind-engage/mcq-reviewer/internal/auth/middleware"
	"github.com/mind-engage/mcq-reviewer/internal/config"
	"github.com/mind-engage/mcq-reviewer/internal/eventlog"
	"github.com/mind-engage/mcq-reviewer/internal/extract"
	"github.com/mind-engage/mcq-reviewer/internal/logger"
	"github.com/mind-engage/mcq-reviewer/internal/rbac"
)

type Deps struct {
	Config   config.Config
	Auth     *authmw.AuthService
	Sessions *SessionRegistry
	Events   *eventlog.EventRepo
	PDF      extract.PageSource
	DB       *sql.DB // pinged by /readyz; may be nil
	Log      *logger.Logger
}

func NewRouter(d Deps) http.Handler {
	log := logger.OrNop(d.Log)
	cfg := d.Config

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/guest", auth.GuestLoginHandler(d.Auth, cfg))
	r.Post("/auth/admin", auth.AdminLoginHandler(d.Auth, cfg))

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))

		pr.With(rbac.Require(rbac.PermParse)).
			Post("/parse/text", ParseTextHandler(d.Sessions, cfg.MaxUploadBytes, log))
		pr.With(rbac.Require(rbac.PermParse)).
			Post("/parse/pdf", ParsePDFHandler(d.Sessions, d.PDF, cfg.MaxUploadBytes, log))

		pr.With(rbac.Require(rbac.PermExport)).
			Get("/questions/export", ExportQuestionsHandler(d.Sessions))
		pr.With(rbac.RequireAny(rbac.PermImport, rbac.PermParse)).
			Post("/questions/import", ImportQuestionsHandler(d.Sessions, cfg.MaxUploadBytes))

		pr.Route("/quiz", func(qr chi.Router) {
			qr.Use(rbac.Require(rbac.PermQuiz))
			qr.Get("/", GetQuizHandler(d.Sessions))
			qr.Post("/start", StartQuizHandler(d.Sessions, false))
			qr.Post("/restart", StartQuizHandler(d.Sessions, true))
			qr.Post("/submit", SubmitAnswerHandler(d.Sessions))
			qr.Post("/next", NextQuestionHandler(d.Sessions))
			qr.Get("/settings", GetSettingsHandler(d.Sessions))
			qr.With(rbac.Require(rbac.PermSettings)).
				Put("/settings", UpdateSettingsHandler(d.Sessions))
		})

		pr.With(rbac.Require(rbac.PermClear)).
			Delete("/session", ClearSessionHandler(d.Sessions))

		if d.Events != nil {
			pr.With(rbac.Require(rbac.PermEvents)).
				Get("/admin/events", ListEventsHandler(d.Events))
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.DB.PingContext(ctx); err != nil {
				http.Error(w, "db: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(200)
	})
	return r
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
