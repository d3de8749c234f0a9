package http

import (
	"context"
	"sync"
	"time"

	"github.com/mind-engage/mcq-reviewer/internal/logger"
	"github.com/mind-engage/mcq-reviewer/internal/quiz"
	"github.com/mind-engage/mcq-reviewer/internal/storage"
)

// SessionRegistry holds one quiz session per authenticated subject. Sessions
// are restored from the store the first time a subject is seen.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*quiz.Session

	prefix string
	store  storage.KV
	events quiz.EventSink
	log    *logger.Logger
	delay  time.Duration
}

func NewSessionRegistry(prefix string, store storage.KV, events quiz.EventSink, log *logger.Logger, delay time.Duration) *SessionRegistry {
	if prefix == "" {
		prefix = quiz.DefaultSessionKey
	}
	return &SessionRegistry{
		sessions: map[string]*quiz.Session{},
		prefix:   prefix,
		store:    store,
		events:   events,
		log:      logger.OrNop(log),
		delay:    delay,
	}
}

func (r *SessionRegistry) Key(subject string) string { return r.prefix + ":" + subject }

func (r *SessionRegistry) Get(ctx context.Context, subject string) *quiz.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[subject]; ok {
		return s
	}
	s := quiz.NewSession(quiz.Options{
		Key:              r.Key(subject),
		Store:            r.store,
		Events:           r.events,
		Logger:           r.log,
		AutoAdvanceDelay: r.delay,
	})
	if msg, ok := s.Restore(ctx); ok {
		r.log.Info(msg, "subject", subject)
	}
	r.sessions[subject] = s
	return s
}

// Close cancels every pending auto-advance.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.Close()
	}
}
