package quiz

import (
	"context"
	"sync"
	"time"

	"github.com/mind-engage/mcq-reviewer/internal/logger"
	"github.com/mind-engage/mcq-reviewer/internal/mcq"
	"github.com/mind-engage/mcq-reviewer/internal/storage"
)

const (
	EventQuizStarted     = "QuizStarted"
	EventAnswerSubmitted = "AnswerSubmitted"
	EventQuizFinished    = "QuizFinished"
	EventSessionCleared  = "SessionCleared"
)

// EventSink receives lifecycle events. eventlog.EventRepo implements it.
type EventSink interface {
	Emit(ctx context.Context, sessionKey, typ string, data any) error
}

type Options struct {
	Key              string     // storage key; DefaultSessionKey when empty
	Store            storage.KV // nil disables persistence
	Events           EventSink
	Logger           *logger.Logger
	Rand             Rand
	AutoAdvanceDelay time.Duration
	// OnChange is called after an auto-advance, outside the session lock.
	OnChange func(Snapshot)
}

// Session owns the live quiz for one user. All methods are safe for
// concurrent use; the auto-advance timer calls back on its own goroutine.
type Session struct {
	mu       sync.Mutex
	key      string
	store    *storage.BestEffort
	events   EventSink
	log      *logger.Logger
	rand     Rand
	sched    *Scheduler
	onChange func(Snapshot)

	parsed   []mcq.Question
	state    State
	settings Settings
}

func NewSession(opts Options) *Session {
	if opts.Key == "" {
		opts.Key = DefaultSessionKey
	}
	log := logger.OrNop(opts.Logger).With("session", opts.Key)
	return &Session{
		key:      opts.Key,
		store:    storage.NewBestEffort(opts.Store, log),
		events:   opts.Events,
		log:      log,
		rand:     opts.Rand,
		sched:    NewScheduler(opts.AutoAdvanceDelay),
		onChange: opts.OnChange,
		parsed:   []mcq.Question{},
		settings: DefaultSettings(),
	}
}

func (s *Session) Key() string { return s.key }

// Restore loads the saved session, if any. It reports whether one was found
// and accepted.
func (s *Session) Restore(ctx context.Context) (string, bool) {
	b, ok := s.store.Get(ctx, s.key)
	if !ok {
		return "", false
	}
	parsed, st, set, err := decodeSession(b)
	if err != nil {
		s.log.Warn("discarding saved session", "error", err)
		return "", false
	}
	s.mu.Lock()
	s.sched.Cancel()
	s.parsed, s.state, s.settings = parsed, st, set
	s.mu.Unlock()
	return restoredMessage(len(parsed)), true
}

// LoadParsed replaces the parsed set. A running quiz keeps its own copy.
func (s *Session) LoadParsed(ctx context.Context, qs []mcq.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsed = mcq.CloneAll(qs)
	if s.parsed == nil {
		s.parsed = []mcq.Question{}
	}
	s.persistLocked(ctx)
}

func (s *Session) Parsed() []mcq.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mcq.CloneAll(s.parsed)
}

// Start prepares a new quiz from the parsed set. It returns false when
// nothing has been parsed.
func (s *Session) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.parsed) == 0 {
		return false
	}
	s.sched.Cancel()
	s.state = Prepare(s.parsed, s.settings.prepareOptions(), s.rand)
	s.log.Debug("quiz started", "total", len(s.state.Questions))
	s.emit(ctx, EventQuizStarted, map[string]any{
		"total":            len(s.state.Questions),
		"shuffleQuestions": s.settings.ShuffleQuestions,
		"shuffleOptions":   s.settings.ShuffleOptions,
	})
	s.persistLocked(ctx)
	return true
}

// Restart is Start under its user-facing name.
func (s *Session) Restart(ctx context.Context) bool { return s.Start(ctx) }

// Submit records an answer for the current question.
func (s *Session) Submit(ctx context.Context, key string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.state.Submit(key)
	if !ok {
		return s.snapshotLocked(), false
	}
	s.state = next
	idx := next.CurrentIndex
	ev, _ := next.Event(idx)
	s.emit(ctx, EventAnswerSubmitted, map[string]any{
		"index":     idx,
		"number":    next.Questions[idx].Number,
		"chosenKey": ev.ChosenKey,
		"isCorrect": ev.IsCorrect,
	})
	s.persistLocked(ctx)
	if ev.IsCorrect && s.settings.AutoNext {
		s.sched.Schedule(func() { s.autoAdvance(idx) })
	}
	return s.snapshotLocked(), true
}

// Next advances past a revealed question.
func (s *Session) Next(ctx context.Context) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	ok := s.advanceLocked(ctx)
	return s.snapshotLocked(), ok
}

func (s *Session) autoAdvance(idx int) {
	s.mu.Lock()
	if s.state.Phase != Revealed || s.state.CurrentIndex != idx {
		s.mu.Unlock()
		return
	}
	s.advanceLocked(context.Background())
	snap := s.snapshotLocked()
	onChange := s.onChange
	s.mu.Unlock()
	if onChange != nil {
		onChange(snap)
	}
}

func (s *Session) advanceLocked(ctx context.Context) bool {
	next, ok := s.state.Advance()
	if !ok {
		return false
	}
	s.state = next
	if next.Phase == Finished {
		res := next.Result()
		s.log.Debug("quiz finished", "score", res.Score, "total", res.Total)
		s.emit(ctx, EventQuizFinished, map[string]any{
			"score":      res.Score,
			"total":      res.Total,
			"percentage": res.Percentage,
		})
	}
	s.persistLocked(ctx)
	return true
}

// Clear drops the parsed set, the quiz and the saved blob.
func (s *Session) Clear(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	s.store.Remove(ctx, s.key)
	s.parsed = []mcq.Question{}
	s.state = Clear()
	s.emit(ctx, EventSessionCleared, nil)
	return MsgSessionCleared
}

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies set. Turning saving off removes the stored blob;
// turning it on saves immediately. The returned message is empty unless
// SessionSave changed.
func (s *Session) UpdateSettings(ctx context.Context, set Settings) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.settings.SessionSave
	s.settings = set
	if !set.AutoNext {
		s.sched.Cancel()
	}
	switch {
	case was && !set.SessionSave:
		s.store.Remove(ctx, s.key)
		return MsgSaveDisabled
	case !was && set.SessionSave:
		s.persistLocked(ctx)
		return MsgSaveEnabled
	}
	s.persistLocked(ctx)
	return ""
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns a copy of the live state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close cancels any pending auto-advance.
func (s *Session) Close() { s.sched.Cancel() }

func (s *Session) snapshotLocked() Snapshot { return s.state.Snapshot(len(s.parsed)) }

func (s *Session) persistLocked(ctx context.Context) {
	if !s.settings.SessionSave {
		return
	}
	b, err := encodeSession(s.parsed, s.state, s.settings)
	if err != nil {
		s.log.Warn("encode session failed", "error", err)
		return
	}
	s.store.Set(ctx, s.key, b)
}

func (s *Session) emit(ctx context.Context, typ string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Emit(ctx, s.key, typ, data); err != nil {
		s.log.Warn("event emit failed", "type", typ, "error", err)
	}
}
