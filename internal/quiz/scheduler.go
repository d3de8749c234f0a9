package quiz

import (
	"sync"
	"time"
)

// DefaultAutoAdvanceDelay is the pause before moving on after a correct answer.
const DefaultAutoAdvanceDelay = 1200 * time.Millisecond

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// Scheduler keeps at most one pending auto-advance callback. Scheduling a new
// one stops the previous; a callback that was stopped too late to prevent it
// from firing is discarded because its generation no longer matches.
type Scheduler struct {
	mu        sync.Mutex
	delay     time.Duration
	afterFunc func(time.Duration, func()) Timer
	pending   Timer
	gen       uint64
}

func NewScheduler(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultAutoAdvanceDelay
	}
	return &Scheduler{
		delay: delay,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
}

func (s *Scheduler) Delay() time.Duration { return s.delay }

// Schedule runs fn after the delay unless Cancel or another Schedule happens
// first.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.gen++
	gen := s.gen
	s.pending = s.afterFunc(s.delay, func() {
		s.mu.Lock()
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		s.pending = nil
		s.mu.Unlock()
		fn()
	})
}

func (s *Scheduler) Cancel() {
	s.mu.Lock()
	s.stopLocked()
	s.gen++
	s.mu.Unlock()
}

func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Scheduler) stopLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
