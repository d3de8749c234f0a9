package quiz

import (
	"sync"
	"testing"
	"time"
)

type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) afterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs timer i even if it was stopped, like a timer racing its Stop.
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	t.fired = true
	c.mu.Unlock()
	t.f()
}

func newFakeScheduler() (*Scheduler, *fakeClock) {
	s := NewScheduler(0)
	c := &fakeClock{}
	s.afterFunc = c.afterFunc
	return s, c
}

func TestSchedulerDefaultDelay(t *testing.T) {
	if d := NewScheduler(0).Delay(); d != 1200*time.Millisecond {
		t.Fatalf("delay = %v", d)
	}
}

func TestSchedulerReplacesPending(t *testing.T) {
	s, clock := newFakeScheduler()
	var got []string
	s.Schedule(func() { got = append(got, "first") })
	s.Schedule(func() { got = append(got, "second") })

	if !clock.timers[0].stopped {
		t.Fatal("first timer not stopped")
	}
	clock.fire(0)
	clock.fire(1)
	if len(got) != 1 || got[0] != "second" {
		t.Fatalf("callbacks run = %v", got)
	}
	if s.Pending() {
		t.Fatal("pending after fire")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s, clock := newFakeScheduler()
	ran := false
	s.Schedule(func() { ran = true })
	if !s.Pending() {
		t.Fatal("not pending after Schedule")
	}
	s.Cancel()
	clock.fire(0)
	if ran {
		t.Fatal("canceled callback ran")
	}
	if s.Pending() {
		t.Fatal("pending after Cancel")
	}
}
