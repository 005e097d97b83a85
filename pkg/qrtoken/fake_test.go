package qrtoken

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"
)

// fakeClock fires timers only when Tick is called.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	every   time.Duration
	next    time.Time
	fn      func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Every(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, every: d, next: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}

// Tick advances one second and runs every due timer.
func (c *fakeClock) Tick() {
	c.mu.Lock()
	c.now = c.now.Add(time.Second)
	var due []*fakeTimer
	live := c.timers[:0]
	for _, t := range c.timers {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if !t.next.After(c.now) {
			t.next = t.next.Add(t.every)
			due = append(due, t)
		}
	}
	c.timers = live
	c.mu.Unlock()

	for _, t := range due {
		c.mu.Lock()
		stopped := t.stopped
		c.mu.Unlock()
		if !stopped {
			t.fn()
		}
	}
}

func (c *fakeClock) Ticks(n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

func (c *fakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// queue holds issuance requests until run, standing in for requests in flight.
type queue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *queue) spawn(f func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, f)
}

func (q *queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *queue) runAll() {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, f := range tasks {
		f()
	}
}

func syncSpawn(f func()) { f() }

// scriptedIssuer replays responses in order; the last one repeats.
type scriptedIssuer struct {
	mu        sync.Mutex
	calls     int
	responses []response
}

type response struct {
	tok *Token
	err error
}

func (s *scriptedIssuer) IssueToken(ctx context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	r := s.responses[len(s.responses)-1]
	if s.calls <= len(s.responses) {
		r = s.responses[s.calls-1]
	}
	return r.tok, r.err
}

func (s *scriptedIssuer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func issued(value string, ttl int) response {
	return response{tok: &Token{Value: value, TTLSeconds: ttl}}
}

// countingIssuer returns a fresh value on every call.
func countingIssuer(ttl int) *scriptedIssuer {
	s := &scriptedIssuer{}
	for i := 1; i <= 50; i++ {
		s.responses = append(s.responses, issued("tok-"+strconv.Itoa(i), ttl))
	}
	return s
}

type statusErr struct {
	code       int
	retryAfter string
}

func (e *statusErr) Error() string { return "status " + strconv.Itoa(e.code) }
func (e *statusErr) HTTPStatus() int { return e.code }
func (e *statusErr) RetryAfterHeader() string { return e.retryAfter }

func fail(code int, retryAfter string) response {
	return response{err: &statusErr{code: code, retryAfter: retryAfter}}
}

var errNoRoute = errors.New("dial tcp: connection refused")

type recorder struct {
	mu      sync.Mutex
	states  []State
	notices []Notice
	expired int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnState: func(s State) {
			r.mu.Lock()
			r.states = append(r.states, s)
			r.mu.Unlock()
		},
		OnNotice: func(n Notice) {
			r.mu.Lock()
			r.notices = append(r.notices, n)
			r.mu.Unlock()
		},
		OnSessionExpired: func() {
			r.mu.Lock()
			r.expired++
			r.mu.Unlock()
		},
	}
}

func (r *recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func (r *recorder) Phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, len(r.states))
	for i, s := range r.states {
		out[i] = s.Phase
	}
	return out
}
