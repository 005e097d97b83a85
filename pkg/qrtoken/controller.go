// Package qrtoken manages the short-lived QR token an employee shows to the
// security guard to check in or out.
package qrtoken

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultRetryAfter dipakai saat respons 429 tidak membawa Retry-After yang valid.
	DefaultRetryAfter     = 3
	defaultRequestTimeout = 10 * time.Second
	retiredCapacity       = 32
)

// ErrInvalidToken marks a successful response whose token cannot be used.
var ErrInvalidToken = errors.New("token QR tidak valid")

// Issuer fetches a fresh token from the Attendance API.
type Issuer interface {
	IssueToken(ctx context.Context) (*Token, error)
}

// IssuerFunc adapts a function to Issuer.
type IssuerFunc func(ctx context.Context) (*Token, error)

func (f IssuerFunc) IssueToken(ctx context.Context) (*Token, error) { return f(ctx) }

// StatusError is implemented by issuance errors that carry an HTTP response.
type StatusError interface {
	error
	HTTPStatus() int
	RetryAfterHeader() string
}

// Hooks receive every observable change. They run on the goroutine that
// caused the transition, after the controller lock is released, so they may
// call back into the Controller.
type Hooks struct {
	OnState          func(State)
	OnNotice         func(Notice)
	OnSessionExpired func()
}

type Options struct {
	Clock Clock
	// Spawn runs an issuance request. Defaults to a new goroutine.
	Spawn          func(func())
	Hooks          Hooks
	RequestTimeout time.Duration
	// IdleTimeout is used by Registry only: a display nobody acquired or
	// fetched for this long is closed by Sweep. Defaults to DefaultIdleTimeout.
	IdleTimeout time.Duration
}

type event struct {
	state   *State
	notice  *Notice
	expired bool
}

// Controller owns the lifecycle of one token for one open display.
type Controller struct {
	issuer  Issuer
	clock   Clock
	spawn   func(func())
	hooks   Hooks
	timeout time.Duration

	mu      sync.Mutex
	state   State
	gen     uint64
	timer   Timer
	cancel  context.CancelFunc
	retired []string
	pending []event
}

func NewController(issuer Issuer, opts Options) *Controller {
	c := &Controller{
		issuer:  issuer,
		clock:   opts.Clock,
		spawn:   opts.Spawn,
		hooks:   opts.Hooks,
		timeout: opts.RequestTimeout,
	}
	if c.clock == nil {
		c.clock = SystemClock()
	}
	if c.spawn == nil {
		c.spawn = func(f func()) { go f() }
	}
	if c.timeout <= 0 {
		c.timeout = defaultRequestTimeout
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open starts an issuance from Idle or Error. It is a no-op while Loading,
// Ready or in Backoff.
func (c *Controller) Open() {
	c.mu.Lock()
	switch c.state.Phase {
	case PhaseLoading, PhaseReady, PhaseBackoff:
		c.unlock()
		return
	}
	run := c.beginIssueLocked()
	c.unlock()
	c.spawn(run)
}

// RefreshNow replaces any current token with a new one. It is refused with a
// notice during Backoff, and ignored while a request is already in flight.
func (c *Controller) RefreshNow() {
	c.mu.Lock()
	switch c.state.Phase {
	case PhaseBackoff:
		if c.state.SecondsRemaining > 0 {
			c.noticeLocked(Notice{
				Level:   LevelWarning,
				Kind:    FailureRateLimited,
				Message: fmt.Sprintf(msgWaitFormat, c.state.SecondsRemaining),
			})
			c.unlock()
			return
		}
	case PhaseLoading:
		c.unlock()
		return
	}
	run := c.beginIssueLocked()
	c.unlock()
	c.spawn(run)
}

// Close stops all timers, discards the token and returns to Idle. Any
// response still in flight is dropped when it arrives.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closeLocked()
	c.unlock()
}

func (c *Controller) closeLocked() {
	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.retireLocked()
	c.gen++
	if c.state.Phase != PhaseIdle {
		c.setLocked(State{Phase: PhaseIdle})
	}
}

func (c *Controller) beginIssueLocked() func() {
	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
	}
	c.retireLocked()
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel
	c.setLocked(State{Phase: PhaseLoading})

	return func() {
		tok, err := c.issuer.IssueToken(ctx)
		cancel()
		c.complete(gen, tok, err)
	}
}

func (c *Controller) complete(gen uint64, tok *Token, err error) {
	c.mu.Lock()
	if gen != c.gen || c.state.Phase != PhaseLoading {
		c.unlock()
		return
	}
	c.cancel = nil

	if err == nil {
		switch {
		case tok == nil || tok.Value == "" || tok.TTLSeconds <= 0:
			err = ErrInvalidToken
		case c.isRetiredLocked(tok.Value):
			err = fmt.Errorf("%w: nilai token dipakai ulang", ErrInvalidToken)
		}
	}
	if err != nil {
		c.failLocked(gen, err)
		c.unlock()
		return
	}

	issued := &Token{Value: tok.Value, TTLSeconds: tok.TTLSeconds, IssuedAt: c.clock.Now()}
	c.setLocked(State{Phase: PhaseReady, Token: issued, SecondsRemaining: issued.TTLSeconds})
	c.timer = c.clock.Every(time.Second, func() { c.countdownTick(gen) })
	c.unlock()
}

func (c *Controller) failLocked(gen uint64, err error) {
	kind, retryAfter := Classify(err)
	log.Printf("qrtoken: issuance failed (%s): %v", kind, err)

	switch kind {
	case FailureUnauthorized:
		c.setLocked(State{Phase: PhaseError, Reason: kind})
		c.noticeLocked(failureNotice(kind))
		c.closeLocked()
		c.pending = append(c.pending, event{expired: true})
	case FailureRateLimited:
		c.setLocked(State{Phase: PhaseBackoff, SecondsRemaining: retryAfter})
		c.noticeLocked(failureNotice(kind))
		c.timer = c.clock.Every(time.Second, func() { c.backoffTick(gen) })
	default:
		c.setLocked(State{Phase: PhaseError, Reason: kind})
		c.noticeLocked(failureNotice(kind))
	}
}

func (c *Controller) countdownTick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state.Phase != PhaseReady {
		c.unlock()
		return
	}
	remaining := c.state.SecondsRemaining - 1
	if remaining > 0 {
		next := c.state
		next.SecondsRemaining = remaining
		c.setLocked(next)
		c.unlock()
		return
	}
	// Token habis: ambil ulang tepat satu kali.
	run := c.beginIssueLocked()
	c.unlock()
	c.spawn(run)
}

func (c *Controller) backoffTick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state.Phase != PhaseBackoff {
		c.unlock()
		return
	}
	remaining := c.state.SecondsRemaining - 1
	if remaining > 0 {
		c.setLocked(State{Phase: PhaseBackoff, SecondsRemaining: remaining})
	} else {
		c.stopTimerLocked()
		c.setLocked(State{Phase: PhaseIdle})
	}
	c.unlock()
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) retireLocked() {
	if c.state.Phase != PhaseReady || c.state.Token == nil {
		return
	}
	c.retired = append(c.retired, c.state.Token.Value)
	if len(c.retired) > retiredCapacity {
		c.retired = c.retired[len(c.retired)-retiredCapacity:]
	}
}

func (c *Controller) isRetiredLocked(value string) bool {
	for _, v := range c.retired {
		if v == value {
			return true
		}
	}
	return false
}

func (c *Controller) setLocked(s State) {
	c.state = s
	c.pending = append(c.pending, event{state: &s})
}

func (c *Controller) noticeLocked(n Notice) {
	c.pending = append(c.pending, event{notice: &n})
}

// unlock releases the lock, then delivers queued events in order.
func (c *Controller) unlock() {
	events := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, ev := range events {
		switch {
		case ev.state != nil:
			if c.hooks.OnState != nil {
				c.hooks.OnState(*ev.state)
			}
		case ev.notice != nil:
			if c.hooks.OnNotice != nil {
				c.hooks.OnNotice(*ev.notice)
			}
		case ev.expired:
			if c.hooks.OnSessionExpired != nil {
				c.hooks.OnSessionExpired()
			}
		}
	}
}

// Classify maps an issuance error to its failure kind and, for rate limiting,
// the number of seconds to back off.
func Classify(err error) (FailureKind, int) {
	if errors.Is(err, ErrInvalidToken) {
		return FailureServer, 0
	}
	var se StatusError
	if !errors.As(err, &se) {
		return FailureNetwork, 0
	}
	switch se.HTTPStatus() {
	case 401, 403:
		return FailureUnauthorized, 0
	case 429:
		return FailureRateLimited, ParseRetryAfter(se.RetryAfterHeader())
	}
	return FailureServer, 0
}

// ParseRetryAfter reads a Retry-After value in whole seconds, falling back to
// DefaultRetryAfter when it is absent, malformed or not positive.
func ParseRetryAfter(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return DefaultRetryAfter
	}
	return n
}
