package qrtoken

import (
	"log"
	"sync"
	"time"
)

// DefaultIdleTimeout is how long a display may go unpolled before Sweep
// closes it.
const DefaultIdleTimeout = 2 * time.Minute

var logf = log.Printf

// Snapshot is what a rendering layer polls: the current state plus notices
// not yet shown.
type Snapshot struct {
	State        State    `json:"state"`
	Notices      []Notice `json:"notices"`
	SessionEnded bool     `json:"session_ended"`
}

// Display pairs a Controller with an inbox of undelivered notices.
type Display struct {
	*Controller

	mu        sync.Mutex
	notices   []Notice
	ended     bool
	logged    Phase
	lastSeen  time.Time
	expiresAt time.Time
}

func newDisplay(key string, issuer Issuer, opts Options) *Display {
	d := &Display{}
	user := opts.Hooks
	opts.Hooks = Hooks{
		OnState: func(s State) {
			d.mu.Lock()
			changed := s.Phase != d.logged
			d.logged = s.Phase
			d.mu.Unlock()
			if changed {
				logf("[qr] display %s -> %s", key, s)
			}
			if user.OnState != nil {
				user.OnState(s)
			}
		},
		OnNotice: func(n Notice) {
			d.mu.Lock()
			d.notices = append(d.notices, n)
			d.mu.Unlock()
			if user.OnNotice != nil {
				user.OnNotice(n)
			}
		},
		OnSessionExpired: func() {
			d.mu.Lock()
			d.ended = true
			d.mu.Unlock()
			if user.OnSessionExpired != nil {
				user.OnSessionExpired()
			}
		},
	}
	d.Controller = NewController(issuer, opts)
	return d
}

// Snapshot returns the state and drains pending notices.
func (d *Display) Snapshot() Snapshot {
	state := d.State()
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := Snapshot{State: state, Notices: d.notices, SessionEnded: d.ended}
	if snap.Notices == nil {
		snap.Notices = []Notice{}
	}
	d.notices = nil
	return snap
}

// SessionEnded reports whether an unauthorized response closed this display.
func (d *Display) SessionEnded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ended
}

func (d *Display) touch(now time.Time) {
	d.mu.Lock()
	d.lastSeen = now
	d.mu.Unlock()
}

// stale reports whether the display should be evicted at now.
func (d *Display) stale(now time.Time, idle time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.ended:
		return true
	case !d.expiresAt.IsZero() && !now.Before(d.expiresAt):
		return true
	}
	return now.Sub(d.lastSeen) >= idle
}

// Registry holds one Display per login session. Displays are evicted by Sweep
// once their session ended or expired, or once nobody polled them for the
// idle timeout.
type Registry struct {
	opts  Options
	clock Clock
	idle  time.Duration

	mu       sync.Mutex
	displays map[string]*Display
	sweeper  Timer
}

func NewRegistry(opts Options) *Registry {
	r := &Registry{opts: opts, clock: opts.Clock, idle: opts.IdleTimeout, displays: make(map[string]*Display)}
	if r.clock == nil {
		r.clock = SystemClock()
		r.opts.Clock = r.clock
	}
	if r.idle <= 0 {
		r.idle = DefaultIdleTimeout
	}
	return r
}

// Acquire returns the display for key, creating it with issuer when absent
// or when the previous one ended its session. expiresAt is the end of the
// login session; the zero time means no expiry.
func (r *Registry) Acquire(key string, issuer Issuer, expiresAt time.Time) *Display {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.displays[key]; ok && !d.SessionEnded() {
		d.touch(now)
		return d
	}
	d := newDisplay(key, issuer, r.opts)
	d.lastSeen = now
	d.expiresAt = expiresAt
	r.displays[key] = d
	return d
}

// Get returns the display for key and counts as activity on it.
func (r *Registry) Get(key string) (*Display, bool) {
	r.mu.Lock()
	d, ok := r.displays[key]
	r.mu.Unlock()
	if ok {
		d.touch(r.clock.Now())
	}
	return d, ok
}

// Remove closes the display for key and forgets it.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	d, ok := r.displays[key]
	delete(r.displays, key)
	r.mu.Unlock()
	if ok {
		d.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.displays)
}

// Sweep closes and forgets every stale display and returns how many it
// removed.
func (r *Registry) Sweep() int {
	now := r.clock.Now()
	var evicted []*Display
	r.mu.Lock()
	for key, d := range r.displays {
		if d.stale(now, r.idle) {
			delete(r.displays, key)
			evicted = append(evicted, d)
		}
	}
	r.mu.Unlock()
	for _, d := range evicted {
		d.Close()
	}
	if len(evicted) > 0 {
		logf("[qr] sweep removed %d display(s), %d left", len(evicted), r.Len())
	}
	return len(evicted)
}

// StartSweeper runs Sweep every interval until CloseAll. Calling it again
// replaces the previous schedule.
func (r *Registry) StartSweeper(interval time.Duration) {
	t := r.clock.Every(interval, func() { r.Sweep() })
	r.mu.Lock()
	prev := r.sweeper
	r.sweeper = t
	r.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}
}

// CloseAll stops the sweeper and closes every display, used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	displays := r.displays
	r.displays = make(map[string]*Display)
	sweeper := r.sweeper
	r.sweeper = nil
	r.mu.Unlock()
	if sweeper != nil {
		sweeper.Stop()
	}
	for _, d := range displays {
		d.Close()
	}
}
