package qrtoken

import (
	"sync"
	"time"
)

// Timer is a handle to a repeating callback started by Clock.Every.
type Timer interface {
	Stop()
}

// Clock drives countdowns. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
	Every(d time.Duration, fn func()) Timer
}

type systemClock struct{}

// SystemClock returns a Clock backed by time.Ticker.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Every(d time.Duration, fn func()) Timer {
	t := &tickerTimer{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()
	return t
}

type tickerTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// Stop is safe to call from inside the callback and more than once.
func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
