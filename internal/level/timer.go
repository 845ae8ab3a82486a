package level

import (
	"context"
	"sync"
	"time"
)

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the real clock.
var SystemClock Clock = systemClock{}

// Timer measures an attempt in whole seconds from its start time, so a
// missed tick never loses time.
type Timer struct {
	start   time.Time
	elapsed int
	running bool
}

// Start records the start time and zeroes the count.
func (t *Timer) Start(now time.Time) {
	t.start = now
	t.elapsed = 0
	t.running = true
}

// Tick recomputes elapsed seconds. It does nothing once stopped.
func (t *Timer) Tick(now time.Time) int {
	if t.running {
		if d := now.Sub(t.start); d > 0 {
			t.elapsed = int(d / time.Second)
		}
	}
	return t.elapsed
}

// Stop freezes the count. Stopping twice is harmless.
func (t *Timer) Stop() {
	t.running = false
}

// Running reports whether the timer counts.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the last computed count.
func (t *Timer) Elapsed() int {
	return t.elapsed
}

// Ticker calls a function on every interval until stopped.
type Ticker struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartTicker runs fn every interval on its own goroutine.
func StartTicker(ctx context.Context, interval time.Duration, fn func(time.Time)) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tk.C:
				fn(now)
			}
		}
	}()
	return t
}

// Stop cancels the ticker without waiting. Safe to call repeatedly and on nil.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
}

// Exited reports whether the ticker goroutine has returned.
func (t *Ticker) Exited() bool {
	if t == nil {
		return true
	}
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the ticker goroutine has exited.
func (t *Ticker) Wait() {
	if t == nil {
		return
	}
	<-t.done
}
