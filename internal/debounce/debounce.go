// Package debounce collapses bursts of values into the last one seen within
// a quiet window.
//
// Debouncer works in two styles. In token style the caller owns the timer
// (a bubbletea tea.Tick, for instance): Schedule hands back a Token, the
// timer later delivers it to Fire, and only the newest token yields a value.
// In callback style AfterFunc manages a time.AfterFunc timer itself.
package debounce

import (
	"sync"
	"time"
)

// Token identifies one scheduled value. Tokens strictly increase.
type Token uint64

// Debouncer delivers only the most recent value scheduled within its delay.
// It is safe for concurrent use.
type Debouncer[T any] struct {
	delay time.Duration

	mu      sync.Mutex
	current Token
	pending bool
	value   T
	timer   *time.Timer
}

// New creates a Debouncer with the given quiet window. A negative delay is
// treated as zero.
func New[T any](delay time.Duration) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{delay: delay}
}

// Delay returns the quiet window.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Schedule replaces any pending value with v and returns its token. Earlier
// tokens become stale.
func (d *Debouncer[T]) Schedule(v T) Token {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scheduleLocked(v)
}

func (d *Debouncer[T]) scheduleLocked(v T) Token {
	d.current++
	d.pending = true
	d.value = v
	return d.current
}

// Fire returns the pending value if tok is still the newest token, and
// clears it. Stale or repeated tokens return false.
func (d *Debouncer[T]) Fire(tok Token) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if !d.pending || tok != d.current {
		return zero, false
	}
	v := d.value
	d.pending = false
	d.value = zero
	return v, true
}

// Pending reports whether a value is waiting to fire.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Cancel drops the pending value and stops any AfterFunc timer. Tokens
// issued so far will never fire.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.current++
	d.pending = false
	var zero T
	d.value = zero
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// AfterFunc schedules v and calls fn with it once the delay passes without
// another call. Each call restarts the window.
func (d *Debouncer[T]) AfterFunc(v T, fn func(T)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	tok := d.scheduleLocked(v)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if v, ok := d.Fire(tok); ok {
			fn(v)
		}
	})
}

// Stop is Cancel under the name used for teardown.
func (d *Debouncer[T]) Stop() {
	d.Cancel()
}
