// Package debounce delays delivery of rapidly changing values until input goes quiet.
package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultDelay is the quiescence window used for search input.
const DefaultDelay = 300 * time.Millisecond

// Debouncer delivers the last value passed to Trigger once no further Trigger has
// happened for the configured delay. It holds a single timer slot.
type Debouncer[T any] struct {
	clock   clock.Clock
	deliver func(T)
	timer   *clock.Timer
	pending T
	delay   time.Duration
	seq     uint64
	mu      sync.Mutex
	armed   bool
	stopped bool
}

// New creates a debouncer. A nil clock uses the wall clock.
func New[T any](delay time.Duration, clk clock.Clock, deliver func(T)) *Debouncer[T] {
	if clk == nil {
		clk = clock.New()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		clock:   clk,
		delay:   delay,
		deliver: deliver,
	}
}

// Trigger records v and re-arms the timer, replacing any pending delivery.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.cancelLocked()
	d.pending = v
	d.armed = true
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(seq)
	})
}

// Flush cancels any pending delivery and delivers v immediately.
func (d *Debouncer[T]) Flush(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.mu.Unlock()

	d.deliver(v)
}

// Stop cancels any pending delivery. Later calls to Trigger and Flush are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether a delivery is armed.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// cancelLocked stops the timer and invalidates a callback that may already be running.
func (d *Debouncer[T]) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.armed = false
	var zero T
	d.pending = zero
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || !d.armed || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.timer = nil
	var zero T
	d.pending = zero
	d.mu.Unlock()

	d.deliver(v)
}
