// Package debounce runs the latest submitted function after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently submitted function once no new function
// has been submitted for the quiet period
type Debouncer struct {
	mu     sync.Mutex
	quiet  time.Duration
	timer  *time.Timer
	fn     func()
	gen    uint64
	closed bool
}

// New creates a debouncer with the given quiet period
func New(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Submit schedules fn, replacing any pending function and restarting the
// quiet period. A non-positive quiet period runs fn synchronously.
func (d *Debouncer) Submit(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.quiet <= 0 {
		d.mu.Unlock()
		fn()
		return
	}

	d.fn = fn
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
	d.mu.Unlock()
}

// Flush runs the pending function now, if any
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.take()
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops the pending function
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
}

// Stop drops the pending function and rejects further submissions
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
	d.closed = true
}

// fire ignores timers that were replaced after they had already expired
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	fn := d.take()
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// take must be called with the lock held
func (d *Debouncer) take() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.fn
	d.fn = nil
	return fn
}
