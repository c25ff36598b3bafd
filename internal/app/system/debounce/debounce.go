// internal/app/system/debounce/debounce.go
package debounce

import (
	"sync"
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/clock"
)

// DefaultDelay is the quiet period the search box waits for before a
// keystroke sequence is committed.
const DefaultDelay = 500 * time.Millisecond

// Debouncer runs only the most recently triggered function, and only after
// Delay has passed without another Trigger. Each Trigger restarts the
// quiet period.
//
// A function may still run after Stop or a later Trigger if its timer was
// already firing on another goroutine; callers that care tag their work
// with a generation and drop stale results.
type Debouncer struct {
	clk   clock.Clock
	delay time.Duration

	mu      sync.Mutex
	timer   *clock.Timer
	pending func()
}

// New returns a Debouncer using clk. A non-positive delay means DefaultDelay.
func New(clk clock.Clock, delay time.Duration) *Debouncer {
	if clk == nil {
		clk = clock.Real()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{clk: clk, delay: delay}
}

// Delay returns the configured quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger schedules f, replacing any function that has not yet run.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	d.pending = f
	if d.timer != nil {
		d.timer.Reset(d.delay)
		d.mu.Unlock()
		return
	}
	d.timer = d.clk.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

// Stop cancels the pending function, if any. It reports whether a pending
// function was cancelled.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
	if d.timer == nil {
		return false
	}
	return d.timer.Stop()
}

// Pending reports whether a function is waiting for the quiet period to end.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	f := d.pending
	d.pending = nil
	d.mu.Unlock()
	if f != nil {
		f()
	}
}
