// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package workers

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of triggers into a single callback invocation
// after a quiet period. The editor calls Trigger on every keystroke with the
// current save closure; only the last closure runs, delay after the last
// keystroke. Used for auto-save so typing never produces a write per key.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// NewDebouncer creates a Debouncer with the given quiet period. A zero or
// negative delay means every Trigger fires its callback on the next timer
// tick, effectively immediately.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run once the quiet period elapses without another
// Trigger. A Trigger during the quiet period replaces the scheduled callback
// and restarts the clock.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs the scheduled callback immediately, if any. Called when the
// note view closes or the app backgrounds so the last edit is never lost to
// a pending timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop drops the scheduled callback without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
