// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides deterministic test doubles for the host capability.
package fake

import (
	"sort"
	"sync"
	"time"

	"github.com/HasdrubalTn/reactive/api"
)

// Host is a manually driven api.Host with a virtual clock. Enqueued callbacks
// run only when RunPending is called; timers tick only while Advance moves the
// clock past their due time.
type Host struct {
	mu            sync.Mutex
	now           time.Time
	queue         []func()
	timers        []*Timer
	timersCreated int
	closed        bool
}

var _ api.Host = (*Host)(nil)

// NewHost returns a host whose clock starts at the Unix epoch.
func NewHost() *Host {
	return &Host{now: time.Unix(0, 0).UTC()}
}

// Now returns the virtual time.
func (h *Host) Now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

// Enqueue queues fn until the next RunPending.
func (h *Host) Enqueue(fn func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return api.ErrHostClosed
	}
	h.queue = append(h.queue, fn)
	return nil
}

// NewTimer creates a stopped virtual timer.
func (h *Host) NewTimer(tick func()) api.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := &Timer{host: h, tick: tick}
	h.timers = append(h.timers, t)
	h.timersCreated++
	return t
}

// Pending returns the number of queued callbacks.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// TimersCreated returns how many timers were ever created.
func (h *Host) TimersCreated() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timersCreated
}

// ActiveTimers returns the number of started timers.
func (h *Host) ActiveTimers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, t := range h.timers {
		if t.started {
			n++
		}
	}
	return n
}

// Close rejects further Enqueue calls.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// RunPending runs queued callbacks, including ones queued while running, until
// the queue is empty. It returns the number of callbacks run.
func (h *Host) RunPending() int {
	n := 0
	for {
		h.mu.Lock()
		if len(h.queue) == 0 {
			h.mu.Unlock()
			return n
		}
		fn := h.queue[0]
		h.queue[0] = nil
		h.queue = h.queue[1:]
		h.mu.Unlock()

		fn()
		n++
	}
}

// Advance moves the clock forward by d, firing due timers in due-time order and
// draining the queue after each tick.
func (h *Host) Advance(d time.Duration) {
	h.mu.Lock()
	target := h.now.Add(d)
	h.mu.Unlock()

	for {
		h.mu.Lock()
		t := h.nextDue(target)
		if t == nil {
			h.now = target
			h.mu.Unlock()
			break
		}
		h.now = t.due
		t.due = t.due.Add(t.interval)
		tick := t.tick
		h.mu.Unlock()

		tick()
		h.RunPending()
	}
	h.RunPending()
}

// nextDue returns the earliest started timer due at or before target.
func (h *Host) nextDue(target time.Time) *Timer {
	due := make([]*Timer, 0, len(h.timers))
	for _, t := range h.timers {
		if t.started && !t.due.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	return due[0]
}

// Timer is a virtual timer owned by a Host.
type Timer struct {
	host     *Host
	tick     func()
	interval time.Duration
	due      time.Time
	started  bool
	starts   int
}

var _ api.Timer = (*Timer)(nil)

// Start arms the timer relative to the host's current virtual time.
func (t *Timer) Start(interval time.Duration) {
	if interval < api.MinTimerInterval {
		interval = api.MinTimerInterval
	}
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	t.interval = interval
	t.due = t.host.now.Add(interval)
	t.started = true
	t.starts++
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	t.started = false
}

// Started reports whether the timer is armed.
func (t *Timer) Started() bool {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	return t.started
}
