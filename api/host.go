// Package api
// Author: momentics
//
// Host execution capability consumed by schedulers.

package api

import "time"

// MinTimerInterval is the shortest interval a host timer ticks at. Hosts clamp
// shorter (including zero) intervals to it.
const MinTimerInterval = time.Millisecond

// Host is the narrow capability a scheduler needs from an execution environment:
// enqueue a callback to run soon, and create timers. Adapters for concrete event
// loops and worker pools implement it outside the scheduler core.
type Host interface {
	// Enqueue schedules fn for execution. It returns ErrHostClosed after shutdown.
	Enqueue(fn func()) error

	// NewTimer creates a stopped timer that calls tick every interval once started.
	NewTimer(tick func()) Timer
}

// Timer is a host timer. Ticks are delivered until Stop is called.
type Timer interface {
	// Start arms the timer with the given interval.
	Start(interval time.Duration)

	// Stop disarms the timer. Stop is idempotent.
	Stop()
}
