// Package api
// Author: momentics
//
// Scheduler contract for immediate, timed and periodic work execution.

package api

import "time"

// Action is a unit of scheduled work. The returned Disposable, when non-nil, is
// owned by the scheduled item: disposing the item releases it too. This lets an
// action schedule follow-up work that is cancelled through the original handle.
type Action func(s Scheduler, state any) Disposable

// PeriodicAction runs once per period and returns the state for the next run.
type PeriodicAction func(state any) any

// Scheduler abstracts deferred and timed execution with best-effort cancellation.
// Disposing a returned handle before the action starts prevents it from starting;
// an action that already started runs to completion.
type Scheduler interface {
	// Now returns the scheduler's notion of current time.
	Now() time.Time

	// Schedule runs action(state) as soon as the execution context permits.
	Schedule(state any, action Action) (Disposable, error)

	// ScheduleAfter runs action(state) no earlier than dueTime from now.
	// A zero or negative dueTime behaves exactly like Schedule.
	ScheduleAfter(state any, dueTime time.Duration, action Action) (Disposable, error)
}

// PeriodicScheduler is implemented by schedulers that support recurring work.
type PeriodicScheduler interface {
	Scheduler

	// SchedulePeriodic runs action every period until the handle is disposed.
	// A negative period is rejected before any timer is created.
	SchedulePeriodic(state any, period time.Duration, action PeriodicAction) (Disposable, error)
}
