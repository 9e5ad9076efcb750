// File: core/scheduler/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package scheduler implements api.Scheduler and api.PeriodicScheduler on top of
// an api.Host: a host enqueues callbacks and creates timers, the scheduler adds
// state passing, due-time normalization and race-free cancellation.
//
// Delayed and periodic entries move Pending -> Fired or Pending -> Cancelled
// through a compare-and-swap on an api.WorkState tag, so a timer tick and a
// Dispose call racing each other resolve to exactly one winner. An action that
// already started runs to completion; disposal only prevents actions that have
// not started.
package scheduler
