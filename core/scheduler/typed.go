// File: core/scheduler/typed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"fmt"
	"time"

	"github.com/HasdrubalTn/reactive/api"
)

// Go interfaces cannot carry method type parameters, so api.Scheduler passes
// state as any. These helpers restore a typed state for callers.

// Schedule is the typed form of api.Scheduler.Schedule.
func Schedule[S any](s api.Scheduler, state S, action func(api.Scheduler, S) api.Disposable) (api.Disposable, error) {
	if s == nil {
		return nil, api.InvalidArgument("scheduler")
	}
	if action == nil {
		return nil, api.InvalidArgument("action")
	}
	return s.Schedule(state, func(sch api.Scheduler, st any) api.Disposable {
		v, _ := st.(S)
		return action(sch, v)
	})
}

// ScheduleAfter is the typed form of api.Scheduler.ScheduleAfter.
func ScheduleAfter[S any](s api.Scheduler, state S, dueTime time.Duration, action func(api.Scheduler, S) api.Disposable) (api.Disposable, error) {
	if s == nil {
		return nil, api.InvalidArgument("scheduler")
	}
	if action == nil {
		return nil, api.InvalidArgument("action")
	}
	return s.ScheduleAfter(state, dueTime, func(sch api.Scheduler, st any) api.Disposable {
		v, _ := st.(S)
		return action(sch, v)
	})
}

// SchedulePeriodic is the typed form of api.PeriodicScheduler.SchedulePeriodic.
// It fails with api.ErrNotSupported when s has no periodic capability.
func SchedulePeriodic[S any](s api.Scheduler, state S, period time.Duration, action func(S) S) (api.Disposable, error) {
	if s == nil {
		return nil, api.InvalidArgument("scheduler")
	}
	if action == nil {
		return nil, api.InvalidArgument("action")
	}
	ps, ok := s.(api.PeriodicScheduler)
	if !ok {
		return nil, fmt.Errorf("scheduler: periodic scheduling on %T: %w", s, api.ErrNotSupported)
	}
	return ps.SchedulePeriodic(state, period, func(st any) any {
		v, _ := st.(S)
		return action(v)
	})
}
