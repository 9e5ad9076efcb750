// File: core/scheduler/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/control"
	"github.com/HasdrubalTn/reactive/core/disposable"
)

// HostScheduler schedules work on an api.Host.
type HostScheduler struct {
	host    api.Host
	logger  *slog.Logger
	metrics *control.Metrics
	clock   func() time.Time
}

var _ api.PeriodicScheduler = (*HostScheduler)(nil)

// New returns a scheduler bound to host.
func New(host api.Host, opts ...Option) (*HostScheduler, error) {
	if host == nil {
		return nil, api.InvalidArgument("host")
	}
	c := config{
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	return &HostScheduler{
		host:    host,
		logger:  c.logger,
		metrics: c.metrics,
		clock:   c.clock,
	}, nil
}

// Normalize clamps a negative due time to zero.
func Normalize(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// Now returns the scheduler clock.
func (s *HostScheduler) Now() time.Time {
	return s.clock()
}

// Schedule enqueues action on the host. Disposing the handle before the host runs
// the callback prevents the action from starting.
func (s *HostScheduler) Schedule(state any, action api.Action) (api.Disposable, error) {
	if action == nil {
		return nil, api.InvalidArgument("action")
	}
	d := disposable.NewSingleAssignment()
	if err := s.host.Enqueue(func() {
		if d.IsDisposed() {
			s.metrics.Cancelled(control.KindImmediate)
			return
		}
		s.metrics.Fired(control.KindImmediate)
		_ = d.Set(action(s, state))
	}); err != nil {
		return nil, fmt.Errorf("scheduler: enqueue: %w", err)
	}
	s.metrics.Scheduled(control.KindImmediate)
	return d, nil
}

// ScheduleAfter runs action once dueTime has elapsed. A normalized due time of
// zero takes the Schedule path.
func (s *HostScheduler) ScheduleAfter(state any, dueTime time.Duration, action api.Action) (api.Disposable, error) {
	if action == nil {
		return nil, api.InvalidArgument("action")
	}
	dt := Normalize(dueTime)
	if dt == 0 {
		return s.Schedule(state, action)
	}

	d := disposable.NewMultipleAssignment()
	e := &timerEntry{
		sched:  s,
		state:  state,
		handle: d,
	}
	e.action.Store(&actionBox{fn: action})
	e.timer = s.host.NewTimer(e.tick)
	// The cancel hook must be in place before the first tick can replace it.
	d.Set(disposable.Create(e.cancel))
	e.timer.Start(dt)
	s.metrics.Scheduled(control.KindDelayed)
	return d, nil
}

// SchedulePeriodic runs action every period, feeding each result into the next
// run, until the returned handle is disposed.
func (s *HostScheduler) SchedulePeriodic(state any, period time.Duration, action api.PeriodicAction) (api.Disposable, error) {
	if period < 0 {
		return nil, api.InvalidArgument("period").WithContext("period", period)
	}
	if action == nil {
		return nil, api.InvalidArgument("action")
	}
	e := &periodicEntry{
		sched: s,
		state: state,
	}
	e.action.Store(&periodicBox{fn: action})
	e.timer = s.host.NewTimer(e.tick)
	e.timer.Start(period)
	s.metrics.Scheduled(control.KindPeriodic)
	s.logger.Debug("periodic work scheduled", "period", period)
	return disposable.Create(e.cancel), nil
}
