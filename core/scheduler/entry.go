// File: core/scheduler/entry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"sync/atomic"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/control"
	"github.com/HasdrubalTn/reactive/core/disposable"
)

type actionBox struct {
	fn api.Action
}

type periodicBox struct {
	fn api.PeriodicAction
}

// timerEntry is a one-shot delayed action driven by a host timer.
type timerEntry struct {
	sched  *HostScheduler
	status atomic.Int32 // api.WorkState
	timer  api.Timer
	action atomic.Pointer[actionBox]
	state  any
	handle *disposable.MultipleAssignment
}

func (e *timerEntry) tick() {
	if !e.status.CompareAndSwap(int32(api.WorkPending), int32(api.WorkFired)) {
		return
	}
	e.timer.Stop()
	box := e.action.Swap(nil)
	if box == nil {
		return
	}
	e.sched.metrics.Fired(control.KindDelayed)
	e.handle.Set(box.fn(e.sched, e.state))
}

func (e *timerEntry) cancel() {
	if !e.status.CompareAndSwap(int32(api.WorkPending), int32(api.WorkCancelled)) {
		return
	}
	e.timer.Stop()
	e.action.Store(nil)
	e.sched.metrics.Cancelled(control.KindDelayed)
}

// Status reports the entry's current state.
func (e *timerEntry) Status() api.WorkState {
	return api.WorkState(e.status.Load())
}

// periodicEntry is a recurring action. Ticks that arrive while the previous run
// is still executing are skipped, so state is never touched concurrently.
type periodicEntry struct {
	sched   *HostScheduler
	status  atomic.Int32 // api.WorkState: Pending while active, Cancelled after dispose
	running atomic.Bool
	timer   api.Timer
	action  atomic.Pointer[periodicBox]
	state   any
}

func (e *periodicEntry) tick() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	defer e.running.Store(false)

	box := e.action.Load()
	if box == nil {
		return
	}
	e.sched.metrics.Fired(control.KindPeriodic)
	e.state = box.fn(e.state)
}

func (e *periodicEntry) cancel() {
	if !e.status.CompareAndSwap(int32(api.WorkPending), int32(api.WorkCancelled)) {
		return
	}
	e.timer.Stop()
	e.action.Store(nil)
	e.sched.metrics.Cancelled(control.KindPeriodic)
	e.sched.logger.Debug("periodic work cancelled")
}
