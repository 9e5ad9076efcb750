// File: internal/concurrency/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor dispatches host callbacks across a fixed pool of worker goroutines
// sharing one lock-free inbox.

package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/HasdrubalTn/reactive/api"
)

// Executor is a multi-goroutine api.Host. Callbacks may run in parallel and
// in any order relative to each other.
type Executor struct {
	in      inbox
	timers  *timerSet
	runner  runner
	cfg     config
	closeCh chan struct{} // signals executor shutdown
	closed  atomic.Bool
	wg      sync.WaitGroup
}

var (
	_ api.Host             = (*Executor)(nil)
	_ api.GracefulShutdown = (*Executor)(nil)
)

// NewExecutor starts the worker pool (runtime.NumCPU() workers unless
// WithWorkers says otherwise).
func NewExecutor(opts ...Option) *Executor {
	cfg := newConfig(opts)
	e := &Executor{
		timers:  newTimerSet(),
		runner:  runner{name: "executor", logger: cfg.logger, metrics: cfg.metrics},
		cfg:     cfg,
		closeCh: make(chan struct{}),
	}
	e.in = inbox{
		name:   "executor",
		queue:  newLockFreeQueue[func()](cfg.queueCapacity),
		wake:   make(chan struct{}, cfg.workers),
		closed: e.closed.Load,
	}
	e.wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go e.work(i)
	}
	return e
}

// Enqueue queues fn for any worker.
func (e *Executor) Enqueue(fn func()) error {
	return e.in.enqueue(fn)
}

// NewTimer returns a timer whose ticks run on the pool.
func (e *Executor) NewTimer(tick func()) api.Timer {
	return newTicker(e.Enqueue, tick, e.timers, e.cfg.metrics)
}

// NumWorkers returns the pool size.
func (e *Executor) NumWorkers() int {
	return e.cfg.workers
}

// Pending returns approximate count of callbacks not yet picked up.
func (e *Executor) Pending() int {
	return e.in.queue.Len()
}

// ActiveTimers returns the number of started timers.
func (e *Executor) ActiveTimers() int {
	return e.timers.len()
}

// Close stops timers and workers and waits for running callbacks to return.
// Close must not be called from a pool callback.
func (e *Executor) Close() {
	if e.closed.CompareAndSwap(false, true) {
		e.timers.close()
		close(e.closeCh)
	}
	e.wg.Wait()
}

// Shutdown implements api.GracefulShutdown.
func (e *Executor) Shutdown() error {
	e.Close()
	return nil
}

func (e *Executor) work(id int) {
	defer e.wg.Done()
	if e.cfg.pin {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		cpuID := id % runtime.NumCPU()
		if err := pinCurrentThread(cpuID); err != nil {
			e.cfg.logger.Warn("worker pinning failed", "worker", id, "cpu", cpuID, "error", err)
		}
	}
	for {
		select {
		case <-e.closeCh:
			return
		default:
		}
		if fn, ok := e.in.queue.Dequeue(); ok {
			e.runner.run(fn)
			continue
		}
		select {
		case <-e.closeCh:
			return
		case <-e.in.wake:
		}
	}
}
