// File: internal/concurrency/eventloop.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// EventLoop executes host callbacks on a single goroutine in enqueue order,
// draining its inbox in batches and parking on a wakeup channel when idle.

package concurrency

import (
	"sync"
	"sync/atomic"

	"github.com/HasdrubalTn/reactive/api"
)

// EventLoop is a single-goroutine api.Host. Timer ticks are delivered on the
// loop goroutine too, so every callback observes the others in order.
type EventLoop struct {
	in        inbox
	batchSize int
	timers    *timerSet
	runner    runner
	cfg       config

	quitCh   chan struct{} // closed on Stop()
	doneCh   chan struct{} // closed after Run() exits
	running  atomic.Bool
	closed   atomic.Bool
	stopOnce sync.Once
}

var (
	_ api.Host             = (*EventLoop)(nil)
	_ api.GracefulShutdown = (*EventLoop)(nil)
)

// NewEventLoop creates a stopped loop; call Run (usually in its own goroutine).
func NewEventLoop(opts ...Option) *EventLoop {
	cfg := newConfig(opts)
	el := &EventLoop{
		batchSize: cfg.batchSize,
		timers:    newTimerSet(),
		runner:    runner{name: "event loop", logger: cfg.logger, metrics: cfg.metrics},
		cfg:       cfg,
		quitCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	el.in = inbox{
		name:   "event loop",
		queue:  newLockFreeQueue[func()](cfg.queueCapacity),
		wake:   make(chan struct{}, 1),
		closed: el.closed.Load,
	}
	return el
}

// Enqueue queues fn for the loop goroutine. Callbacks queued before Run starts
// are kept.
func (el *EventLoop) Enqueue(fn func()) error {
	return el.in.enqueue(fn)
}

// NewTimer returns a timer whose ticks run on the loop goroutine.
func (el *EventLoop) NewTimer(tick func()) api.Timer {
	return newTicker(el.Enqueue, tick, el.timers, el.cfg.metrics)
}

// Pending returns approximate count of callbacks waiting in the inbox.
func (el *EventLoop) Pending() int {
	return el.in.queue.Len()
}

// ActiveTimers returns the number of started timers.
func (el *EventLoop) ActiveTimers() int {
	return el.timers.len()
}

// Run processes callbacks until Stop is called.
func (el *EventLoop) Run() {
	if !el.running.CompareAndSwap(false, true) {
		return // Already running
	}
	defer close(el.doneCh)

	for {
		select {
		case <-el.quitCh:
			return
		default:
		}
		if el.drain() == el.batchSize {
			continue
		}
		select {
		case <-el.quitCh:
			return
		case <-el.in.wake:
		}
	}
}

func (el *EventLoop) drain() int {
	n := 0
	for ; n < el.batchSize; n++ {
		fn, ok := el.in.queue.Dequeue()
		if !ok {
			break
		}
		el.runner.run(fn)
	}
	return n
}

// Stop signals the Run loop to exit and waits for completion. Queued callbacks
// that did not run are dropped. Stop must not be called from a loop callback.
func (el *EventLoop) Stop() {
	el.stopOnce.Do(func() {
		el.closed.Store(true)
		el.timers.close()
		close(el.quitCh)
	})
	if el.running.Load() {
		<-el.doneCh
	}
}

// Shutdown implements api.GracefulShutdown.
func (el *EventLoop) Shutdown() error {
	el.Stop()
	return nil
}
