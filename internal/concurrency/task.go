// File: internal/concurrency/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"fmt"
	"log/slog"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/control"
)

// runner executes host callbacks, keeping the host goroutine alive when one panics.
type runner struct {
	name    string
	logger  *slog.Logger
	metrics *control.Metrics
}

func (r runner) run(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			r.metrics.TaskPanicked()
			r.logger.Error("host task panicked", "host", r.name, "panic", p)
		}
		r.metrics.TaskDone()
	}()
	fn()
}

// inbox is the queue-plus-wakeup pair shared by both hosts.
type inbox struct {
	name   string
	queue  *lockFreeQueue[func()]
	wake   chan struct{}
	closed func() bool
}

func (in *inbox) enqueue(fn func()) error {
	if fn == nil {
		return api.InvalidArgument("task")
	}
	if in.closed() {
		return fmt.Errorf("%s: %w", in.name, api.ErrHostClosed)
	}
	if !in.queue.Enqueue(fn) {
		return fmt.Errorf("%s: %w", in.name, ErrQueueFull)
	}
	select {
	case in.wake <- struct{}{}:
	default:
	}
	return nil
}
