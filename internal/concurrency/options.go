// File: internal/concurrency/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"log/slog"
	"runtime"

	"github.com/HasdrubalTn/reactive/control"
)

const (
	defaultBatchSize     = 64
	defaultQueueCapacity = 4096
)

type config struct {
	logger        *slog.Logger
	metrics       *control.Metrics
	batchSize     int
	queueCapacity int
	workers       int
	pin           bool
}

func newConfig(opts []Option) config {
	cfg := config{
		logger:        slog.Default(),
		batchSize:     defaultBatchSize,
		queueCapacity: defaultQueueCapacity,
		workers:       runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a host.
type Option func(*config)

// WithLogger sets the logger used for recovered task panics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables task and timer metrics.
func WithMetrics(m *control.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithBatchSize bounds how many callbacks the event loop runs between checks
// for Stop.
func WithBatchSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithQueueCapacity sets the inbox capacity, rounded up to a power of two.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.queueCapacity = n
		}
	}
}

// WithWorkers sets the Executor pool size. Ignored by EventLoop.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithPinning locks each Executor worker to an OS thread bound to one CPU.
func WithPinning(on bool) Option {
	return func(c *config) { c.pin = on }
}
