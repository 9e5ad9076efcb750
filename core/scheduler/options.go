// File: core/scheduler/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"log/slog"
	"time"

	"github.com/HasdrubalTn/reactive/control"
)

// Option configures a HostScheduler.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	metrics *control.Metrics
	clock   func() time.Time
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records scheduling activity in m.
func WithMetrics(m *control.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithClock overrides the time source returned by Now. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}
