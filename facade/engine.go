// File: facade/engine.go
// Unified facade for the reactive runtime.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Engine wires an execution host, a scheduler over it, Prometheus metrics and
// debug probes from one immutable Config, and owns their lifecycle.

package facade

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/control"
	"github.com/HasdrubalTn/reactive/core/scheduler"
	"github.com/HasdrubalTn/reactive/internal/concurrency"
)

// HostKind selects the execution host.
type HostKind string

const (
	// HostLoop runs every callback on a single event-loop goroutine.
	HostLoop HostKind = "loop"
	// HostPool runs callbacks on a worker pool.
	HostPool HostKind = "pool"
)

// Config holds parameters immutable per run.
type Config struct {
	Host             HostKind              // Execution host kind
	NumWorkers       int                   // Worker goroutines for HostPool; 0 means runtime.NumCPU()
	BatchSize        int                   // Callbacks per event-loop batch
	QueueCapacity    int                   // Host inbox capacity
	CPUAffinity      bool                  // Pin pool workers to CPUs
	EnableMetrics    bool                  // Register Prometheus collectors
	MetricsNamespace string                // Metric name prefix
	Registerer       prometheus.Registerer // Metrics registry; nil means prometheus.DefaultRegisterer
	Logger           *slog.Logger          // nil means slog.Default()
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Host:             HostLoop,
		NumWorkers:       0,
		BatchSize:        64,
		QueueCapacity:    4096,
		CPUAffinity:      false,
		EnableMetrics:    true,
		MetricsNamespace: control.DefaultNamespace,
	}
}

func (c *Config) validate() error {
	switch {
	case c.Host != HostLoop && c.Host != HostPool:
		return api.InvalidArgument("host").WithContext("host", string(c.Host))
	case c.NumWorkers < 0:
		return api.InvalidArgument("workers").WithContext("workers", c.NumWorkers)
	case c.BatchSize < 0:
		return api.InvalidArgument("batch size").WithContext("batch_size", c.BatchSize)
	case c.QueueCapacity < 0:
		return api.InvalidArgument("queue capacity").WithContext("queue_capacity", c.QueueCapacity)
	}
	return nil
}

// host is what the engine needs from either concurrency host.
type host interface {
	api.Host
	api.GracefulShutdown
	Pending() int
	ActiveTimers() int
}

// Engine is the main facade type.
type Engine struct {
	config    Config
	logger    *slog.Logger
	metrics   *control.Metrics
	probes    *control.Probes
	host      host
	run       func() // event-loop body, nil for the pool
	scheduler *scheduler.HostScheduler

	mu      sync.RWMutex // Protects started and stopped
	started bool
	stopped bool
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Engine)(nil)

// New validates cfg and builds the engine. A nil cfg means DefaultConfig().
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{config: *cfg, logger: cfg.Logger, probes: control.NewProbes()}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	if cfg.EnableMetrics {
		reg := cfg.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		m, err := control.NewMetrics(reg, cfg.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("facade: metrics init failure: %w", err)
		}
		e.metrics = m
	}

	opts := []concurrency.Option{
		concurrency.WithLogger(e.logger),
		concurrency.WithMetrics(e.metrics),
		concurrency.WithBatchSize(cfg.BatchSize),
		concurrency.WithQueueCapacity(cfg.QueueCapacity),
		concurrency.WithWorkers(cfg.NumWorkers),
		concurrency.WithPinning(cfg.CPUAffinity),
	}
	switch cfg.Host {
	case HostLoop:
		loop := concurrency.NewEventLoop(opts...)
		e.host, e.run = loop, loop.Run
	case HostPool:
		e.host = concurrency.NewExecutor(opts...)
	}

	s, err := scheduler.New(e.host, scheduler.WithLogger(e.logger), scheduler.WithMetrics(e.metrics))
	if err != nil {
		_ = e.host.Shutdown()
		return nil, err
	}
	e.scheduler = s

	if err := e.metrics.RegisterPending(string(cfg.Host), func() float64 {
		return float64(e.host.Pending())
	}); err != nil {
		e.logger.Warn("pending gauge not registered", "host", cfg.Host, "error", err)
	}

	control.RegisterRuntimeProbes(e.probes)
	e.probes.Register("host.kind", func() any { return string(cfg.Host) })
	e.probes.Register("host.pending", func() any { return e.host.Pending() })
	e.probes.Register("host.timers", func() any { return e.host.ActiveTimers() })
	e.probes.Register("engine.started", func() any { return e.Started() })
	return e, nil
}

// Start launches the host goroutines. Subsequent calls have no effect.
// A stopped engine cannot be restarted.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return fmt.Errorf("facade: start: %w", api.ErrHostClosed)
	}
	if e.started {
		return nil
	}
	if e.run != nil {
		go e.run()
	}
	e.started = true
	e.logger.Info("engine started", "host", e.config.Host, "metrics", e.metrics != nil)
	return nil
}

// Stop shuts the host down: timers stop, queued callbacks are dropped and
// further scheduling fails with api.ErrHostClosed. Stop is idempotent and
// must not be called from a scheduled action.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return nil
	}
	e.stopped = true
	e.started = false
	if err := e.host.Shutdown(); err != nil {
		return fmt.Errorf("facade: host shutdown: %w", err)
	}
	e.logger.Info("engine stopped", "host", e.config.Host)
	return nil
}

// Shutdown implements api.GracefulShutdown by delegating to Stop().
func (e *Engine) Shutdown() error {
	return e.Stop()
}

// Started reports whether Start ran and Stop did not.
func (e *Engine) Started() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.started
}

// Scheduler returns the scheduler bound to the engine host.
func (e *Engine) Scheduler() api.PeriodicScheduler {
	return e.scheduler
}

// Host returns the execution host.
func (e *Engine) Host() api.Host {
	return e.host
}

// Metrics returns the engine collectors, nil when metrics are disabled.
func (e *Engine) Metrics() *control.Metrics {
	return e.metrics
}

// Probes returns the debug probe registry.
func (e *Engine) Probes() *control.Probes {
	return e.probes
}

// Config returns a copy of the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.config
}
