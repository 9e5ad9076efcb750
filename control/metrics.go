// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for scheduled work and host task execution.

package control

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Work kinds used as the "kind" label.
const (
	KindImmediate = "immediate"
	KindDelayed   = "delayed"
	KindPeriodic  = "periodic"
)

// DefaultNamespace prefixes every metric name when none is given.
const DefaultNamespace = "reactive"

// Metrics holds the collectors shared by schedulers and hosts.
type Metrics struct {
	reg       prometheus.Registerer
	namespace string

	scheduled *prometheus.CounterVec
	fired     *prometheus.CounterVec
	cancelled *prometheus.CounterVec
	tasks     prometheus.Counter
	panics    prometheus.Counter
	timers    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered under the same name are reused.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		return nil, fmt.Errorf("control: nil registerer")
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{reg: reg, namespace: namespace}

	var err error
	if m.scheduled, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scheduler",
		Name:      "scheduled_total",
		Help:      "Total units of work handed to a scheduler",
	}); err != nil {
		return nil, err
	}
	if m.fired, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scheduler",
		Name:      "fired_total",
		Help:      "Total scheduled actions that started executing",
	}); err != nil {
		return nil, err
	}
	if m.cancelled, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scheduler",
		Name:      "cancelled_total",
		Help:      "Total scheduled actions cancelled before they started",
	}); err != nil {
		return nil, err
	}
	if m.tasks, err = registerCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "host",
		Name:      "tasks_total",
		Help:      "Total callbacks executed by the host",
	}); err != nil {
		return nil, err
	}
	if m.panics, err = registerCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "host",
		Name:      "task_panics_total",
		Help:      "Total callbacks that panicked and were recovered by the host",
	}); err != nil {
		return nil, err
	}
	if m.timers, err = registerGauge(reg, prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "host",
		Name:      "timers_active",
		Help:      "Number of started host timers",
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// Scheduled counts a unit of work handed to a scheduler.
func (m *Metrics) Scheduled(kind string) {
	if m == nil {
		return
	}
	m.scheduled.WithLabelValues(kind).Inc()
}

// Fired counts a scheduled action that started executing.
func (m *Metrics) Fired(kind string) {
	if m == nil {
		return
	}
	m.fired.WithLabelValues(kind).Inc()
}

// Cancelled counts a scheduled action cancelled before it started.
func (m *Metrics) Cancelled(kind string) {
	if m == nil {
		return
	}
	m.cancelled.WithLabelValues(kind).Inc()
}

// TaskDone counts an executed host callback.
func (m *Metrics) TaskDone() {
	if m == nil {
		return
	}
	m.tasks.Inc()
}

// TaskPanicked counts a recovered host callback panic.
func (m *Metrics) TaskPanicked() {
	if m == nil {
		return
	}
	m.panics.Inc()
}

// TimerStarted increments the active timer gauge.
func (m *Metrics) TimerStarted() {
	if m == nil {
		return
	}
	m.timers.Inc()
}

// TimerStopped decrements the active timer gauge.
func (m *Metrics) TimerStopped() {
	if m == nil {
		return
	}
	m.timers.Dec()
}

// RegisterPending exposes a host queue depth as a gauge sampled at scrape time.
func (m *Metrics) RegisterPending(host string, fn func() float64) error {
	if m == nil {
		return nil
	}
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "host",
		Name:        "pending_tasks",
		Help:        "Callbacks queued on the host and not yet executed",
		ConstLabels: prometheus.Labels{"host": host},
	}, fn)
	if err := m.reg.Register(g); err != nil {
		return fmt.Errorf("control: register pending gauge: %w", err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, opts prometheus.CounterOpts) (*prometheus.CounterVec, error) {
	c := prometheus.NewCounterVec(opts, []string{"kind"})
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("control: register %s: %w", opts.Name, err)
	}
	return c, nil
}

func registerCounter(reg prometheus.Registerer, opts prometheus.CounterOpts) (prometheus.Counter, error) {
	c := prometheus.NewCounter(opts)
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("control: register %s: %w", opts.Name, err)
	}
	return c, nil
}

func registerGauge(reg prometheus.Registerer, opts prometheus.GaugeOpts) (prometheus.Gauge, error) {
	g := prometheus.NewGauge(opts)
	if err := reg.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("control: register %s: %w", opts.Name, err)
	}
	return g, nil
}
