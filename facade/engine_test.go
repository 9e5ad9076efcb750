// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package facade_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/core/enumerator"
	"github.com/HasdrubalTn/reactive/core/observable"
	"github.com/HasdrubalTn/reactive/core/operator"
	"github.com/HasdrubalTn/reactive/facade"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(kind facade.HostKind) (*facade.Config, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	cfg := facade.DefaultConfig()
	cfg.Host = kind
	cfg.NumWorkers = 2
	cfg.Registerer = reg
	cfg.MetricsNamespace = "test"
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg, reg
}

func TestEngine_Lifecycle(t *testing.T) {
	for _, kind := range []facade.HostKind{facade.HostLoop, facade.HostPool} {
		t.Run(string(kind), func(t *testing.T) {
			cfg, reg := testConfig(kind)
			e, err := facade.New(cfg)
			require.NoError(t, err)
			require.NoError(t, e.Start())
			require.NoError(t, e.Start())
			assert.True(t, e.Started())

			got, err := enumerator.ToSlice(operator.Map(
				observable.Timer(e.Scheduler(), 5*time.Millisecond),
				func(n int64) string { return "tick" },
			))
			require.NoError(t, err)
			assert.Equal(t, []string{"tick"}, got)

			n, err := testutil.GatherAndCount(reg, "test_scheduler_scheduled_total")
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			snap := e.Probes().Snapshot()
			assert.Equal(t, string(kind), snap["host.kind"])
			assert.Equal(t, true, snap["engine.started"])
			assert.Contains(t, snap, "host.pending")
			assert.Contains(t, snap, "runtime.cpus")

			require.NoError(t, e.Stop())
			require.NoError(t, e.Shutdown())
			assert.False(t, e.Started())
			assert.ErrorIs(t, e.Start(), api.ErrHostClosed)

			_, err = e.Scheduler().Schedule(nil, func(api.Scheduler, any) api.Disposable { return nil })
			assert.ErrorIs(t, err, api.ErrHostClosed)
		})
	}
}

func TestEngine_IntervalFilterBridge(t *testing.T) {
	cfg, _ := testConfig(facade.HostLoop)
	e, err := facade.New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Start())
	defer e.Stop()

	evens := operator.Filter(observable.Interval(e.Scheduler(), time.Millisecond), func(n int64) bool {
		return n%2 == 0
	})
	it, err := enumerator.New(evens)
	require.NoError(t, err)

	var got []int64
	for v, err := range it.Values() {
		require.NoError(t, err)
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int64{0, 2, 4}, got)
}

func TestEngine_InvalidConfig(t *testing.T) {
	cases := map[string]func(c *facade.Config){
		"host":     func(c *facade.Config) { c.Host = "threads" },
		"workers":  func(c *facade.Config) { c.NumWorkers = -1 },
		"batch":    func(c *facade.Config) { c.BatchSize = -1 },
		"capacity": func(c *facade.Config) { c.QueueCapacity = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, _ := testConfig(facade.HostLoop)
			mutate(cfg)
			e, err := facade.New(cfg)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, api.ErrInvalidArgument)
		})
	}
}

func TestEngine_MetricsDisabled(t *testing.T) {
	cfg, reg := testConfig(facade.HostPool)
	cfg.EnableMetrics = false
	e, err := facade.New(cfg)
	require.NoError(t, err)
	defer e.Stop()
	assert.Nil(t, e.Metrics())

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, mfs)
	assert.Equal(t, facade.HostPool, e.Config().Host)
}

func TestEngine_StopBeforeStart(t *testing.T) {
	cfg, _ := testConfig(facade.HostLoop)
	e, err := facade.New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Stop())
	assert.NotNil(t, e.Host())
}
