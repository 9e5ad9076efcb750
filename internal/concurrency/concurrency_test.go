// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package concurrency

import (
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/control"
	"github.com/HasdrubalTn/reactive/core/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func startLoop(t *testing.T, opts ...Option) *EventLoop {
	t.Helper()
	el := NewEventLoop(append([]Option{WithLogger(quiet)}, opts...)...)
	go el.Run()
	t.Cleanup(el.Stop)
	return el
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}

func TestLockFreeQueue_FIFO(t *testing.T) {
	q := newLockFreeQueue[int](3)
	assert.Equal(t, 4, q.Cap())
	for i := 0; i < 4; i++ {
		require.True(t, q.Enqueue(i))
	}
	assert.False(t, q.Enqueue(99), "full")
	assert.Equal(t, 4, q.Len())
	for i := 0; i < 4; i++ {
		v, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestLockFreeQueue_MPMC(t *testing.T) {
	const producers, perProducer = 4, 5000
	q := newLockFreeQueue[int](1024)
	var sum, count atomic.Int64

	var prod errgroup.Group
	for p := 0; p < producers; p++ {
		prod.Go(func() error {
			for i := 1; i <= perProducer; i++ {
				for !q.Enqueue(i) {
					runtime.Gosched()
				}
			}
			return nil
		})
	}
	var cons errgroup.Group
	for c := 0; c < 4; c++ {
		cons.Go(func() error {
			for count.Load() < producers*perProducer {
				if v, ok := q.Dequeue(); ok {
					sum.Add(int64(v))
					count.Add(1)
				} else {
					runtime.Gosched()
				}
			}
			return nil
		})
	}
	require.NoError(t, prod.Wait())
	require.NoError(t, cons.Wait())
	assert.Equal(t, int64(producers*perProducer*(perProducer+1)/2), sum.Load())
}

func TestEventLoop_RunsInOrderOnOneGoroutine(t *testing.T) {
	el := startLoop(t, WithBatchSize(3))
	const n = 100
	var (
		mu  sync.Mutex
		got []int
	)
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		require.NoError(t, el.Enqueue(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == n-1 {
				close(done)
			}
		}))
	}
	waitFor(t, done)
	for i := 0; i < n; i++ {
		assert.Equal(t, i, got[i])
	}
}

func TestEventLoop_QueuedBeforeRun(t *testing.T) {
	el := NewEventLoop(WithLogger(quiet))
	done := make(chan struct{})
	require.NoError(t, el.Enqueue(func() { close(done) }))
	assert.Equal(t, 1, el.Pending())
	go el.Run()
	defer el.Stop()
	waitFor(t, done)
}

func TestEventLoop_EnqueueErrors(t *testing.T) {
	el := NewEventLoop(WithQueueCapacity(2), WithLogger(quiet))
	require.NoError(t, el.Enqueue(func() {}))
	require.NoError(t, el.Enqueue(func() {}))
	assert.ErrorIs(t, el.Enqueue(func() {}), ErrQueueFull)
	assert.ErrorIs(t, el.Enqueue(nil), api.ErrInvalidArgument)

	el.Stop()
	el.Stop()
	assert.ErrorIs(t, el.Enqueue(func() {}), api.ErrHostClosed)
	require.NoError(t, el.Shutdown())
}

func TestEventLoop_PanicRecovered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := control.NewMetrics(reg, "test")
	require.NoError(t, err)
	var logs strings.Builder
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	el := NewEventLoop(WithMetrics(m), WithLogger(logger))
	go el.Run()
	done := make(chan struct{})
	require.NoError(t, el.Enqueue(func() { panic("boom") }))
	require.NoError(t, el.Enqueue(func() { close(done) }))
	waitFor(t, done)
	el.Stop()

	expected := `
# HELP test_host_task_panics_total Total callbacks that panicked and were recovered by the host
# TYPE test_host_task_panics_total counter
test_host_task_panics_total 1
# HELP test_host_tasks_total Total callbacks executed by the host
# TYPE test_host_tasks_total counter
test_host_tasks_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_host_task_panics_total", "test_host_tasks_total"))
	assert.Contains(t, logs.String(), "host task panicked")
}

func TestTimer_TicksUntilStopped(t *testing.T) {
	el := startLoop(t)
	var n atomic.Int32
	reached := make(chan struct{})
	tm := el.NewTimer(func() {
		if n.Add(1) == 3 {
			close(reached)
		}
	})
	tm.Start(0) // clamped to the minimum interval
	assert.Equal(t, 1, el.ActiveTimers())
	waitFor(t, reached)
	tm.Stop()
	tm.Stop()
	assert.Equal(t, 0, el.ActiveTimers())
}

func TestTimer_SurvivesFullQueue(t *testing.T) {
	el := NewEventLoop(WithQueueCapacity(2), WithLogger(quiet))
	var n atomic.Int32
	reached := make(chan struct{})
	tm := el.NewTimer(func() {
		if n.Add(1) == 10 {
			close(reached)
		}
	})
	tm.Start(time.Millisecond)
	// The inbox fills up while nothing drains it.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, el.Pending())

	go el.Run()
	defer el.Stop()
	waitFor(t, reached)
	assert.Equal(t, 1, el.ActiveTimers())
	tm.Stop()
	assert.Equal(t, 0, el.ActiveTimers())
}

func TestScheduler_DelayedActionAfterFullQueue(t *testing.T) {
	el := NewEventLoop(WithQueueCapacity(2), WithLogger(quiet))
	s, err := scheduler.New(el)
	require.NoError(t, err)
	require.NoError(t, el.Enqueue(func() {}))
	require.NoError(t, el.Enqueue(func() {}))

	_, err = s.Schedule(nil, func(api.Scheduler, any) api.Disposable { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)

	fired := make(chan struct{})
	_, err = s.ScheduleAfter(nil, time.Millisecond, func(api.Scheduler, any) api.Disposable {
		close(fired)
		return nil
	})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	go el.Run()
	defer el.Stop()
	waitFor(t, fired)
}

func TestTimer_StopAllOnClose(t *testing.T) {
	el := NewEventLoop(WithLogger(quiet))
	go el.Run()
	tm := el.NewTimer(func() {})
	tm.Start(time.Hour)
	assert.Equal(t, 1, el.ActiveTimers())
	el.Stop()
	assert.Equal(t, 0, el.ActiveTimers())

	tm.Start(time.Hour)
	assert.Equal(t, 0, el.ActiveTimers(), "closed host refuses timers")
}

func TestExecutor_RunsAllTasks(t *testing.T) {
	e := NewExecutor(WithWorkers(4), WithLogger(quiet))
	defer e.Close()
	assert.Equal(t, 4, e.NumWorkers())

	const n = 1000
	var wg sync.WaitGroup
	var count atomic.Int32
	wg.Add(n)
	for i := 0; i < n; i++ {
		for {
			err := e.Enqueue(func() {
				count.Add(1)
				wg.Done()
			})
			if err == nil {
				break
			}
			require.ErrorIs(t, err, ErrQueueFull)
			runtime.Gosched()
		}
	}
	wg.Wait()
	assert.Equal(t, int32(n), count.Load())
}

func TestExecutor_CloseIsIdempotent(t *testing.T) {
	e := NewExecutor(WithWorkers(2), WithLogger(quiet))
	e.Close()
	e.Close()
	require.NoError(t, e.Shutdown())
	assert.ErrorIs(t, e.Enqueue(func() {}), api.ErrHostClosed)
}

func TestExecutor_Pinning(t *testing.T) {
	e := NewExecutor(WithWorkers(2), WithPinning(true), WithLogger(quiet))
	defer e.Close()
	done := make(chan struct{})
	require.NoError(t, e.Enqueue(func() { close(done) }))
	waitFor(t, done)
}

func TestScheduler_OverEventLoop(t *testing.T) {
	el := startLoop(t)
	s, err := scheduler.New(el)
	require.NoError(t, err)

	fired := make(chan struct{})
	_, err = scheduler.ScheduleAfter(s, "x", 5*time.Millisecond, func(_ api.Scheduler, v string) api.Disposable {
		assert.Equal(t, "x", v)
		close(fired)
		return nil
	})
	require.NoError(t, err)
	waitFor(t, fired)

	cancelled, err := s.ScheduleAfter(nil, time.Hour, func(api.Scheduler, any) api.Disposable {
		t.Error("cancelled action ran")
		return nil
	})
	require.NoError(t, err)
	cancelled.Dispose()
	assert.Equal(t, 0, el.ActiveTimers())
}

func TestScheduler_PeriodicOverExecutor(t *testing.T) {
	e := NewExecutor(WithWorkers(2), WithLogger(quiet))
	defer e.Close()
	s, err := scheduler.New(e)
	require.NoError(t, err)

	reached := make(chan struct{})
	d, err := scheduler.SchedulePeriodic(s, 0, time.Millisecond, func(n int) int {
		if n == 3 {
			close(reached)
		}
		return n + 1
	})
	require.NoError(t, err)
	waitFor(t, reached)
	d.Dispose()
	assert.Equal(t, 0, e.ActiveTimers())
}
