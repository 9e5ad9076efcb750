// File: core/observable/sources.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package observable

import (
	"time"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/core/disposable"
	"github.com/HasdrubalTn/reactive/core/scheduler"
)

// Return emits value and completes.
func Return[T any](value T) api.Observable[T] {
	return Create(func(o api.Observer[T]) (api.Disposable, error) {
		o.OnNext(value)
		o.OnCompleted()
		return disposable.Empty(), nil
	})
}

// FromSlice emits the values in order and completes.
func FromSlice[T any](values []T) api.Observable[T] {
	return Create(func(o api.Observer[T]) (api.Disposable, error) {
		for _, v := range values {
			o.OnNext(v)
		}
		o.OnCompleted()
		return disposable.Empty(), nil
	})
}

// Empty completes without emitting.
func Empty[T any]() api.Observable[T] {
	return Create(func(o api.Observer[T]) (api.Disposable, error) {
		o.OnCompleted()
		return disposable.Empty(), nil
	})
}

// Throw fails with err without emitting.
func Throw[T any](err error) api.Observable[T] {
	return Create(func(o api.Observer[T]) (api.Disposable, error) {
		o.OnError(err)
		return disposable.Empty(), nil
	})
}

// Never emits nothing and never terminates.
func Never[T any]() api.Observable[T] {
	return Create(func(api.Observer[T]) (api.Disposable, error) {
		return disposable.Empty(), nil
	})
}

// Timer emits 0 once due has elapsed on sch, then completes. Disposing the
// subscription before the due time cancels the timer.
func Timer(sch api.Scheduler, due time.Duration) api.Observable[int64] {
	return Create(func(o api.Observer[int64]) (api.Disposable, error) {
		if sch == nil {
			return nil, api.InvalidArgument("scheduler")
		}
		return sch.ScheduleAfter(nil, due, func(api.Scheduler, any) api.Disposable {
			o.OnNext(0)
			o.OnCompleted()
			return nil
		})
	})
}

// Interval emits 0, 1, 2, ... every period on sch until disposed.
// A negative period fails the subscription synchronously.
func Interval(sch api.Scheduler, period time.Duration) api.Observable[int64] {
	return Create(func(o api.Observer[int64]) (api.Disposable, error) {
		return scheduler.SchedulePeriodic(sch, int64(0), period, func(n int64) int64 {
			o.OnNext(n)
			return n + 1
		})
	})
}
