// File: core/observable/observable.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package observable

import (
	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/core/disposable"
)

// SubscribeFunc starts delivering notifications to observer and returns the
// handle that cancels the delivery.
type SubscribeFunc[T any] func(observer api.Observer[T]) (api.Disposable, error)

type anonymous[T any] struct {
	subscribe SubscribeFunc[T]
}

// Create builds an Observable from a subscribe function.
func Create[T any](subscribe SubscribeFunc[T]) api.Observable[T] {
	return &anonymous[T]{subscribe: subscribe}
}

// Subscribe validates the observer, wraps it in the safety wrapper and invokes
// the subscribe function. The returned handle is the wrapper itself.
func (a *anonymous[T]) Subscribe(observer api.Observer[T]) (api.Disposable, error) {
	if observer == nil {
		return nil, api.InvalidArgument("observer")
	}
	if a.subscribe == nil {
		return nil, api.InvalidArgument("subscribe")
	}

	safe := newSafeObserver(observer)
	d, err := a.subscribe(safe)
	if err != nil {
		safe.Dispose()
		disposable.Dispose(d)
		return nil, err
	}
	safe.setResource(d)
	return safe, nil
}

// SubscribeFuncs subscribes with optional callbacks; nil callbacks ignore their
// notification.
func SubscribeFuncs[T any](src api.Observable[T], next func(T), onError func(error), completed func()) (api.Disposable, error) {
	if src == nil {
		return nil, api.InvalidArgument("source")
	}
	return src.Subscribe(Funcs[T]{Next: next, Error: onError, Completed: completed})
}
