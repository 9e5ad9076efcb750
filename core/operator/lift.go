// File: core/operator/lift.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package operator

import (
	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/core/disposable"
	"github.com/HasdrubalTn/reactive/core/observable"
)

// Operator maps a downstream observer to the upstream observer feeding it.
type Operator[T, R any] func(down api.Observer[R]) api.Observer[T]

// Lift applies op to every subscription of src.
func Lift[T, R any](src api.Observable[T], op Operator[T, R]) api.Observable[R] {
	if src == nil {
		return invalid[R]("source")
	}
	if op == nil {
		return invalid[R]("operator")
	}
	return observable.Create(func(down api.Observer[R]) (api.Disposable, error) {
		up := op(down)
		d, err := src.Subscribe(up)
		if err != nil {
			return nil, err
		}
		// Operators holding goroutines release them with the subscription.
		if owned, ok := up.(api.Disposable); ok {
			return disposable.NewComposite(d, owned), nil
		}
		return d, nil
	})
}

// invalid is an observable whose every Subscribe fails with a construction error.
func invalid[T any](name string) api.Observable[T] {
	err := api.InvalidArgument(name)
	return observable.Create(func(api.Observer[T]) (api.Disposable, error) {
		return nil, err
	})
}

// guard runs fn and converts a panic into an operator fault.
func guard[R any](operator string, fn func() R) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = api.OperatorFault(operator, r)
		}
	}()
	return fn(), nil
}
