// File: core/observable/observer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package observable

import "github.com/HasdrubalTn/reactive/api"

// Funcs adapts optional callbacks to api.Observer. A nil field ignores its
// notification, so a nil Error silently drops errors.
type Funcs[T any] struct {
	Next      func(T)
	Error     func(error)
	Completed func()
}

var _ api.Observer[int] = Funcs[int]{}

func (f Funcs[T]) OnNext(value T) {
	if f.Next != nil {
		f.Next(value)
	}
}

func (f Funcs[T]) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

func (f Funcs[T]) OnCompleted() {
	if f.Completed != nil {
		f.Completed()
	}
}
