// File: core/operator/map.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package operator

import "github.com/HasdrubalTn/reactive/api"

type mapper[T, R any] struct {
	down    api.Observer[R]
	fn      func(T) R
	stopped bool
}

// NewMap forwards fn(value) for every value.
func NewMap[T, R any](down api.Observer[R], fn func(T) R) api.Observer[T] {
	return &mapper[T, R]{down: down, fn: fn}
}

func (m *mapper[T, R]) OnNext(value T) {
	if m.stopped {
		return
	}
	out, err := guard("map", func() R { return m.fn(value) })
	if err != nil {
		m.stopped = true
		m.down.OnError(err)
		return
	}
	m.down.OnNext(out)
}

func (m *mapper[T, R]) OnError(err error) {
	if m.stopped {
		return
	}
	m.stopped = true
	m.down.OnError(err)
}

func (m *mapper[T, R]) OnCompleted() {
	if m.stopped {
		return
	}
	m.stopped = true
	m.down.OnCompleted()
}

// Map projects each value of src through fn.
func Map[T, R any](src api.Observable[T], fn func(T) R) api.Observable[R] {
	if fn == nil {
		return invalid[R]("selector")
	}
	return Lift(src, func(down api.Observer[R]) api.Observer[T] {
		return NewMap(down, fn)
	})
}
