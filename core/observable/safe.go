// File: core/observable/safe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package observable

import (
	"sync/atomic"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/core/disposable"
)

// safeObserver enforces the notification discipline for one subscription.
type safeObserver[T any] struct {
	down     api.Observer[T]
	stopped  atomic.Bool
	resource disposable.SingleAssignment
}

var (
	_ api.Observer[int] = (*safeObserver[int])(nil)
	_ api.Cancelable    = (*safeObserver[int])(nil)
)

func newSafeObserver[T any](down api.Observer[T]) *safeObserver[T] {
	return &safeObserver[T]{down: down}
}

// setResource attaches the subscription handle. When the terminal notification
// already went through, the handle is released right away.
func (s *safeObserver[T]) setResource(d api.Disposable) {
	_ = s.resource.Set(d)
}

func (s *safeObserver[T]) OnNext(value T) {
	if s.stopped.Load() {
		return
	}
	s.down.OnNext(value)
}

func (s *safeObserver[T]) OnError(err error) {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	defer s.resource.Dispose()
	s.down.OnError(err)
}

func (s *safeObserver[T]) OnCompleted() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	defer s.resource.Dispose()
	s.down.OnCompleted()
}

// Dispose stops delivery and releases the subscription handle.
func (s *safeObserver[T]) Dispose() {
	s.stopped.Store(true)
	s.resource.Dispose()
}

func (s *safeObserver[T]) IsDisposed() bool {
	return s.resource.IsDisposed()
}
