// File: core/enumerator/enumerator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package enumerator

import (
	"iter"
	"sync"

	"github.com/eapache/queue"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/core/disposable"
)

// Enumerator is a forward-only cursor over an observable.
// Advance and Current must be called from one goroutine at a time.
type Enumerator[T any] struct {
	mu       sync.Mutex
	ready    *sync.Cond
	items    *queue.Queue
	err      error
	done     bool
	disposed bool

	current      T
	subscription disposable.SingleAssignment
}

var _ api.Disposable = (*Enumerator[int])(nil)

// New subscribes to src and returns the cursor. Subscribe errors are returned
// as is.
func New[T any](src api.Observable[T]) (*Enumerator[T], error) {
	if src == nil {
		return nil, api.InvalidArgument("source")
	}
	e := &Enumerator[T]{items: queue.New()}
	e.ready = sync.NewCond(&e.mu)

	d, err := src.Subscribe(sink[T]{e})
	if err != nil {
		return nil, err
	}
	_ = e.subscription.Set(d)
	return e, nil
}

// Advance blocks until the next value, the end of the sequence, or disposal.
// It returns true when Current holds a new value, false once the sequence
// completed, the stored error once the sequence failed, and api.ErrDisposed after
// Dispose. Calls after termination return the same outcome without blocking.
func (e *Enumerator[T]) Advance() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for !e.disposed && e.items.Length() == 0 && e.err == nil && !e.done {
		e.ready.Wait()
	}
	switch {
	case e.disposed:
		return false, api.ErrDisposed
	case e.items.Length() > 0:
		// A nil interface value comes back as the zero T.
		e.current, _ = e.items.Remove().(T)
		return true, nil
	case e.err != nil:
		return false, e.err
	default:
		return false, nil
	}
}

// Current returns the value produced by the last successful Advance.
func (e *Enumerator[T]) Current() T {
	return e.current
}

// Reset is not supported; the cursor is forward-only.
func (e *Enumerator[T]) Reset() error {
	return api.NewError(api.ErrCodeNotSupported, "enumerator reset").Wrap(api.ErrNotSupported)
}

// Dispose cancels the subscription and wakes a blocked Advance.
func (e *Enumerator[T]) Dispose() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.disposed = true
	e.items = queue.New()
	e.ready.Broadcast()
	e.mu.Unlock()

	e.subscription.Dispose()
}

// Values returns a range-over-func iterator. The enumerator is disposed when the
// loop ends, including on early break. A failed sequence yields its error once
// as the last pair.
func (e *Enumerator[T]) Values() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer e.Dispose()
		for {
			ok, err := e.Advance()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(e.Current(), nil) {
				return
			}
		}
	}
}

// ToSlice blocks until src terminates and returns everything it emitted. On
// error the values received before the error are returned alongside it.
func ToSlice[T any](src api.Observable[T]) ([]T, error) {
	e, err := New(src)
	if err != nil {
		return nil, err
	}
	defer e.Dispose()

	var out []T
	for {
		ok, err := e.Advance()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, e.Current())
	}
}

// sink receives the notifications of the subscription. It is kept apart from
// Enumerator so the observer methods are not part of the cursor API.
type sink[T any] struct {
	e *Enumerator[T]
}

func (s sink[T]) OnNext(value T) {
	e := s.e
	e.mu.Lock()
	if !e.disposed {
		e.items.Add(value)
		e.ready.Signal()
	}
	e.mu.Unlock()
}

func (s sink[T]) OnError(err error) {
	e := s.e
	e.mu.Lock()
	if e.err == nil && !e.done {
		e.err = err
	}
	e.ready.Broadcast()
	e.mu.Unlock()
	e.subscription.Dispose()
}

func (s sink[T]) OnCompleted() {
	e := s.e
	e.mu.Lock()
	if e.err == nil {
		e.done = true
	}
	e.ready.Broadcast()
	e.mu.Unlock()
	e.subscription.Dispose()
}
