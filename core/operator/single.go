// File: core/operator/single.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package operator

import "github.com/HasdrubalTn/reactive/api"

type singleOrDefault[T any] struct {
	down     api.Observer[T]
	hasValue bool
	value    T
	stopped  bool
}

// NewSingleOrDefault emits the only value of the sequence, or the zero value when
// the sequence is empty, followed by completion. A second value is a protocol
// violation reported through OnError; input after it is ignored.
func NewSingleOrDefault[T any](down api.Observer[T]) api.Observer[T] {
	return &singleOrDefault[T]{down: down}
}

func (s *singleOrDefault[T]) OnNext(value T) {
	if s.stopped {
		return
	}
	if s.hasValue {
		s.stopped = true
		s.down.OnError(api.NewError(api.ErrCodeProtocolViolation, "single or default").
			Wrap(api.ErrMoreThanOneElement))
		return
	}
	s.hasValue = true
	s.value = value
}

func (s *singleOrDefault[T]) OnError(err error) {
	if s.stopped {
		return
	}
	s.stopped = true
	var zero T
	s.value = zero
	s.down.OnError(err)
}

func (s *singleOrDefault[T]) OnCompleted() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.down.OnNext(s.value)
	s.down.OnCompleted()
}

// SingleOrDefault emits the single value of src, or the zero value if src is empty.
func SingleOrDefault[T any](src api.Observable[T]) api.Observable[T] {
	return Lift(src, NewSingleOrDefault[T])
}

// SingleOrDefaultFunc is SingleOrDefault over the values matching pred. The
// filter runs in front of the single-value guard.
func SingleOrDefaultFunc[T any](src api.Observable[T], pred Predicate[T]) api.Observable[T] {
	if pred == nil {
		return invalid[T]("predicate")
	}
	return Lift(src, func(down api.Observer[T]) api.Observer[T] {
		return NewWhere(NewSingleOrDefault(down), pred)
	})
}

// SingleOrDefaultAsync is SingleOrDefaultFunc with an asynchronous predicate.
func SingleOrDefaultAsync[T any](src api.Observable[T], pred AsyncPredicate[T]) api.Observable[T] {
	if pred == nil {
		return invalid[T]("predicate")
	}
	return Lift(src, func(down api.Observer[T]) api.Observer[T] {
		return NewWhereAsync(NewSingleOrDefault(down), pred)
	})
}
