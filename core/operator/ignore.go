// File: core/operator/ignore.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package operator

import "github.com/HasdrubalTn/reactive/api"

func rejectAll[T any](T) bool { return false }

// NewIgnoreElements forwards only the terminal notification.
func NewIgnoreElements[T any](down api.Observer[T]) api.Observer[T] {
	return NewWhere(down, rejectAll[T])
}

// IgnoreElements drops every value of src and keeps its termination.
func IgnoreElements[T any](src api.Observable[T]) api.Observable[T] {
	return Lift(src, NewIgnoreElements[T])
}
