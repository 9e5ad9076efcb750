// Package api
// Author: momentics@gmail.com
//
// Generic result and error propagation.

package api

// Result wraps any payload or error.
// Asynchronous predicates deliver their verdict as a Result[bool].
type Result[T any] struct {
	Value T
	Err   error
}

// Ok builds a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail builds a failed Result.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}
