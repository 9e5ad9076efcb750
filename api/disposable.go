// Package api
// Author: momentics <momentics@gmail.com>
//
// Cancellation handle contract.

package api

// Disposable represents a releasable resource or an in-flight operation.
// Dispose is idempotent and safe to call from any goroutine.
type Disposable interface {
	Dispose()
}

// Cancelable is a Disposable that reports whether it has been released.
type Cancelable interface {
	Disposable
	IsDisposed() bool
}
