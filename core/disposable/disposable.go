// File: core/disposable/disposable.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import (
	"sync/atomic"

	"github.com/HasdrubalTn/reactive/api"
)

type empty struct{}

func (empty) Dispose() {}

// Empty returns a Disposable that does nothing.
func Empty() api.Disposable {
	return empty{}
}

// Action runs a release function at most once.
type Action struct {
	disposed atomic.Bool
	fn       func()
}

var _ api.Cancelable = (*Action)(nil)

// Create returns a Disposable that invokes fn on the first Dispose call.
func Create(fn func()) *Action {
	return &Action{fn: fn}
}

// Dispose runs the release function if it has not run yet.
func (a *Action) Dispose() {
	if !a.disposed.CompareAndSwap(false, true) {
		return
	}
	fn := a.fn
	a.fn = nil
	if fn != nil {
		fn()
	}
}

// IsDisposed reports whether Dispose has been called.
func (a *Action) IsDisposed() bool {
	return a.disposed.Load()
}

// Boolean is a Disposable that only records disposal.
type Boolean struct {
	disposed atomic.Bool
}

var _ api.Cancelable = (*Boolean)(nil)

// Dispose marks b as disposed.
func (b *Boolean) Dispose() {
	b.disposed.Store(true)
}

// IsDisposed reports whether Dispose has been called.
func (b *Boolean) IsDisposed() bool {
	return b.disposed.Load()
}

// Dispose releases d when it is non-nil.
func Dispose(d api.Disposable) {
	if d != nil {
		d.Dispose()
	}
}

// holder boxes a resource so it can live behind an atomic.Pointer.
type holder struct {
	d api.Disposable
}

func (h *holder) release() {
	if h != nil && h.d != nil {
		h.d.Dispose()
	}
}

// disposedHolder marks a holder slot as disposed.
var disposedHolder = &holder{}
