// File: core/disposable/single.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import (
	"fmt"
	"sync/atomic"

	"github.com/HasdrubalTn/reactive/api"
)

// SingleAssignment holds at most one resource, assignable exactly once.
//
// The slot moves nil -> assigned -> disposed, or nil -> disposed, through atomic
// exchanges only. A resource that loses the race for the slot is never live: it is
// released before Set returns.
type SingleAssignment struct {
	cur atomic.Pointer[holder]
}

var _ api.Cancelable = (*SingleAssignment)(nil)

// NewSingleAssignment returns an empty holder.
func NewSingleAssignment() *SingleAssignment {
	return &SingleAssignment{}
}

// Set assigns d. If the holder is already disposed, d is released immediately and
// Set returns nil. If a resource was already assigned, d is released and
// api.ErrAlreadyAssigned is returned.
func (s *SingleAssignment) Set(d api.Disposable) error {
	h := &holder{d: d}
	for {
		// The slot never returns to nil, so a non-nil cur decides the outcome.
		cur := s.cur.Load()
		if cur == nil {
			if s.cur.CompareAndSwap(nil, h) {
				return nil
			}
			continue
		}
		h.release()
		if cur == disposedHolder {
			return nil
		}
		return fmt.Errorf("single assignment: %w", api.ErrAlreadyAssigned)
	}
}

// Get returns the assigned resource, or nil when empty or disposed.
func (s *SingleAssignment) Get() api.Disposable {
	h := s.cur.Load()
	if h == nil || h == disposedHolder {
		return nil
	}
	return h.d
}

// Dispose releases the assigned resource, if any, and marks the holder disposed.
func (s *SingleAssignment) Dispose() {
	if old := s.cur.Swap(disposedHolder); old != disposedHolder {
		old.release()
	}
}

// IsDisposed reports whether Dispose has been called.
func (s *SingleAssignment) IsDisposed() bool {
	return s.cur.Load() == disposedHolder
}
