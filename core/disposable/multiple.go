// File: core/disposable/multiple.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import (
	"sync/atomic"

	"github.com/HasdrubalTn/reactive/api"
)

// MultipleAssignment holds a replaceable resource. Assigning releases the
// previous resource; after Dispose every assignment is released immediately.
type MultipleAssignment struct {
	cur atomic.Pointer[holder]
}

var _ api.Cancelable = (*MultipleAssignment)(nil)

// NewMultipleAssignment returns an empty holder.
func NewMultipleAssignment() *MultipleAssignment {
	return &MultipleAssignment{}
}

// Set replaces the current resource with d and releases the previous one.
func (m *MultipleAssignment) Set(d api.Disposable) {
	h := &holder{d: d}
	for {
		cur := m.cur.Load()
		if cur == disposedHolder {
			h.release()
			return
		}
		if m.cur.CompareAndSwap(cur, h) {
			cur.release()
			return
		}
	}
}

// Get returns the current resource, or nil when empty or disposed.
func (m *MultipleAssignment) Get() api.Disposable {
	h := m.cur.Load()
	if h == nil || h == disposedHolder {
		return nil
	}
	return h.d
}

// Dispose releases the current resource and marks the holder disposed.
func (m *MultipleAssignment) Dispose() {
	if old := m.cur.Swap(disposedHolder); old != disposedHolder {
		old.release()
	}
}

// IsDisposed reports whether Dispose has been called.
func (m *MultipleAssignment) IsDisposed() bool {
	return m.cur.Load() == disposedHolder
}
