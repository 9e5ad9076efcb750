// File: core/disposable/composite.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disposable

import (
	"sync"

	"github.com/HasdrubalTn/reactive/api"
)

// Composite is an unordered group of resources released together.
// Members are compared with ==, so they must be of comparable dynamic type.
type Composite struct {
	mu       sync.Mutex
	members  []api.Disposable
	disposed bool
}

var _ api.Cancelable = (*Composite)(nil)

// NewComposite returns a group holding the given resources.
func NewComposite(ds ...api.Disposable) *Composite {
	c := &Composite{members: make([]api.Disposable, 0, len(ds))}
	for _, d := range ds {
		if d != nil {
			c.members = append(c.members, d)
		}
	}
	return c
}

// Add stores d, or releases it immediately if the group is already disposed.
func (c *Composite) Add(d api.Disposable) {
	if d == nil {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return
	}
	c.members = append(c.members, d)
	c.mu.Unlock()
}

// Remove takes d out of the group and releases it. It reports whether d was a member.
func (c *Composite) Remove(d api.Disposable) bool {
	if d == nil {
		return false
	}
	c.mu.Lock()
	idx := -1
	for i, m := range c.members {
		if m == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	last := len(c.members) - 1
	c.members[idx] = c.members[last]
	c.members[last] = nil
	c.members = c.members[:last]
	c.mu.Unlock()

	d.Dispose()
	return true
}

// Len returns the number of members currently held.
func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}

// Dispose releases every member once. Members are released outside the lock.
func (c *Composite) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	members := c.members
	c.members = nil
	c.mu.Unlock()

	for _, d := range members {
		d.Dispose()
	}
}

// IsDisposed reports whether Dispose has been called.
func (c *Composite) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
