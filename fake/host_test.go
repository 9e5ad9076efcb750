// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HasdrubalTn/reactive/api"
)

func TestHost_RunPendingDrainsNestedWork(t *testing.T) {
	h := NewHost()
	var order []int
	require.NoError(t, h.Enqueue(func() {
		order = append(order, 1)
		_ = h.Enqueue(func() { order = append(order, 3) })
	}))
	require.NoError(t, h.Enqueue(func() { order = append(order, 2) }))

	assert.Equal(t, 2, h.Pending())
	assert.Equal(t, 3, h.RunPending())
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestHost_TimersTickInDueOrder(t *testing.T) {
	h := NewHost()
	var fired []string
	a := h.NewTimer(func() { fired = append(fired, "a") })
	b := h.NewTimer(func() { fired = append(fired, "b") })
	a.Start(30 * time.Millisecond)
	b.Start(20 * time.Millisecond)

	h.Advance(60 * time.Millisecond)
	assert.Equal(t, []string{"b", "a", "b", "a", "b"}, fired)
	assert.Equal(t, time.Unix(0, 0).UTC().Add(60*time.Millisecond), h.Now())
	assert.Equal(t, 2, h.ActiveTimers())

	a.Stop()
	b.Stop()
	assert.Equal(t, 0, h.ActiveTimers())
	assert.Equal(t, 2, h.TimersCreated())
}

func TestHost_ZeroIntervalClamped(t *testing.T) {
	h := NewHost()
	n := 0
	tm := h.NewTimer(func() { n++ })
	tm.Start(0)
	h.Advance(5 * api.MinTimerInterval)
	assert.Equal(t, 5, n)
}

func TestHost_Closed(t *testing.T) {
	h := NewHost()
	h.Close()
	assert.ErrorIs(t, h.Enqueue(func() {}), api.ErrHostClosed)
}
