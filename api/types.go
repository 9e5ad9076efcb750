// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// WorkState enumerates the lifecycle of a scheduled unit of work.
// Fired and Cancelled are terminal and mutually exclusive.
type WorkState int32

const (
	WorkPending WorkState = iota
	WorkFired
	WorkCancelled
)

func (s WorkState) String() string {
	switch s {
	case WorkPending:
		return "pending"
	case WorkFired:
		return "fired"
	case WorkCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
