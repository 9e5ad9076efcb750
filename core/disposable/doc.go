// File: core/disposable/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package disposable implements idempotent, goroutine-safe cancellation handles
// with ownership transfer.
//
// Every primitive resolves concurrent assignment and disposal so that a resource
// handed to it is released exactly once: either by the holder's Dispose, by being
// replaced, or immediately on assignment when the holder is already disposed.
package disposable
