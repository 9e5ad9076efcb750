// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package concurrency provides the goroutine-backed hosts that execute
// scheduled work: EventLoop runs every callback on one goroutine in enqueue
// order, Executor spreads callbacks over a fixed worker pool. Both implement
// api.Host and share a bounded lock-free MPMC inbox and ticker-based timers.
package concurrency
