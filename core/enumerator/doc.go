// File: core/enumerator/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package enumerator turns a push-based observable into a blocking, pull-based
// sequence.
//
// Values are buffered in an unbounded FIFO as they arrive from any goroutine.
// A single consumer goroutine pulls them with Advance/Current, the Values
// iterator, or ToSlice. An error notification is raised again from Advance once
// the queued values before it were consumed.
package enumerator
