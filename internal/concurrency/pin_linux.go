//go:build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "golang.org/x/sys/unix"

// pinCurrentThread binds the calling OS thread to cpuID. The caller must hold
// runtime.LockOSThread.
func pinCurrentThread(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	return unix.SchedSetaffinity(0, &set)
}
