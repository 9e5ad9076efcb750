// Package observabletest provides observers that record notifications for tests.
package observabletest

import (
	"sync"

	"github.com/HasdrubalTn/reactive/api"
)

// Kind identifies a notification.
type Kind int

const (
	KindNext Kind = iota
	KindError
	KindCompleted
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	default:
		return "completed"
	}
}

// Notification is one recorded observer call.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// Recorder is an api.Observer that records every call.
//
// Recorder is safe under concurrent calls so tests can detect protocol
// violations instead of racing on them.
type Recorder[T any] struct {
	mu            sync.Mutex
	notifications []Notification[T]
	terminated    chan struct{}
	once          sync.Once
}

var _ api.Observer[int] = (*Recorder[int])(nil)

// NewRecorder constructs a Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{terminated: make(chan struct{})}
}

func (r *Recorder[T]) OnNext(value T) {
	r.record(Notification[T]{Kind: KindNext, Value: value})
}

func (r *Recorder[T]) OnError(err error) {
	r.record(Notification[T]{Kind: KindError, Err: err})
	r.once.Do(func() { close(r.terminated) })
}

func (r *Recorder[T]) OnCompleted() {
	r.record(Notification[T]{Kind: KindCompleted})
	r.once.Do(func() { close(r.terminated) })
}

func (r *Recorder[T]) record(n Notification[T]) {
	r.mu.Lock()
	r.notifications = append(r.notifications, n)
	r.mu.Unlock()
}

// Terminated is closed on the first terminal notification.
func (r *Recorder[T]) Terminated() <-chan struct{} {
	return r.terminated
}

// Notifications returns a snapshot copy of recorded notifications.
func (r *Recorder[T]) Notifications() []Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]Notification[T], len(r.notifications))
	copy(cp, r.notifications)
	return cp
}

// Values returns the recorded OnNext values in order.
func (r *Recorder[T]) Values() []T {
	ns := r.Notifications()
	out := make([]T, 0, len(ns))
	for _, n := range ns {
		if n.Kind == KindNext {
			out = append(out, n.Value)
		}
	}
	return out
}

// Terminals returns the recorded terminal notifications.
func (r *Recorder[T]) Terminals() []Notification[T] {
	ns := r.Notifications()
	var out []Notification[T]
	for _, n := range ns {
		if n.Kind != KindNext {
			out = append(out, n)
		}
	}
	return out
}

// Err returns the first recorded error, if any.
func (r *Recorder[T]) Err() error {
	for _, n := range r.Notifications() {
		if n.Kind == KindError {
			return n.Err
		}
	}
	return nil
}

// Completed reports whether OnCompleted was recorded.
func (r *Recorder[T]) Completed() bool {
	for _, n := range r.Notifications() {
		if n.Kind == KindCompleted {
			return true
		}
	}
	return false
}
