// File: core/operator/where.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package operator

import (
	"fmt"
	"sync"

	"github.com/eapache/queue"

	"github.com/HasdrubalTn/reactive/api"
)

// Predicate decides whether a value passes.
type Predicate[T any] func(T) bool

// AsyncPredicate resolves its verdict later through the returned channel. The
// channel must deliver exactly one Result.
type AsyncPredicate[T any] func(T) <-chan api.Result[bool]

type where[T any] struct {
	down    api.Observer[T]
	pred    Predicate[T]
	stopped bool
}

// NewWhere forwards the values for which pred returns true.
func NewWhere[T any](down api.Observer[T], pred Predicate[T]) api.Observer[T] {
	return &where[T]{down: down, pred: pred}
}

func (w *where[T]) OnNext(value T) {
	if w.stopped {
		return
	}
	ok, err := guard("where", func() bool { return w.pred(value) })
	if err != nil {
		w.stopped = true
		w.down.OnError(err)
		return
	}
	if ok {
		w.down.OnNext(value)
	}
}

func (w *where[T]) OnError(err error) {
	if w.stopped {
		return
	}
	w.stopped = true
	w.down.OnError(err)
}

func (w *where[T]) OnCompleted() {
	if w.stopped {
		return
	}
	w.stopped = true
	w.down.OnCompleted()
}

// verdict is one queued notification of whereAsync: a value awaiting its
// predicate result, or a terminal.
type verdict[T any] struct {
	value    T
	ch       <-chan api.Result[bool]
	terminal bool
	err      error
}

type whereAsync[T any] struct {
	down api.Observer[T]
	pred AsyncPredicate[T]

	mu       sync.Mutex
	pending  *queue.Queue // of verdict[T], in source order
	draining bool         // one drainer owns delivery downstream
	closed   bool         // terminal queued, upstream input ignored

	done chan struct{}
	once sync.Once
}

// NewWhereAsync is NewWhere with an asynchronous predicate. Values wait in a
// FIFO for their verdicts and are forwarded in source order, so a later value
// never overtakes an earlier one. The goroutine delivering OnNext is not held
// while a verdict is pending; a single drain goroutine waits instead and exits
// when the subscription ends.
//
// The returned observer is also an api.Disposable; Lift ties it to the
// subscription handle.
func NewWhereAsync[T any](down api.Observer[T], pred AsyncPredicate[T]) api.Observer[T] {
	return &whereAsync[T]{
		down:    down,
		pred:    pred,
		pending: queue.New(),
		done:    make(chan struct{}),
	}
}

func (w *whereAsync[T]) OnNext(value T) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed || w.ended() {
		return
	}
	ch, err := guard("where", func() <-chan api.Result[bool] { return w.pred(value) })
	if err == nil && ch == nil {
		err = api.OperatorFault("where", "predicate returned a nil channel")
	}
	if err != nil {
		w.push(verdict[T]{terminal: true, err: err})
		return
	}
	w.push(verdict[T]{value: value, ch: ch})
}

func (w *whereAsync[T]) OnError(err error) {
	w.push(verdict[T]{terminal: true, err: err})
}

func (w *whereAsync[T]) OnCompleted() {
	w.push(verdict[T]{terminal: true})
}

// Dispose stops delivery and releases a drainer waiting on a verdict.
func (w *whereAsync[T]) Dispose() {
	w.once.Do(func() { close(w.done) })
	w.mu.Lock()
	w.pending = queue.New()
	w.mu.Unlock()
}

func (w *whereAsync[T]) ended() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

func (w *whereAsync[T]) push(v verdict[T]) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = v.terminal
	w.pending.Add(v)
	if w.draining {
		w.mu.Unlock()
		return
	}
	w.draining = true
	w.mu.Unlock()
	w.drain(false)
}

// drain forwards queued notifications whose verdicts are known. With wait
// false it runs on the caller's goroutine and hands off to a new drain
// goroutine at the first unresolved verdict.
func (w *whereAsync[T]) drain(wait bool) {
	for {
		w.mu.Lock()
		if w.pending.Length() == 0 || w.ended() {
			w.draining = false
			w.mu.Unlock()
			return
		}
		v, _ := w.pending.Peek().(verdict[T])
		w.mu.Unlock()

		if v.terminal {
			w.finish(v.err)
			return
		}

		var (
			res api.Result[bool]
			ok  bool
		)
		if wait {
			select {
			case res, ok = <-v.ch:
			case <-w.done:
				return
			}
		} else {
			select {
			case res, ok = <-v.ch:
			default:
				go w.drain(true)
				return
			}
		}

		w.mu.Lock()
		if w.ended() {
			w.mu.Unlock()
			return
		}
		w.pending.Remove()
		w.mu.Unlock()

		switch {
		case !ok:
			w.finish(api.OperatorFault("where", "predicate channel closed without a result"))
			return
		case res.Err != nil:
			w.finish(fmt.Errorf("where: predicate: %w", res.Err))
			return
		case res.Value:
			w.down.OnNext(v.value)
		}
	}
}

// finish delivers the terminal notification and ends the subscription.
func (w *whereAsync[T]) finish(err error) {
	if w.ended() {
		return
	}
	w.Dispose()
	if err != nil {
		w.down.OnError(err)
		return
	}
	w.down.OnCompleted()
}

// Filter emits the values of src for which pred returns true.
func Filter[T any](src api.Observable[T], pred Predicate[T]) api.Observable[T] {
	if pred == nil {
		return invalid[T]("predicate")
	}
	return Lift(src, func(down api.Observer[T]) api.Observer[T] {
		return NewWhere(down, pred)
	})
}

// FilterAsync emits the values of src accepted by an asynchronous predicate,
// in source order.
func FilterAsync[T any](src api.Observable[T], pred AsyncPredicate[T]) api.Observable[T] {
	if pred == nil {
		return invalid[T]("predicate")
	}
	return Lift(src, func(down api.Observer[T]) api.Observer[T] {
		return NewWhereAsync(down, pred)
	})
}
