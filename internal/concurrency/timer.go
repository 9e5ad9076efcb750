// File: internal/concurrency/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"errors"
	"sync"
	"time"

	"github.com/HasdrubalTn/reactive/api"
	"github.com/HasdrubalTn/reactive/control"
)

// timerSet tracks started timers so a closing host can stop them.
type timerSet struct {
	mu     sync.Mutex
	active map[*ticker]struct{}
	closed bool
}

func newTimerSet() *timerSet {
	return &timerSet{active: make(map[*ticker]struct{})}
}

func (s *timerSet) add(t *ticker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.active[t] = struct{}{}
	return true
}

func (s *timerSet) remove(t *ticker) {
	s.mu.Lock()
	delete(s.active, t)
	s.mu.Unlock()
}

func (s *timerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// close stops every started timer and refuses new starts.
func (s *timerSet) close() {
	s.mu.Lock()
	s.closed = true
	ts := make([]*ticker, 0, len(s.active))
	for t := range s.active {
		ts = append(ts, t)
	}
	s.mu.Unlock()

	for _, t := range ts {
		t.Stop()
	}
}

// ticker is an api.Timer that posts its tick to a host queue on every period.
type ticker struct {
	post    func(func()) error
	tick    func()
	owner   *timerSet
	metrics *control.Metrics

	mu   sync.Mutex
	stop chan struct{}
}

var _ api.Timer = (*ticker)(nil)

func newTicker(post func(func()) error, tick func(), owner *timerSet, m *control.Metrics) *ticker {
	return &ticker{post: post, tick: tick, owner: owner, metrics: m}
}

// Start arms the timer. Restarting an armed timer replaces its period.
func (t *ticker) Start(interval time.Duration) {
	if interval < api.MinTimerInterval {
		interval = api.MinTimerInterval
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
	} else {
		if !t.owner.add(t) {
			return
		}
		t.metrics.TimerStarted()
	}
	stop := make(chan struct{})
	t.stop = stop
	go t.run(interval, stop)
}

// Stop disarms the timer. A tick already posted may still run.
func (t *ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
	t.owner.remove(t)
	t.metrics.TimerStopped()
}

func (t *ticker) run(interval time.Duration, stop <-chan struct{}) {
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			// A full inbox drops this tick only; the next period tries again.
			if err := t.post(t.tick); errors.Is(err, api.ErrHostClosed) {
				return
			}
		}
	}
}
