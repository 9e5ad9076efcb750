// control/probes.go
// Author: momentics <momentics@gmail.com>
//
// Named probes for point-in-time inspection of a running engine.

package control

import (
	"maps"
	"runtime"
	"slices"
	"sync"
)

// Probes is a registry of named read-only state functions.
type Probes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewProbes creates an empty registry.
func NewProbes() *Probes {
	return &Probes{probes: make(map[string]func() any)}
}

// Register adds or replaces the probe called name.
func (p *Probes) Register(name string, fn func() any) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probes[name] = fn
}

// Unregister removes the probe called name.
func (p *Probes) Unregister(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.probes, name)
}

// Names returns the registered probe names in sorted order.
func (p *Probes) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.probes))
}

// Snapshot evaluates every probe. Probes run outside the registry lock.
func (p *Probes) Snapshot() map[string]any {
	p.mu.RLock()
	fns := maps.Clone(p.probes)
	p.mu.RUnlock()

	out := make(map[string]any, len(fns))
	for name, fn := range fns {
		out[name] = fn()
	}
	return out
}

// RegisterRuntimeProbes adds Go runtime probes.
func RegisterRuntimeProbes(p *Probes) {
	p.Register("runtime.cpus", func() any { return runtime.NumCPU() })
	p.Register("runtime.goroutines", func() any { return runtime.NumGoroutine() })
}
