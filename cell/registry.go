package cell

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// SignalInfo is a point-in-time description of a registered signal.
type SignalInfo struct {
	ID        uint64
	Name      string
	Listeners int
	Version   uint64
}

type registry struct {
	mu      sync.RWMutex
	signals map[uint64]Dependency
	// names maps xxhash(name) to the signals carrying it; collisions and
	// duplicate names both land in the same bucket
	names map[uint64][]Dependency
}

func newRegistry() *registry {
	return &registry{
		signals: map[uint64]Dependency{},
		names:   map[uint64][]Dependency{},
	}
}

func (r *registry) add(d Dependency) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals[d.ID()] = d
	if name := d.Name(); name != "" {
		key := xxhash.Sum64String(name)
		r.names[key] = append(r.names[key], d)
	}
}

// Signals lists every signal registered with the runtime, ordered by ID.
// It returns nil unless the runtime was built WithRegistry.
func (rt *Runtime) Signals() []SignalInfo {
	if rt.registry == nil {
		return nil
	}
	rt.registry.mu.RLock()
	infos := make([]SignalInfo, 0, len(rt.registry.signals))
	for _, d := range rt.registry.signals {
		infos = append(infos, SignalInfo{
			ID:        d.ID(),
			Name:      d.Name(),
			Listeners: d.ListenerCount(),
			Version:   d.Version(),
		})
	}
	rt.registry.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Lookup returns the first signal registered under name.
func (rt *Runtime) Lookup(name string) (Dependency, bool) {
	if rt.registry == nil || name == "" {
		return nil, false
	}
	rt.registry.mu.RLock()
	defer rt.registry.mu.RUnlock()
	for _, d := range rt.registry.names[xxhash.Sum64String(name)] {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}
