package bridge

import (
	"sync/atomic"

	"github.com/delaneyj/signalcell/cell"
)

// ExternalStore is the host framework primitive a component uses to read
// from a store it does not own. The host calls getSnapshot after every
// onChange callback and re-renders when the snapshot differs from the
// previous one.
type ExternalStore interface {
	SyncExternalStore(subscribe func(onChange func()) (unsubscribe func()), getSnapshot func() uint64) uint64
}

// Store adapts a signal to the external store contract. Its snapshot is a
// counter bumped on every notification, so nested writes that leave the
// payload's identity unchanged still produce a new snapshot.
type Store struct {
	dep     cell.Dependency
	version atomic.Uint64
}

func NewStore(dep cell.Dependency) *Store {
	return &Store{dep: dep}
}

func (s *Store) Subscribe(onChange func()) (unsubscribe func()) {
	return s.dep.Subscribe(cell.NewListener(func() {
		s.version.Add(1)
		onChange()
	}))
}

func (s *Store) Snapshot() uint64 {
	return s.version.Load()
}

// UseSignal binds dep to the host through a fresh Store and returns the
// current snapshot.
func UseSignal(host ExternalStore, dep cell.Dependency) uint64 {
	st := NewStore(dep)
	return host.SyncExternalStore(st.Subscribe, st.Snapshot)
}
