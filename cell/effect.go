package cell

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Subscription is an active effect. Its dependencies are discovered by the
// first run and stay fixed for the life of the subscription, so a signal that
// the callback only starts reading on a later run never triggers it.
type Subscription struct {
	rt   *Runtime
	id   uint64
	fn   ErrFn
	gate func(*Subscription) bool

	deps     []Dependency
	listener *Listener
	unsubs   []func()

	mu   sync.Mutex
	last []any

	runs    atomic.Uint64
	stopped atomic.Bool
}

// Effect runs fn once to capture its dependencies, then re-runs it on every
// notification from any of them until Stop is called. Without a gate every
// notification re-runs fn, whether or not the value changed.
//
// If the first run fails the error is returned, a *CaptureError, and nothing
// is subscribed.
func Effect(rt *Runtime, fn ErrFn, opts ...EffectOption) (*Subscription, error) {
	var o effectOptions
	for _, opt := range opts {
		opt(&o)
	}

	sub := &Subscription{
		rt:   rt,
		id:   nextID(),
		fn:   fn,
		gate: o.gate,
	}

	deps, err := rt.CaptureErr(fn)
	if err != nil {
		return nil, fmt.Errorf("effect %d: %w", sub.id, err)
	}
	sub.runs.Store(1)
	sub.deps = deps
	sub.last = peekAll(deps)

	sub.listener = NewListener(sub.notified)
	sub.unsubs = make([]func(), len(deps))
	for i, dep := range deps {
		sub.unsubs[i] = dep.Subscribe(sub.listener)
	}

	rt.logger.Debug().
		Str("effect", sub.String()).
		Int("deps", len(deps)).
		Msg("effect active")
	return sub, nil
}

// EffectFunc is Effect for callbacks that cannot fail.
func EffectFunc(rt *Runtime, fn func(), opts ...EffectOption) (*Subscription, error) {
	return Effect(rt, func() error {
		fn()
		return nil
	}, opts...)
}

func (sub *Subscription) notified() {
	if sub.stopped.Load() {
		return
	}
	if sub.gate != nil && !sub.gate(sub) {
		return
	}
	sub.run()
}

// run re-executes the callback. Reads inside it are not recorded, a re-run
// triggered by a write made inside some other capture must not leak into it.
func (sub *Subscription) run() {
	sub.runs.Add(1)
	var err error
	sub.rt.Untrack(func() {
		err = sub.fn()
	})

	sub.mu.Lock()
	sub.last = peekAll(sub.deps)
	sub.mu.Unlock()

	if err != nil {
		sub.rt.reportError(sub, err)
	}
}

// Stop unsubscribes from every dependency. It is safe to call more than once.
func (sub *Subscription) Stop() {
	if !sub.stopped.CompareAndSwap(false, true) {
		return
	}
	for _, unsub := range sub.unsubs {
		unsub()
	}
	sub.rt.logger.Debug().Str("effect", sub.String()).Msg("effect stopped")
}

func (sub *Subscription) Stopped() bool {
	return sub.stopped.Load()
}

// Deps returns the dependencies captured by the first run.
func (sub *Subscription) Deps() []Dependency {
	deps := make([]Dependency, len(sub.deps))
	copy(deps, sub.deps)
	return deps
}

// Runs counts executions of the callback, the capturing run included.
func (sub *Subscription) Runs() uint64 {
	return sub.runs.Load()
}

// Changed reports whether any dependency's current payload differs, by
// strict equality, from the payload seen after the last run. Writes into a
// nested object tree keep the same *Node and so do not count as a change.
func (sub *Subscription) Changed() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	for i, dep := range sub.deps {
		if !same(dep.PeekAny(), sub.last[i]) {
			return true
		}
	}
	return false
}

func (sub *Subscription) String() string {
	return fmt.Sprintf("effect#%d", sub.id)
}

func peekAll(deps []Dependency) []any {
	values := make([]any, len(deps))
	for i, dep := range deps {
		values[i] = dep.PeekAny()
	}
	return values
}
