package cell

import (
	"fmt"
	"sync"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog"
)

// ErrFn is the shape of effect and capture callbacks.
type ErrFn func() error

// Runtime is a dependency capture session plus the configuration shared by
// the signals and effects created against it. Signals from different
// runtimes never see each other's captures.
//
// A runtime runs at most one capture at a time. Reads made from other
// goroutines while a capture is running are recorded into it, so a runtime
// should be driven from a single goroutine, or one runtime per goroutine.
type Runtime struct {
	// session is held for the whole of a capture
	session sync.Mutex

	mu        sync.Mutex
	capturing bool
	deps      []Dependency
	seen      mapset.Set[uint64]

	logger   zerolog.Logger
	onError  OnErrorFunc
	registry *registry
}

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

func NewRuntime(opts ...Option) *Runtime {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	rt := &Runtime{
		seen:    mapset.NewThreadUnsafeSet[uint64](),
		logger:  o.logger,
		onError: o.onError,
	}
	if o.registry {
		rt.registry = newRegistry()
	}
	return rt
}

// Capturing reports whether a capture is running.
func (rt *Runtime) Capturing() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.capturing
}

func (rt *Runtime) record(d Dependency) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.capturing {
		return
	}
	if rt.seen.Add(d.ID()) {
		rt.deps = append(rt.deps, d)
	}
}

// Capture runs fn once and returns every dependency whose value was read
// through Get during that run, in first-read order without duplicates.
//
// Only reads that actually execute are seen. A signal read in a branch that
// was not taken on this run is not a dependency, even if a later run would
// read it.
func (rt *Runtime) Capture(fn func()) ([]Dependency, error) {
	return rt.CaptureErr(func() error {
		fn()
		return nil
	})
}

// CaptureErr is Capture for callbacks that can fail. A returned error or a
// panic inside fn yields a *CaptureError and no dependencies. The session is
// reset on every exit path.
func (rt *Runtime) CaptureErr(fn ErrFn) (deps []Dependency, err error) {
	if !rt.session.TryLock() {
		return nil, ErrCaptureActive
	}
	defer rt.session.Unlock()

	rt.mu.Lock()
	rt.capturing = true
	rt.mu.Unlock()

	defer func() {
		rt.mu.Lock()
		captured := rt.deps
		rt.capturing = false
		rt.deps = nil
		rt.seen.Clear()
		rt.mu.Unlock()

		if r := recover(); r != nil {
			err = &CaptureError{Panic: r}
		}
		if err != nil {
			deps = nil
			rt.logger.Warn().Err(err).Msg("capture failed")
			return
		}
		deps = captured
	}()

	if fnErr := fn(); fnErr != nil {
		return nil, &CaptureError{Err: fnErr}
	}
	return nil, nil
}

// Untrack runs fn with recording suspended, so reads inside it never become
// dependencies of a surrounding capture.
func (rt *Runtime) Untrack(fn func()) {
	rt.mu.Lock()
	prev := rt.capturing
	rt.capturing = false
	rt.mu.Unlock()

	defer func() {
		rt.mu.Lock()
		rt.capturing = prev
		rt.mu.Unlock()
	}()
	fn()
}

func (rt *Runtime) reportError(sub *Subscription, err error) {
	if rt.onError != nil {
		rt.onError(sub, err)
		return
	}
	rt.logger.Error().Err(err).Str("effect", sub.String()).Msg("effect run failed")
}

func signalLabel(id uint64, name string) string {
	if name == "" {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%s#%d", name, id)
}
