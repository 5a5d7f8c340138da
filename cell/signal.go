package cell

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
)

// Listener is a notification callback. Listeners are compared by pointer, so
// subscribing the same *Listener twice keeps a single registration.
type Listener struct {
	fn func()
}

func NewListener(fn func()) *Listener {
	return &Listener{fn: fn}
}

func (l *Listener) notify() {
	if l.fn != nil {
		l.fn()
	}
}

// Dependency is the type-erased view of a signal used by captures, effects
// and the render bridge.
type Dependency interface {
	ID() uint64
	Name() string
	Version() uint64
	ListenerCount() int
	// PeekAny returns the current payload without recording a read.
	PeekAny() any
	Subscribe(l *Listener) (unsubscribe func())
}

// WriteableSignal is an observable value cell. Every Set, and for object
// signals every nested field write, notifies all listeners synchronously
// before returning.
//
// Listeners run on the writer's stack. A listener that writes to a signal
// triggers a nested notification pass, and one that unconditionally writes
// to its own dependency recurses until the stack overflows.
type WriteableSignal[T any] struct {
	rt      *Runtime
	id      uint64
	name    string
	version atomic.Uint64

	mu    sync.RWMutex
	value T

	listeners mapset.Set[*Listener]
}

func newSignal[T any](rt *Runtime, opts []SignalOption) *WriteableSignal[T] {
	var o signalOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &WriteableSignal[T]{
		rt:        rt,
		id:        nextID(),
		name:      o.name,
		listeners: mapset.NewSet[*Listener](),
	}
}

func (s *WriteableSignal[T]) register() {
	if s.rt.registry != nil {
		s.rt.registry.add(s)
	}
	s.rt.logger.Debug().Str("signal", s.String()).Msg("signal created")
}

// Signal creates a cell holding v as-is.
func Signal[T any](rt *Runtime, v T, opts ...SignalOption) *WriteableSignal[T] {
	s := newSignal[T](rt, opts)
	s.value = v
	s.register()
	return s
}

// Object creates a cell whose payload is an observable tree built from
// fields. Writes to any nested field notify the same listeners as Set. A nil
// map gives an empty tree.
func Object(rt *Runtime, fields map[string]any, opts ...SignalOption) *WriteableSignal[*Node] {
	if fields == nil {
		fields = map[string]any{}
	}
	s := newSignal[*Node](rt, opts)
	s.value = wrapObject(fields, s.notify)
	s.register()
	return s
}

// Create wraps v in an observable tree when it is a map[string]any and
// stores it unchanged otherwise.
func Create(rt *Runtime, v any, opts ...SignalOption) *WriteableSignal[any] {
	s := newSignal[any](rt, opts)
	s.value = Wrap(v, s.notify)
	s.register()
	return s
}

func (s *WriteableSignal[T]) ID() uint64 {
	return s.id
}

func (s *WriteableSignal[T]) Name() string {
	return s.name
}

func (s *WriteableSignal[T]) String() string {
	return signalLabel(s.id, s.name)
}

// Version counts accepted writes, nested field writes included.
func (s *WriteableSignal[T]) Version() uint64 {
	return s.version.Load()
}

func (s *WriteableSignal[T]) ListenerCount() int {
	return s.listeners.Cardinality()
}

// Get returns the payload. While the runtime is capturing, the read makes
// this signal a dependency of the capture.
func (s *WriteableSignal[T]) Get() T {
	s.rt.record(s)
	return s.Peek()
}

// Peek returns the payload without recording a read.
func (s *WriteableSignal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *WriteableSignal[T]) PeekAny() any {
	return s.Peek()
}

// Set replaces the payload and notifies every listener. There is no
// equality check, writing the same value twice notifies twice. A map stored
// through Set is not wrapped.
func (s *WriteableSignal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
	s.notify()
}

// Update replaces the payload with fn(current) and notifies.
func (s *WriteableSignal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.mu.Unlock()
	s.notify()
}

func (s *WriteableSignal[T]) notify() {
	s.version.Add(1)
	for _, l := range s.listeners.ToSlice() {
		l.notify()
	}
}

// Subscribe adds l to the listener set. The returned func removes it again
// and may be called any number of times.
func (s *WriteableSignal[T]) Subscribe(l *Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	s.listeners.Add(l)
	return func() {
		s.listeners.Remove(l)
	}
}

// SubscribeFunc subscribes fn under a fresh listener.
func (s *WriteableSignal[T]) SubscribeFunc(fn func()) (unsubscribe func()) {
	return s.Subscribe(NewListener(fn))
}

// Assign is the dynamic write path used by adapters that address signals by
// property name. Only "value" is writable.
func (s *WriteableSignal[T]) Assign(prop string, v any) error {
	if prop != "value" {
		s.rt.logger.Debug().Str("signal", s.String()).Str("property", prop).Msg("rejected write")
		return &RejectedWriteError{Signal: s.String(), Property: prop}
	}
	t, ok := v.(T)
	if !ok {
		if v != nil {
			return fmt.Errorf("%w: %T for signal %s", ErrValueType, v, s)
		}
		if !nilable(reflect.TypeOf((*T)(nil)).Elem()) {
			return fmt.Errorf("%w: nil for signal %s", ErrValueType, s)
		}
	}
	s.Set(t)
	return nil
}

// Property is the dynamic read path. "value" reads through Get and
// "subscribe" yields SubscribeFunc.
func (s *WriteableSignal[T]) Property(prop string) (any, error) {
	switch prop {
	case "value":
		return s.Get(), nil
	case "subscribe":
		return s.SubscribeFunc, nil
	default:
		return nil, fmt.Errorf("%w: %q on signal %s", ErrUnknownProperty, prop, s)
	}
}
