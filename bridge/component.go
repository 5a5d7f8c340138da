package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Lifecycle is the mount/unmount surface a framework-bound effect needs.
type Lifecycle interface {
	OnMount(fn func() error)
	OnUnmount(fn func())
}

type ComponentOption func(*Component)

func WithLogger(l zerolog.Logger) ComponentOption {
	return func(c *Component) {
		c.logger = l
	}
}

// Component is a minimal host: it implements ExternalStore and Lifecycle
// and re-renders whenever a store's snapshot moves.
type Component struct {
	name   string
	render func()
	logger zerolog.Logger

	mu           sync.Mutex
	mounted      bool
	slots        []*storeSlot
	mountHooks   []func() error
	unmountHooks []func()
	renders      int
}

type storeSlot struct {
	subscribe   func(onChange func()) (unsubscribe func())
	getSnapshot func() uint64
	last        uint64
	unsubscribe func()
}

func NewComponent(name string, render func(), opts ...ComponentOption) *Component {
	c := &Component{
		name:   name,
		render: render,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SyncExternalStore registers a store and returns its current snapshot.
// Stores registered while mounted are subscribed immediately.
func (c *Component) SyncExternalStore(subscribe func(onChange func()) (unsubscribe func()), getSnapshot func() uint64) uint64 {
	slot := &storeSlot{
		subscribe:   subscribe,
		getSnapshot: getSnapshot,
		last:        getSnapshot(),
	}

	c.mu.Lock()
	c.slots = append(c.slots, slot)
	mounted := c.mounted
	c.mu.Unlock()

	if mounted {
		c.subscribeSlot(slot)
	}
	return slot.last
}

func (c *Component) OnMount(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mountHooks = append(c.mountHooks, fn)
}

func (c *Component) OnUnmount(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmountHooks = append(c.unmountHooks, fn)
}

// Mount renders once, subscribes every registered store and then runs the
// mount hooks. Hook errors are joined and returned; the component stays
// mounted so Unmount still releases what did succeed.
func (c *Component) Mount() error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	slots := append([]*storeSlot(nil), c.slots...)
	hooks := append([]func() error(nil), c.mountHooks...)
	c.mu.Unlock()

	c.doRender()
	for _, slot := range slots {
		c.subscribeSlot(slot)
	}

	var errs []error
	for _, hook := range hooks {
		if err := hook(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.logger.Warn().Err(err).Str("component", c.name).Msg("mount hook failed")
		return fmt.Errorf("mount %s: %w", c.name, err)
	}
	c.logger.Debug().Str("component", c.name).Int("stores", len(slots)).Msg("mounted")
	return nil
}

// Unmount drops every store subscription and runs unmount hooks in reverse
// registration order.
func (c *Component) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	slots := append([]*storeSlot(nil), c.slots...)
	hooks := append(([]func())(nil), c.unmountHooks...)
	c.mu.Unlock()

	for _, slot := range slots {
		if slot.unsubscribe != nil {
			slot.unsubscribe()
			slot.unsubscribe = nil
		}
	}
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
	c.logger.Debug().Str("component", c.name).Msg("unmounted")
}

func (c *Component) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Renders counts render calls, the mount render included.
func (c *Component) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

func (c *Component) subscribeSlot(slot *storeSlot) {
	slot.unsubscribe = slot.subscribe(func() {
		c.storeChanged(slot)
	})
}

func (c *Component) storeChanged(slot *storeSlot) {
	snap := slot.getSnapshot()

	c.mu.Lock()
	if !c.mounted || snap == slot.last {
		c.mu.Unlock()
		return
	}
	slot.last = snap
	c.mu.Unlock()

	c.doRender()
}

func (c *Component) doRender() {
	c.mu.Lock()
	c.renders++
	c.mu.Unlock()

	if c.render != nil {
		c.render()
	}
}
