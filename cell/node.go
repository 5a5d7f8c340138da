package cell

import (
	"sort"
	"sync"
)

// Node is one level of an observable object tree. Every write at any depth
// of the tree calls the same onMutate callback that the root was built with,
// there is no per-field granularity.
//
// Only map[string]any values present when the tree is built are wrapped.
// Maps assigned later are stored as-is and writes into them go unnoticed,
// as do writes into slice elements.
type Node struct {
	mu       sync.RWMutex
	fields   map[string]any
	keys     []string
	onMutate func()
}

// Wrap returns value unchanged unless it is a non-nil map[string]any, in
// which case it builds a *Node over it. Nested maps are wrapped recursively
// with the same onMutate. The map is taken over by the tree, it is not
// copied defensively.
func Wrap(value any, onMutate func()) any {
	m, ok := value.(map[string]any)
	if !ok || m == nil {
		return value
	}
	if onMutate == nil {
		onMutate = func() {}
	}
	return wrapObject(m, onMutate)
}

func wrapObject(m map[string]any, onMutate func()) *Node {
	n := &Node{
		fields:   make(map[string]any, len(m)),
		keys:     make([]string, 0, len(m)),
		onMutate: onMutate,
	}
	for k, v := range m {
		if child, ok := v.(map[string]any); ok && child != nil {
			n.fields[k] = wrapObject(child, onMutate)
		} else {
			n.fields[k] = v
		}
		n.keys = append(n.keys, k)
	}
	sort.Strings(n.keys)
	return n
}

// Get returns the stored value for key, nil if absent.
func (n *Node) Get(key string) any {
	v, _ := n.Lookup(key)
	return v
}

func (n *Node) Lookup(key string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.fields[key]
	return v, ok
}

// Child returns the nested node stored under key.
func (n *Node) Child(key string) (*Node, bool) {
	child, ok := n.Get(key).(*Node)
	return child, ok
}

// Set stores v under key and then notifies. v is not validated or wrapped.
func (n *Node) Set(key string, v any) {
	n.mu.Lock()
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = v
	n.mu.Unlock()

	n.onMutate()
}

// At walks path through nested nodes and returns the value at its end.
func (n *Node) At(path ...string) (any, bool) {
	if len(path) == 0 {
		return n, true
	}
	cur := n
	for i, key := range path {
		v, ok := cur.Lookup(key)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(*Node)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// SetAt assigns v to the last segment of path. Every segment before it must
// address a nested node.
func (n *Node) SetAt(v any, path ...string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	parent := n
	if len(path) > 1 {
		at, ok := n.At(path[:len(path)-1]...)
		if !ok {
			return ErrNotObject
		}
		if parent, ok = at.(*Node); !ok {
			return ErrNotObject
		}
	}
	parent.Set(path[len(path)-1], v)
	return nil
}

// Keys lists the keys present at construction in sorted order followed by
// keys added later in insertion order.
func (n *Node) Keys() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}

func (n *Node) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.fields)
}

// Snapshot returns a deep plain copy of the tree with every node turned back
// into a map[string]any. Leaf values are shared, not cloned.
func (n *Node) Snapshot() map[string]any {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]any, len(n.fields))
	for k, v := range n.fields {
		if child, ok := v.(*Node); ok {
			out[k] = child.Snapshot()
		} else {
			out[k] = v
		}
	}
	return out
}
