package bridge

import (
	"github.com/delaneyj/signalcell/cell"
)

// BoundEffect is an effect whose lifetime follows a host component.
type BoundEffect struct {
	sub *cell.Subscription
}

// BindEffect registers fn as an effect when lc mounts and stops it when lc
// unmounts. A failing first run is returned from the mount.
//
// Unlike a plain cell.Effect, a notification only re-runs fn when at least
// one captured dependency now holds a different value, by strict equality,
// than it did after the previous run. Writes into a nested object keep the
// same *cell.Node and therefore do not re-run a bound effect; components
// that need those should read through UseSignal instead.
func BindEffect(lc Lifecycle, rt *cell.Runtime, fn cell.ErrFn) *BoundEffect {
	b := &BoundEffect{}
	lc.OnMount(func() error {
		sub, err := cell.Effect(rt, fn, cell.WithGate(dependencyChanged))
		if err != nil {
			return err
		}
		b.sub = sub
		return nil
	})
	lc.OnUnmount(func() {
		if b.sub != nil {
			b.sub.Stop()
			b.sub = nil
		}
	})
	return b
}

// Subscription returns the active subscription, nil before mount, after
// unmount, or when the mount failed.
func (b *BoundEffect) Subscription() *cell.Subscription {
	return b.sub
}

func dependencyChanged(sub *cell.Subscription) bool {
	return sub.Changed()
}
