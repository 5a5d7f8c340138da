// Package cell implements observable value cells with automatic dependency
// tracking.
//
// A Runtime is a capture session. Signals created against it record
// themselves into the running capture whenever they are read with Get, and an
// Effect uses one capture to learn which signals its callback reads before
// subscribing to exactly those.
//
//	rt := cell.NewRuntime()
//	count := cell.Signal(rt, 1)
//	todo := cell.Object(rt, map[string]any{"meta": map[string]any{"done": 0}})
//
//	sub, err := cell.EffectFunc(rt, func() {
//		fmt.Println(count.Get(), todo.Get().Get("meta"))
//	})
//	if err != nil {
//		return err
//	}
//	defer sub.Stop()
//
//	count.Set(2)                        // re-runs the effect
//	todo.Get().SetAt(1, "meta", "done") // so does a nested write
//
// Everything is synchronous. Writes notify listeners on the caller's stack
// and listeners may write again, so a listener that writes to its own
// dependency without a stopping condition never returns.
package cell
