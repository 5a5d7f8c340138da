package cell_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/signalcell/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(deps []cell.Dependency) []uint64 {
	out := make([]uint64, len(deps))
	for i, d := range deps {
		out[i] = d.ID()
	}
	return out
}

// reads in untaken branches are not captured
func TestCaptureSkipsUntakenBranch(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	b := cell.Signal(rt, 2)

	cond := false
	deps, err := rt.Capture(func() {
		if cond {
			a.Get()
		} else {
			b.Get()
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{b.ID()}, ids(deps))
}

func TestCaptureOrderAndDedup(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	b := cell.Signal(rt, "b")
	c := cell.Object(rt, map[string]any{"x": 1})

	deps, err := rt.Capture(func() {
		b.Get()
		a.Get()
		b.Get()
		c.Get().Get("x")
		a.Get()
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{b.ID(), a.ID(), c.ID()}, ids(deps))
	assert.False(t, rt.Capturing())
}

func TestCaptureIgnoresPeek(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)

	deps, err := rt.Capture(func() {
		a.Peek()
	})
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestReadsOutsideCaptureAreNotRecorded(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	b := cell.Signal(rt, 1)

	a.Get()
	deps, err := rt.Capture(func() {
		b.Get()
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{b.ID()}, ids(deps))
}

func TestCapturingFlag(t *testing.T) {
	rt := cell.NewRuntime()
	assert.False(t, rt.Capturing())

	var during bool
	_, err := rt.Capture(func() {
		during = rt.Capturing()
	})
	require.NoError(t, err)
	assert.True(t, during)
	assert.False(t, rt.Capturing())
}

func TestNestedCaptureIsRejected(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	b := cell.Signal(rt, 2)

	var innerErr error
	deps, err := rt.Capture(func() {
		a.Get()
		_, innerErr = rt.Capture(func() {
			b.Get()
		})
	})
	require.NoError(t, err)
	assert.ErrorIs(t, innerErr, cell.ErrCaptureActive)
	assert.Equal(t, []uint64{a.ID()}, ids(deps))
}

// a capture on one runtime does not see reads of another runtime's signals
func TestRuntimesAreIndependent(t *testing.T) {
	rtA := cell.NewRuntime()
	rtB := cell.NewRuntime()
	a := cell.Signal(rtA, 1)
	b := cell.Signal(rtB, 1)

	var innerDeps []cell.Dependency
	deps, err := rtA.Capture(func() {
		a.Get()
		var innerErr error
		innerDeps, innerErr = rtB.Capture(func() {
			b.Get()
		})
		require.NoError(t, innerErr)
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{a.ID()}, ids(deps))
	assert.Equal(t, []uint64{b.ID()}, ids(innerDeps))
}

func TestCapturePanicIsReportedAndCleanedUp(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	b := cell.Signal(rt, 2)

	deps, err := rt.Capture(func() {
		a.Get()
		panic("boom")
	})
	require.Error(t, err)
	assert.Nil(t, deps)
	assert.ErrorIs(t, err, cell.ErrCaptureFailed)

	var capErr *cell.CaptureError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "boom", capErr.Panic)
	assert.False(t, rt.Capturing())

	// the working set was cleared, the next capture starts fresh
	deps, err = rt.Capture(func() {
		b.Get()
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{b.ID()}, ids(deps))
}

func TestCaptureErrReturnsWrappedError(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	errBad := errors.New("bad")

	deps, err := rt.CaptureErr(func() error {
		a.Get()
		return errBad
	})
	assert.Nil(t, deps)
	assert.ErrorIs(t, err, errBad)
	assert.ErrorIs(t, err, cell.ErrCaptureFailed)
	assert.False(t, rt.Capturing())
}

func TestUntrack(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	b := cell.Signal(rt, 2)

	deps, err := rt.Capture(func() {
		rt.Untrack(func() {
			a.Get()
		})
		b.Get()
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{b.ID()}, ids(deps))

	rt.Untrack(func() {
		assert.False(t, rt.Capturing())
	})
	assert.False(t, rt.Capturing())
}

// an effect re-run triggered from inside a capture does not add its own
// reads to that capture
func TestEffectRerunDoesNotLeakIntoCapture(t *testing.T) {
	rt := cell.NewRuntime()
	a := cell.Signal(rt, 1)
	b := cell.Signal(rt, 0)
	c := cell.Signal(rt, 0)

	sub, err := cell.EffectFunc(rt, func() {
		b.Get()
		c.Get()
	})
	require.NoError(t, err)

	deps, err := rt.Capture(func() {
		a.Get()
		b.Set(1)
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{a.ID()}, ids(deps))
	assert.EqualValues(t, 2, sub.Runs())
	assert.False(t, rt.Capturing())
}
