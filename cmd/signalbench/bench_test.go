package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPropagate(t *testing.T) {
	c := PropagateCase{Width: 3, Depth: 4, Iterations: 10}
	r, err := runPropagate(c, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, c, r.Case)
	assert.EqualValues(t, 3*11, r.LeafRuns)
	assert.LessOrEqual(t, r.Min, r.Max)

	var buf bytes.Buffer
	renderPropagate(&buf, []PropagateResult{r})
	assert.Contains(t, buf.String(), "propagate: 3 * 4")
}

func TestRunFanout(t *testing.T) {
	c := FanoutCase{Name: "small", Sources: 5, Effects: 12, Reads: 3, Iterations: 40}
	r, err := runFanout(c, 1, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, c, r.Case)
	assert.NotZero(t, r.Runs)

	var buf bytes.Buffer
	renderFanout(&buf, []FanoutResult{r})
	assert.Contains(t, buf.String(), "small")
}

func TestRunFanoutSeedIsDeterministic(t *testing.T) {
	c := FanoutCase{Name: "seeded", Sources: 8, Effects: 20, Reads: 2, Iterations: 64}
	a, err := runFanout(c, 42, zerolog.Nop())
	require.NoError(t, err)
	b, err := runFanout(c, 42, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, a.Runs, b.Runs)
}

func TestRunAllStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runAllPropagate(ctx, DefaultConfig(), zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = runAllFanout(ctx, DefaultConfig(), zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteReport(t *testing.T) {
	cfg := Config{
		Seed:      1,
		Propagate: []PropagateCase{{Width: 1, Depth: 2, Iterations: 3}},
		Fanout:    []FanoutCase{{Name: "tiny", Sources: 2, Effects: 4, Reads: 1, Iterations: 8}},
	}
	prop, err := runAllPropagate(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	fan, err := runAllFanout(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	var buf bytes.Buffer
	generated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, writeReport(&buf, reportData(generated, prop, fan)))

	out := buf.String()
	assert.Contains(t, out, "Generated 2026-01-02T03:04:05Z.")
	assert.Contains(t, out, "| 1 | 2 | 3 |")
	assert.Contains(t, out, "| tiny | 2 | 4 | 1 | 8 |")
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeReport(&buf, reportData(time.Now(), nil, nil)))
	assert.Zero(t, buf.Len())
}
