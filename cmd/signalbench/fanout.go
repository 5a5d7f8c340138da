package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/delaneyj/signalcell/cell"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
)

type FanoutResult struct {
	Case     FanoutCase
	Duration time.Duration
	Runs     uint64
	// RunsPerSecond counts effect re-runs only, the capturing runs are not
	// part of the timed section.
	RunsPerSecond float64
}

// every objectEvery-th effect also reads the shared object signal, and every
// objectEvery-th write goes to one of its nested fields
const objectEvery = 4

func runFanout(c FanoutCase, seed int64, logger zerolog.Logger) (FanoutResult, error) {
	var runErr error
	rt := cell.NewRuntime(
		cell.WithLogger(logger),
		cell.WithOnError(func(sub *cell.Subscription, err error) {
			runErr = fmt.Errorf("%s: %w", sub, err)
		}),
	)

	sources := make([]*cell.WriteableSignal[int], c.Sources)
	for i := range sources {
		sources[i] = cell.Signal(rt, i, cell.Named(fmt.Sprintf("source-%d", i)))
	}
	state := cell.Object(rt, map[string]any{
		"counter": map[string]any{"n": 0},
	}, cell.Named("state"))

	random := rand.New(rand.NewSource(seed))
	dependents := make([]uint64, c.Sources)
	var objectDependents uint64

	var sink int
	subs := make([]*cell.Subscription, 0, c.Effects)
	for e := 0; e < c.Effects; e++ {
		picked := random.Perm(c.Sources)[:c.Reads]
		readsObject := e%objectEvery == 0
		for _, idx := range picked {
			dependents[idx]++
		}
		if readsObject {
			objectDependents++
		}

		sub, err := cell.EffectFunc(rt, func() {
			sum := 0
			for _, idx := range picked {
				sum += sources[idx].Get()
			}
			if readsObject {
				n, _ := state.Get().At("counter", "n")
				sum += n.(int)
			}
			sink = sum
		})
		if err != nil {
			return FanoutResult{}, err
		}
		subs = append(subs, sub)
	}

	var expected uint64
	start := time.Now()
	for i := 0; i < c.Iterations; i++ {
		if i%objectEvery == objectEvery-1 {
			if err := state.Get().SetAt(i, "counter", "n"); err != nil {
				return FanoutResult{}, err
			}
			expected += objectDependents
			continue
		}
		idx := i % c.Sources
		sources[idx].Set(i)
		expected += dependents[idx]
	}
	elapsed := time.Since(start)
	logger.Debug().Str("case", c.Name).Int("sink", sink).Msg("fanout done")
	if runErr != nil {
		return FanoutResult{}, runErr
	}

	var runs uint64
	for _, sub := range subs {
		runs += sub.Runs() - 1
		sub.Stop()
	}
	if runs != expected {
		return FanoutResult{}, fmt.Errorf("fanout %q: %d effect runs, want %d", c.Name, runs, expected)
	}

	result := FanoutResult{Case: c, Duration: elapsed, Runs: runs}
	if elapsed > 0 {
		result.RunsPerSecond = float64(runs) / elapsed.Seconds()
	}
	return result, nil
}

func renderFanout(w io.Writer, results []FanoutResult) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"test", "sources", "effects", "reads", "writes", "time", "effect runs", "rate"})
	for _, r := range results {
		tbl.Append([]string{
			r.Case.Name,
			humanize.Comma(int64(r.Case.Sources)),
			humanize.Comma(int64(r.Case.Effects)),
			fmt.Sprint(r.Case.Reads),
			humanize.Comma(int64(r.Case.Iterations)),
			fmt.Sprint(r.Duration),
			humanize.Comma(int64(r.Runs)),
			humanize.SI(r.RunsPerSecond, "runs/s"),
		})
	}
	tbl.Render()
}
