package main

import (
	"fmt"
	"io"
	"time"

	"github.com/delaneyj/signalcell/cell"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
)

type PropagateResult struct {
	Case     PropagateCase
	Avg      time.Duration
	Min      time.Duration
	P75      time.Duration
	P99      time.Duration
	Max      time.Duration
	LeafRuns uint64
}

func runPropagate(c PropagateCase, logger zerolog.Logger) (PropagateResult, error) {
	var runErr error
	rt := cell.NewRuntime(
		cell.WithLogger(logger),
		cell.WithOnError(func(sub *cell.Subscription, err error) {
			runErr = fmt.Errorf("%s: %w", sub, err)
		}),
	)

	src := cell.Signal(rt, 0, cell.Named("source"))
	leaves := make([]*cell.WriteableSignal[int], 0, c.Width)
	var leafRuns uint64

	for i := 0; i < c.Width; i++ {
		prev := src
		for j := 0; j < c.Depth; j++ {
			from, next := prev, cell.Signal(rt, 0)
			if _, err := cell.EffectFunc(rt, func() {
				next.Set(from.Get() + 1)
			}); err != nil {
				return PropagateResult{}, err
			}
			prev = next
		}
		leaf := prev
		leaves = append(leaves, leaf)
		if _, err := cell.EffectFunc(rt, func() {
			leaf.Get()
			leafRuns++
		}); err != nil {
			return PropagateResult{}, err
		}
	}

	tach := tachymeter.New(&tachymeter.Config{Size: c.Iterations})
	for i := 0; i < c.Iterations; i++ {
		start := time.Now()
		src.Set(src.Peek() + 1)
		tach.AddTime(time.Since(start))
	}
	if runErr != nil {
		return PropagateResult{}, runErr
	}

	// every write walks each chain once: one leaf run per chain per write
	// plus the capturing run
	if want := uint64(c.Width * (c.Iterations + 1)); leafRuns != want {
		return PropagateResult{}, fmt.Errorf("propagate %dx%d: %d leaf runs, want %d", c.Width, c.Depth, leafRuns, want)
	}
	for _, leaf := range leaves {
		if got, want := leaf.Peek(), src.Peek()+c.Depth; got != want {
			return PropagateResult{}, fmt.Errorf("propagate %dx%d: leaf holds %d, want %d", c.Width, c.Depth, got, want)
		}
	}

	calc := tach.Calc()
	return PropagateResult{
		Case:     c,
		Avg:      calc.Time.Avg,
		Min:      calc.Time.Min,
		P75:      calc.Time.P75,
		P99:      calc.Time.P99,
		Max:      calc.Time.Max,
		LeafRuns: leafRuns,
	}, nil
}

func renderPropagate(w io.Writer, results []PropagateResult) {
	tbl := table.NewWriter()
	tbl.SetTitle("Propagation")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "leaf runs"})
	for _, r := range results {
		tbl.AppendRow(table.Row{
			fmt.Sprintf("propagate: %d * %d", r.Case.Width, r.Case.Depth),
			r.Avg,
			r.Min,
			r.P75,
			r.P99,
			r.Max,
			r.LeafRuns,
		})
	}
	tbl.Render()
}
