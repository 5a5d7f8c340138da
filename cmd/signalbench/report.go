package main

import (
	"fmt"
	"io"
	"time"

	"github.com/delaneyj/signalcell/cmd/signalbench/templates"
	"github.com/dustin/go-humanize"
)

func reportData(generated time.Time, propagate []PropagateResult, fanout []FanoutResult) templates.ReportData {
	data := templates.ReportData{
		Title:     "signalbench",
		Generated: generated.UTC().Format(time.RFC3339),
	}
	for _, r := range propagate {
		data.Propagate = append(data.Propagate, templates.PropagateRow{
			Width:      r.Case.Width,
			Depth:      r.Case.Depth,
			Iterations: r.Case.Iterations,
			Avg:        r.Avg.String(),
			P99:        r.P99.String(),
			Max:        r.Max.String(),
			LeafRuns:   humanize.Comma(int64(r.LeafRuns)),
		})
	}
	for _, r := range fanout {
		data.Fanout = append(data.Fanout, templates.FanoutRow{
			Name:     r.Case.Name,
			Sources:  humanize.Comma(int64(r.Case.Sources)),
			Effects:  humanize.Comma(int64(r.Case.Effects)),
			Reads:    r.Case.Reads,
			Writes:   humanize.Comma(int64(r.Case.Iterations)),
			Duration: r.Duration.String(),
			Runs:     humanize.Comma(int64(r.Runs)),
			Rate:     humanize.SI(r.RunsPerSecond, "runs/s"),
		})
	}
	return data
}

func writeReport(w io.Writer, data templates.ReportData) error {
	if len(data.Propagate) == 0 && len(data.Fanout) == 0 {
		return fmt.Errorf("report: no results")
	}
	templates.WriteReport(w, data)
	return nil
}
