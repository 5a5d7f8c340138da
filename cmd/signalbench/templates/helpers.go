package templates

import (
	"strings"
)

type PropagateRow struct {
	Width      int
	Depth      int
	Iterations int
	Avg        string
	P99        string
	Max        string
	LeafRuns   string
}

type FanoutRow struct {
	Name     string
	Sources  string
	Effects  string
	Reads    int
	Writes   string
	Duration string
	Runs     string
	Rate     string
}

type ReportData struct {
	Title     string
	Generated string
	Propagate []PropagateRow
	Fanout    []FanoutRow
}

// tableRow renders one markdown table row. Pipes inside cells are escaped.
func tableRow(cells ...string) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(strings.ReplaceAll(c, "|", `\|`))
		sb.WriteString(" |")
	}
	return sb.String()
}

func tableDivider(count int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i := 0; i < count; i++ {
		sb.WriteString(" --- |")
	}
	return sb.String()
}
