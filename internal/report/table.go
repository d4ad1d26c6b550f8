package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/sysbench/internal/bench"
)

// RenderTable prints the results of a run as a table followed by the
// combined score.
func RenderTable(w io.Writer, log bench.ResultLog) error {
	printSectionHeader(w, "BENCHMARK RESULTS",
		"Score = 1000 / (seconds + 0.0001), higher is better")

	if len(log) == 0 {
		colorPrintLn(w, Yellow, "No workloads were run.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Workload", "Time", "Seconds", "Score")

	var total float64
	for i, r := range log {
		total += r.Score
		_ = table.Append(
			fmt.Sprintf("%d", i+1),
			r.Label,
			formatMeasure(r),
			fmt.Sprintf("%.4f", r.Duration),
			FormatScore(r.Score),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering results table: %w", err)
	}

	_, _ = fmt.Fprintln(w)
	colorPrintf(w, Green, "✅ %d workloads, total score %s\n", len(log), FormatScore(total))
	return nil
}

// RenderCatalog prints the workload catalog with the ids accepted by
// selection flags.
func RenderCatalog(w io.Writer, catalog []bench.Descriptor) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "Workload")

	for i, d := range catalog {
		_ = table.Append(fmt.Sprintf("%d", i+1), d.ID, d.Label)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering catalog table: %w", err)
	}
	return nil
}

// formatMeasure renders the measured value in its own unit.
func formatMeasure(r bench.TestResult) string {
	if r.WorkloadID == bench.CPUUsageID {
		return fmt.Sprintf("%.2f%%", r.Duration)
	}
	return FormatSeconds(r.Duration)
}
