package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/utkarsh5026/sysbench/internal/bench"
)

// Console prints per-workload lines and run progress for a human. On a
// terminal progress is drawn as a bar on the progress writer; otherwise it
// is printed as plain "Progress: N%" lines.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	progress io.Writer
	bar      *progressbar.ProgressBar
	total    int
}

// NewConsole writes results to out and progress to progress. A nil progress
// writer sends progress lines to out.
func NewConsole(out, progress io.Writer) *Console {
	if progress == nil {
		progress = out
	}

	c := &Console{out: out, progress: progress}
	if isTerminal(progress) {
		c.bar = makeProgressBar(progress)
	}
	return c
}

// Header prints the run banner.
func (c *Console) Header(runID string, workloads int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total = workloads
	colorPrintLn(c.out, Bold, "╔════════════════════════════════════════════════════════════╗")
	colorPrintf(c.out, Bold, "║       %-52s ║\n", "System Benchmark")
	colorPrintLn(c.out, Bold, "╚════════════════════════════════════════════════════════════╝")
	colorPrintf(c.out, Bold, "🚀 Running %d workloads\n", workloads)
	colorPrintf(c.out, Yellow, "   run %s\n", runID)
	_, _ = fmt.Fprintln(c.out)
}

// OnProgress moves the bar, or prints a progress line off a terminal.
func (c *Console) OnProgress(percent int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bar != nil {
		_ = c.bar.Set(percent)
		return
	}
	colorPrintf(c.progress, Blue, "Progress: %d%%\n", percent)
}

// OnResult prints "<message>, Score: <score>".
func (c *Console) OnResult(message string, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bar != nil {
		_ = c.bar.Clear()
	}
	colorPrintf(c.out, Green, "  ✓ %s, Score: %.2f\n", message, score)
}

// OnDone finishes the bar and prints the done banner.
func (c *Console) OnDone() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bar != nil {
		_ = c.bar.Finish()
	}
	_, _ = fmt.Fprintln(c.out)
	colorPrintLn(c.out, Green, "✅ Benchmark done")
}

// RecordResults reports a run that stopped before every workload ran.
func (c *Console) RecordResults(results bench.ResultLog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.total > 0 && len(results) < c.total {
		colorPrintf(c.out, Yellow, "⚠️  Stopped after %d/%d workloads\n", len(results), c.total)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func makeProgressBar(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Benchmarking"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
