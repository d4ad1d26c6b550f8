package report

import (
	"sync"

	"github.com/utkarsh5026/sysbench/internal/bench"
)

// Run is one run's entry in a History.
type Run struct {
	ID      string
	Results bench.ResultLog
}

// History accumulates the result logs of every run in the process, in the
// order they were recorded. It is safe for concurrent use.
type History struct {
	mu   sync.RWMutex
	runs []Run
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Record appends a copy of log under runID.
func (h *History) Record(runID string, log bench.ResultLog) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, Run{ID: runID, Results: log.Clone()})
}

// Runs returns every recorded run, oldest first.
func (h *History) Runs() []Run {
	h.mu.RLock()
	defer h.mu.RUnlock()

	runs := make([]Run, len(h.runs))
	for i, r := range h.runs {
		runs[i] = Run{ID: r.ID, Results: r.Results.Clone()}
	}
	return runs
}

// All returns every recorded result as one flat log, oldest run first.
func (h *History) All() bench.ResultLog {
	h.mu.RLock()
	defer h.mu.RUnlock()

	all := bench.ResultLog{}
	for _, r := range h.runs {
		all = append(all, r.Results...)
	}
	return all
}

// Sink returns a Reporter that records into h under runID when the run ends.
func (h *History) Sink(runID string) bench.Reporter {
	return bench.ReporterFuncs{
		Record: func(results bench.ResultLog) {
			h.Record(runID, results)
		},
	}
}
