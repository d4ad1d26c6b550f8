package report

import "github.com/utkarsh5026/sysbench/internal/bench"

// Multi fans every callback out to each reporter in order.
type Multi []bench.Reporter

// OnProgress forwards to every reporter.
func (m Multi) OnProgress(percent int) {
	for _, r := range m {
		r.OnProgress(percent)
	}
}

func (m Multi) OnResult(message string, score float64) {
	for _, r := range m {
		r.OnResult(message, score)
	}
}

func (m Multi) OnDone() {
	for _, r := range m {
		r.OnDone()
	}
}

// RecordResults gives every reporter its own copy of results.
func (m Multi) RecordResults(results bench.ResultLog) {
	for _, r := range m {
		r.RecordResults(results.Clone())
	}
}
