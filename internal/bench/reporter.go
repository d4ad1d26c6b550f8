package bench

// Reporter receives a run's progress. Every method is called from the run
// goroutine, so implementations synchronise any state they share with other
// goroutines. Runner.Stop called from inside a callback only cancels; it
// cannot wait for a run whose goroutine it is blocking.
type Reporter interface {
	// OnProgress receives the completed percentage, rounded to an integer.
	OnProgress(percent int)

	// OnResult receives "<label>: <seconds> seconds" and the workload score.
	OnResult(message string, score float64)

	// OnDone fires exactly once, after RecordResults.
	OnDone()

	// RecordResults receives a copy of the final log exactly once, whether
	// the run completed, was cancelled or failed.
	RecordResults(results ResultLog)
}

// ReporterFuncs adapts plain functions to Reporter. Nil fields are no-ops.
type ReporterFuncs struct {
	Progress func(percent int)
	Result   func(message string, score float64)
	Done     func()
	Record   func(results ResultLog)
}

func (f ReporterFuncs) OnProgress(percent int) {
	if f.Progress != nil {
		f.Progress(percent)
	}
}

func (f ReporterFuncs) OnResult(message string, score float64) {
	if f.Result != nil {
		f.Result(message, score)
	}
}

func (f ReporterFuncs) OnDone() {
	if f.Done != nil {
		f.Done()
	}
}

func (f ReporterFuncs) RecordResults(results ResultLog) {
	if f.Record != nil {
		f.Record(results)
	}
}
