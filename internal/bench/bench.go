// Package bench is the benchmark orchestration engine. It holds the fixed
// workload catalog, the scorer that turns elapsed seconds into a normalized
// score, and the Runner that executes a selected subset of the catalog in
// order while reporting progress and results to a Reporter.
//
// Quick start:
//
//	runner := bench.NewRunner()
//	err := runner.Run(ctx, bench.SelectAll(len(bench.Catalog())), reporter)
//
// Workloads run strictly one after another on a dedicated goroutine. The
// multi-core workload is the only one that fans out, through the worker
// pool the Runner owns for the duration of a run.
package bench

import (
	"context"

	"github.com/utkarsh5026/sysbench/pool"
)

// Func is the body of a workload. It returns the workload's own measured
// value: elapsed seconds for timed workloads, a percentage for cpu_usage.
type Func func(ctx context.Context, env *Env) (float64, error)

// Descriptor is one immutable catalog entry.
type Descriptor struct {
	ID    string
	Label string
	Run   Func
}

// Task is a unit of parallel work submitted to the run's worker pool.
type Task func(ctx context.Context) (int64, error)

// Env carries the run-scoped collaborators a workload may use.
type Env struct {
	// Pool is started for the whole run and shut down when it ends.
	Pool *pool.Scheduler[Task, int64]

	// Cores is the number of parallel units the multi-core workload submits.
	Cores int

	// TempDir holds the short-lived files of the disk workloads.
	TempDir string
}

func runTask(ctx context.Context, t Task) (int64, error) {
	return t(ctx)
}
