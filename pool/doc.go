// Package pool provides a small, generic, long-lived worker pool used to fan
// CPU-bound work out across every logical core.
//
// The primary type is Scheduler[T, R], a bounded pool of workers which
// process tasks of type T and produce results of type R. A Scheduler is
// started once, accepts any number of submissions, and is shut down exactly
// once. Shutdown drains every queued and in-flight task before returning.
//
// # Basic Usage
//
//	sched := NewScheduler[int, int](WithWorkerCount(4))
//	if err := sched.Start(ctx, func(ctx context.Context, n int) (int, error) {
//	    return n * n, nil
//	}); err != nil {
//	    return err
//	}
//	defer sched.Shutdown(0)
//
//	future, err := sched.Submit(7)
//	if err != nil {
//	    return err
//	}
//	square, err := future.Get()
//
// # Batches
//
// Process submits a slice of tasks and waits for all of them, returning the
// results in submission order:
//
//	results, err := sched.Process(ctx, []int{1, 2, 3})
//
// # Configuration Options
//
//   - WithWorkerCount(n): Set number of concurrent workers (default: logical CPU count)
//   - WithTaskBuffer(n): Set task channel buffer size (default: worker count)
//   - WithRateLimit(tasksPerSecond, burst): Throttle task starts with a token bucket
//   - WithCPUAffinity(): Pin every worker to its own core where the OS allows it
//
// # Error Handling
//
// A task error is delivered through that task's Future and never stops the
// pool. Panics inside a task are recovered and converted to errors carrying
// the stack trace, so a single bad task cannot crash a worker.
package pool
