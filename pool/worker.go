package pool

import (
	"context"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/sysbench/internal/cpu"
)

// worker is the core worker loop that processes tasks from the task channel
// until the channel is closed by Shutdown or the pool context is cancelled.
func (s *Scheduler[T, R]) worker(
	ctx context.Context,
	workerID int,
	tasks <-chan *submittedTask[T, R],
	processFn ProcessFunc[T, R],
) error {
	if s.config.pinWorkers {
		release := cpu.SetupWorkerAffinity(workerID)
		defer release()
	}

	for {
		select {
		case st, ok := <-tasks:
			if !ok {
				return nil
			}
			// select picks randomly when both cases are ready
			if err := ctx.Err(); err != nil {
				var zero R
				st.future.resolve(zero, err)
				return err
			}
			s.execute(ctx, st, processFn)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// execute runs one task and resolves its future.
func (s *Scheduler[T, R]) execute(ctx context.Context, st *submittedTask[T, R], processFn ProcessFunc[T, R]) {
	if s.config.rateLimiter != nil {
		if err := s.config.rateLimiter.Wait(ctx); err != nil {
			var zero R
			st.future.resolve(zero, err)
			return
		}
	}

	result, err := processWithRecovery(ctx, st.task, processFn)
	st.future.resolve(result, err)
}

// processWithRecovery executes a task with panic recovery.
// If a panic occurs, it's converted to an error to prevent crashing the worker.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
