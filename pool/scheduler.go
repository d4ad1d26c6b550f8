package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Scheduler represents a long-running, reusable worker pool that can be started and then
// accept asynchronous task submissions. It maintains worker goroutines, schedules work, and tracks state
// for lifecycle management and safe concurrent usage.
//
// Type parameters:
//   - T: The input task type processed by workers
//   - R: The output/result type produced by processing tasks
type Scheduler[T, R any] struct {
	config *workerPoolConfig
	mu     sync.RWMutex
	state  *poolState[T, R]
}

// poolState holds the runtime state for a started Scheduler.
type poolState[T any, R any] struct {
	ctx           context.Context
	cancel        context.CancelFunc
	started       atomic.Bool
	shutdown      atomic.Bool
	taskIDCounter atomic.Int64
	tasks         chan *submittedTask[T, R]
	done          chan struct{} // Closed when all workers have finished
}

// NewScheduler creates a new Scheduler instance with the specified configuration options.
// This does NOT start any workers immediately; use Start to begin processing tasks.
//
// Example:
//
//	sched := NewScheduler[int, string](WithWorkerCount(8), WithTaskBuffer(32))
//	_ = sched.Start(ctx, processFunc)
//	future, _ := sched.Submit(5)
func NewScheduler[T, R any](opts ...WorkerPoolOption) *Scheduler[T, R] {
	return &Scheduler[T, R]{
		config: newConfig(opts...),
	}
}

// Workers returns the number of workers the pool runs once started.
func (s *Scheduler[T, R]) Workers() int {
	return s.config.workerCount
}

// Start launches the workers. ctx bounds the pool's lifetime: once it is
// cancelled, workers stop picking up tasks and queued tasks resolve with the
// context error.
//
// Returns ErrPoolAlreadyStarted if the pool was started before.
func (s *Scheduler[T, R]) Start(ctx context.Context, processFn ProcessFunc[T, R]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != nil && s.state.started.Load() {
		return ErrPoolAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	state := &poolState[T, R]{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan *submittedTask[T, R], s.config.taskBuffer),
		done:   make(chan struct{}),
	}

	s.state = state
	state.started.Store(true)

	var g errgroup.Group
	for i := range s.config.workerCount {
		g.Go(func() error {
			return s.worker(ctx, i, state.tasks, processFn)
		})
	}

	go func() {
		_ = g.Wait()
		failPending(state.tasks, ctx.Err())
		cancel()
		close(state.done)
	}()

	return nil
}

// Submit submits a single task to the pool for asynchronous processing.
// It blocks while the task buffer is full.
//
// Returns:
//   - future: resolves with the task's result
//   - error: ErrPoolNotStarted, ErrPoolShutdown, or the pool context's error
//
// Example:
//
//	future, err := sched.Submit(42)
//	if err != nil {
//	    return err
//	}
//	result, err := future.Get()
func (s *Scheduler[T, R]) Submit(task T) (*Future[R], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	if state == nil || !state.started.Load() {
		return nil, ErrPoolNotStarted
	}
	if state.shutdown.Load() {
		return nil, ErrPoolShutdown
	}
	if err := state.ctx.Err(); err != nil {
		return nil, err
	}

	st := &submittedTask[T, R]{
		task: task,
		id:   state.taskIDCounter.Add(1),
	}
	st.future = newFuture[R](st.id)

	select {
	case state.tasks <- st:
		return st.future, nil
	case <-state.ctx.Done():
		return nil, state.ctx.Err()
	}
}

// Process submits every task and waits for all of them. Results are returned
// in the order of tasks. The first task error (in task order) is returned
// after every task has resolved, so no work is left running in the pool.
func (s *Scheduler[T, R]) Process(ctx context.Context, tasks []T) ([]R, error) {
	futures := make([]*Future[R], 0, len(tasks))
	for i, task := range tasks {
		future, err := s.Submit(task)
		if err != nil {
			awaitAll(futures)
			return nil, fmt.Errorf("submitting task %d: %w", i, err)
		}
		futures = append(futures, future)
	}

	results := make([]R, len(futures))
	var firstErr error
	for i, future := range futures {
		value, err := future.GetWithContext(ctx)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("task %d: %w", i, err)
		}
		results[i] = value
	}

	return results, firstErr
}

// Shutdown gracefully shuts down the worker pool started with Start.
// It stops accepting submissions and waits for all queued and in-flight
// tasks to complete before returning, ensuring no work is lost.
//
// Parameters:
//   - timeout: Maximum duration to wait for graceful shutdown (0 = wait forever)
//
// Returns:
//   - error: Non-nil if pool not started, already shut down, or timeout exceeded
//
// Example:
//
//	if err := sched.Shutdown(5 * time.Second); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
func (s *Scheduler[T, R]) Shutdown(timeout time.Duration) error {
	s.mu.Lock()
	state := s.state
	if state == nil || !state.started.Load() {
		s.mu.Unlock()
		return ErrPoolNotStarted
	}

	if !state.shutdown.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return ErrPoolShutdown
	}

	// No Submit can be mid-send here: they hold the read lock.
	close(state.tasks)
	s.mu.Unlock()

	return waitUntil(state.done, timeout)
}

// failPending resolves every task still buffered after the workers exited.
// Only reachable when the pool context was cancelled before Shutdown.
func failPending[T, R any](tasks <-chan *submittedTask[T, R], err error) {
	if err == nil {
		err = ErrPoolShutdown
	}
	for {
		select {
		case st, ok := <-tasks:
			if !ok {
				return
			}
			var zero R
			st.future.resolve(zero, err)
		default:
			return
		}
	}
}

// awaitAll blocks until every future has resolved.
func awaitAll[R any](futures []*Future[R]) {
	for _, f := range futures {
		<-f.Done()
	}
}
