package pool

import (
	"context"
	"errors"
)

// Errors returned by Scheduler lifecycle methods.
var (
	ErrPoolNotStarted     = errors.New("pool not started")
	ErrPoolAlreadyStarted = errors.New("pool already started")
	ErrPoolShutdown       = errors.New("pool shut down")
	ErrShutdownTimeout    = errors.New("error in shutting down: timeout reached")
)

// ProcessFunc is a function type that defines how individual tasks are processed in the worker pool.
// It takes a context for cancellation/timeout control and a task of type T, returning a result of type R.
// A returned error is delivered through the task's Future; it does not stop the pool.
//
// Type parameters:
//   - T: The type of input task to be processed
//   - R: The type of result produced after processing
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// Result represents the outcome of processing a single task in the worker pool.
//
// Fields:
//   - Value: The result produced by processing the task (only valid if Error is nil)
//   - Error: Any error that occurred during task processing (nil if successful)
//   - ID: The submission sequence number of the task, starting at 1
type Result[R any] struct {
	Value R
	Error error
	ID    int64
}

// submittedTask pairs a task with the future its result is delivered to.
type submittedTask[T, R any] struct {
	task   T
	id     int64
	future *Future[R]
}
