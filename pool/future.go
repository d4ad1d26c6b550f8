package pool

import (
	"context"
	"sync"
)

// Future is the pending result of a task submitted to a Scheduler.
// It resolves exactly once; every getter observes the same Result.
type Future[R any] struct {
	done   chan struct{}
	once   sync.Once
	result Result[R]
}

func newFuture[R any](id int64) *Future[R] {
	return &Future[R]{
		done:   make(chan struct{}),
		result: Result[R]{ID: id},
	}
}

// resolve stores the outcome and wakes every waiter. Later calls are ignored.
func (f *Future[R]) resolve(value R, err error) {
	f.once.Do(func() {
		f.result.Value = value
		f.result.Error = err
		close(f.done)
	})
}

// Get blocks until the task has finished and returns its value and error.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.result.Value, f.result.Error
}

// GetWithContext is like Get but gives up when ctx is done.
// The task itself keeps running; only the wait is abandoned.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Error
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// TryGet returns the result without blocking. ready is false while the task
// is still queued or running.
func (f *Future[R]) TryGet() (value R, err error, ready bool) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Error, true
	default:
		var zero R
		return zero, nil, false
	}
}

// Done returns a channel that is closed once the result is available.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the result is available.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// ID returns the submission sequence number of the task.
func (f *Future[R]) ID() int64 {
	return f.result.ID
}
