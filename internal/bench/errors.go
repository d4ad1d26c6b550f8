package bench

import (
	"errors"
	"fmt"
)

// Runner and selection errors.
var (
	ErrAlreadyStarted  = errors.New("runner already started")
	ErrSelectionSize   = errors.New("selection does not match catalog size")
	ErrUnknownWorkload = errors.New("unknown workload")
	ErrNotStarted      = errors.New("runner not started")
	ErrNoPool          = errors.New("no worker pool in environment")
)

// WorkloadError reports a workload that failed or panicked. It aborts the
// run and is returned from Runner.Wait.
type WorkloadError struct {
	ID  string
	Err error
}

func (e *WorkloadError) Error() string {
	return fmt.Sprintf("workload %s: %v", e.ID, e.Err)
}

func (e *WorkloadError) Unwrap() error {
	return e.Err
}
