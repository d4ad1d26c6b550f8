package bench

import (
	"log/slog"
	"slices"
	"time"

	"github.com/utkarsh5026/sysbench/pool"
)

// DefaultDelay is the pause between two workloads.
const DefaultDelay = 500 * time.Millisecond

// Option configures a Runner.
type Option func(*Runner)

// WithCatalog replaces the workload catalog. Selections passed to Start must
// match its length.
func WithCatalog(c []Descriptor) Option {
	return func(r *Runner) {
		r.catalog = slices.Clone(c)
	}
}

// WithDelay sets the pause between workloads. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.delay = max(d, 0)
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTempDir sets the directory for the disk workloads' temporary files.
// Empty means os.TempDir().
func WithTempDir(dir string) Option {
	return func(r *Runner) {
		r.tempDir = dir
	}
}

// WithPoolOptions forwards options to the run's worker pool.
func WithPoolOptions(opts ...pool.WorkerPoolOption) Option {
	return func(r *Runner) {
		r.poolOpts = append(r.poolOpts, opts...)
	}
}
