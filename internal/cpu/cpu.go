// Package cpu exposes the host CPU facts the benchmarks depend on: the
// logical core count, a system-wide utilization sample, and per-thread core
// pinning for pool workers.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	psutil "github.com/shirou/gopsutil/v4/cpu"
)

// ErrNoSample is returned when the platform reports no utilization figure.
var ErrNoSample = errors.New("cpu: no utilization sample")

var (
	coresOnce sync.Once
	cores     int
)

// LogicalCores returns the number of logical processors, hyperthreads
// included. The value is probed once and cached; runtime.NumCPU is used when
// the OS query fails.
func LogicalCores() int {
	coresOnce.Do(func() {
		n, err := psutil.Counts(true)
		if err != nil || n <= 0 {
			n = runtime.NumCPU()
		}
		cores = n
	})
	return cores
}

// Utilization samples system-wide CPU utilization over window and returns it
// as a percentage in [0, 100]. The call blocks for the whole window.
func Utilization(ctx context.Context, window time.Duration) (float64, error) {
	percents, err := psutil.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, fmt.Errorf("sampling cpu utilization: %w", err)
	}
	if len(percents) == 0 {
		return 0, ErrNoSample
	}
	return min(max(percents[0], 0), 100), nil
}
