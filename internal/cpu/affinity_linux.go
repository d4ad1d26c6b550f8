//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
//
// cpuID is reduced modulo runtime.NumCPU() when out of range.
func pinToCore(cpuID int) (int, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}
	return cpuID, nil
}

// SetupWorkerAffinity locks the goroutine to an OS thread and pins it to
// core workerID (mod NumCPU). Pinning failures are ignored; the thread lock
// still applies. The returned cleanup restores the previous mask before the
// thread goes back to the runtime, and should be deferred.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	var prev unix.CPUSet
	saved := unix.SchedGetaffinity(0, &prev) == nil
	_, _ = pinToCore(workerID)

	return func() {
		if saved {
			_ = unix.SchedSetaffinity(0, &prev)
		}
		runtime.UnlockOSThread()
	}
}

// pinnedCore reports the single core the current thread is restricted to,
// or -1 when the affinity mask allows more than one.
func pinnedCore() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil || mask.Count() != 1 {
		return -1
	}
	for i := range runtime.NumCPU() {
		if mask.IsSet(i) {
			return i
		}
	}
	return -1
}
