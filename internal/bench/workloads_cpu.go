package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/utkarsh5026/sysbench/internal/cpu"
)

const (
	sumLimit          = 1_000_000
	singleCoreRepeats = 50
	utilizationWindow = time.Second
	floatMatrixSize   = 500
	inverseMatrixSize = 2000
	emptyLoopCount    = 10_000
	randomCount       = 1_000_000
	latencySleep      = time.Second
	primeLimit        = 50_000
	sortCount         = 10_000
	sortMaxValue      = 100_000
)

// Package-level sinks keep the compiler from discarding benchmark bodies.
var (
	intSink   int64
	floatSink float64
	loopSink  int
)

func since(start time.Time) float64 {
	return time.Since(start).Seconds()
}

func sumRange(n int64) int64 {
	var total int64
	for i := range n {
		total += i
	}
	return total
}

func sumSquares(n int64) int64 {
	var total int64
	for i := range n {
		total += i * i
	}
	return total
}

func singleCore(_ context.Context, _ *Env) (float64, error) {
	start := time.Now()
	var total int64
	for range singleCoreRepeats {
		total += sumRange(sumLimit)
	}
	elapsed := since(start)
	intSink = total
	return elapsed, nil
}

// multiCore submits one sum-of-squares unit per core and waits for all of
// them. The pool's Process keeps results in submission order.
func multiCore(ctx context.Context, env *Env) (float64, error) {
	if env == nil || env.Pool == nil {
		return 0, ErrNoPool
	}

	cores := env.Cores
	if cores <= 0 {
		cores = cpu.LogicalCores()
	}

	tasks := make([]Task, cores)
	for i := range tasks {
		tasks[i] = func(context.Context) (int64, error) {
			return sumSquares(sumLimit), nil
		}
	}

	start := time.Now()
	values, err := env.Pool.Process(ctx, tasks)
	elapsed := since(start)
	if err != nil {
		return 0, fmt.Errorf("running per-core tasks: %w", err)
	}

	var total int64
	for _, v := range values {
		total += v
	}
	intSink = total
	return elapsed, nil
}

func cpuUsage(ctx context.Context, _ *Env) (float64, error) {
	return cpu.Utilization(ctx, utilizationWindow)
}

func randomDense(n int) *mat.Dense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rand.Float64()
	}
	return mat.NewDense(n, n, data)
}

func floatMatrix(_ context.Context, _ *Env) (float64, error) {
	a := randomDense(floatMatrixSize)
	b := randomDense(floatMatrixSize)

	start := time.Now()
	var c mat.Dense
	c.Mul(a, b)
	elapsed := since(start)

	floatSink = c.At(0, 0)
	return elapsed, nil
}

// matrixInverse tolerates an ill-conditioned result; only an exactly
// singular matrix is an error.
func matrixInverse(_ context.Context, _ *Env) (float64, error) {
	a := randomDense(inverseMatrixSize)

	start := time.Now()
	var inv mat.Dense
	err := inv.Inverse(a)
	elapsed := since(start)

	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
		err = nil
	}
	if err != nil {
		return 0, fmt.Errorf("inverting %dx%d matrix: %w", inverseMatrixSize, inverseMatrixSize, err)
	}

	floatSink = inv.At(0, 0)
	return elapsed, nil
}

func randomNumbers(_ context.Context, _ *Env) (float64, error) {
	start := time.Now()
	var nums []float64
	for range randomCount {
		nums = append(nums, rand.Float64())
	}
	elapsed := since(start)

	floatSink = nums[len(nums)-1]
	return elapsed, nil
}

func latency(_ context.Context, _ *Env) (float64, error) {
	start := time.Now()
	time.Sleep(latencySleep)
	return since(start), nil
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func primesBelow(limit int) []int {
	var primes []int
	for n := 2; n < limit; n++ {
		if isPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

func primeGeneration(_ context.Context, _ *Env) (float64, error) {
	start := time.Now()
	primes := primesBelow(primeLimit)
	elapsed := since(start)

	loopSink = len(primes)
	return elapsed, nil
}

func sorting(_ context.Context, _ *Env) (float64, error) {
	data := make([]int, sortCount)
	for i := range data {
		data[i] = rand.IntN(sortMaxValue + 1)
	}

	start := time.Now()
	slices.Sort(data)
	elapsed := since(start)

	loopSink = data[0]
	return elapsed, nil
}

// emptyLoop backs thread_switching, context_switch and task_switching. The
// three workloads share the same loop body.
func emptyLoop(_ context.Context, _ *Env) (float64, error) {
	start := time.Now()
	last := 0
	for i := range emptyLoopCount {
		last = i
	}
	elapsed := since(start)

	loopSink = last
	return elapsed, nil
}
