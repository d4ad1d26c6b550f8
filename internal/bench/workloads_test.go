package bench

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/sysbench/pool"
)

func newTestEnv(t *testing.T, workers int) *Env {
	t.Helper()

	sched := pool.NewScheduler[Task, int64](pool.WithWorkerCount(workers))
	require.NoError(t, sched.Start(context.Background(), runTask))
	t.Cleanup(func() {
		_ = sched.Shutdown(time.Second)
	})

	return &Env{Pool: sched, Cores: workers, TempDir: t.TempDir()}
}

func TestWorkloads_Cheap(t *testing.T) {
	env := newTestEnv(t, 2)

	tests := []struct {
		name string
		run  Func
	}{
		{"single_core", singleCore},
		{"multi_core", multiCore},
		{"memory_read", memoryRead},
		{"empty_loop", emptyLoop},
		{"random_numbers", randomNumbers},
		{"prime_generation", primeGeneration},
		{"sorting", sorting},
		{"compression", compression},
		{"decompression", decompression},
		{"hashing", hashing},
		{"disk_write", diskWrite},
		{"file_read", fileRead},
		{"file_write", fileWrite},
		{"memory_allocation", memoryAllocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.run(context.Background(), env)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.Less(t, d, 60.0)
		})
	}
}

func TestWorkloads_Expensive(t *testing.T) {
	if testing.Short() {
		t.Skip("matrix, latency and utilization workloads take seconds")
	}

	t.Run("float_matrix", func(t *testing.T) {
		d, err := floatMatrix(context.Background(), nil)
		require.NoError(t, err)
		assert.Greater(t, d, 0.0)
	})

	t.Run("matrix_inverse", func(t *testing.T) {
		d, err := matrixInverse(context.Background(), nil)
		require.NoError(t, err)
		assert.Greater(t, d, 0.0)
	})

	t.Run("latency", func(t *testing.T) {
		d, err := latency(context.Background(), nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d, 1.0)
	})

	t.Run("cpu_usage", func(t *testing.T) {
		pct, err := cpuUsage(context.Background(), nil)
		if err != nil {
			t.Skipf("utilization not available: %v", err)
		}
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	})
}

func TestMultiCore_RequiresPool(t *testing.T) {
	_, err := multiCore(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoPool)

	_, err = multiCore(context.Background(), &Env{})
	assert.ErrorIs(t, err, ErrNoPool)
}

func TestMultiCore_SubmitsOneTaskPerCore(t *testing.T) {
	var submitted atomic.Int32
	sched := pool.NewScheduler[Task, int64](pool.WithWorkerCount(2))
	require.NoError(t, sched.Start(context.Background(), func(ctx context.Context, task Task) (int64, error) {
		submitted.Add(1)
		return task(ctx)
	}))
	t.Cleanup(func() {
		_ = sched.Shutdown(time.Second)
	})

	env := &Env{Pool: sched, Cores: 3}
	for call := 1; call <= 2; call++ {
		_, err := multiCore(context.Background(), env)
		require.NoError(t, err)
		assert.Equal(t, int32(3*call), submitted.Load())
	}
}

func TestFileWorkloads_RemoveTempFiles(t *testing.T) {
	env := &Env{TempDir: t.TempDir()}

	for _, run := range []Func{diskWrite, fileRead, fileWrite} {
		_, err := run(context.Background(), env)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(env.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileWorkloads_MissingDir(t *testing.T) {
	env := &Env{TempDir: t.TempDir() + "/does/not/exist"}

	_, err := diskWrite(context.Background(), env)
	assert.Error(t, err)
}

func TestPrimesBelow(t *testing.T) {
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, primesBelow(30))
	assert.Len(t, primesBelow(primeLimit), 5133)
	assert.Empty(t, primesBelow(2))
	assert.False(t, isPrime(1))
}

func TestSums(t *testing.T) {
	assert.Equal(t, int64(45), sumRange(10))
	assert.Equal(t, int64(499999500000), sumRange(sumLimit))
	assert.Equal(t, int64(285), sumSquares(10))
}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, twice: the quick brown fox")

	packed, err := compress(data)
	require.NoError(t, err)

	unpacked, err := decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, data, unpacked)

	_, err = decompress([]byte("not zlib"))
	assert.Error(t, err)
}
