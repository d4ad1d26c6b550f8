package pool

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func square(_ context.Context, n int) (int, error) {
	return n * n, nil
}

func TestScheduler_Start(t *testing.T) {
	t.Run("successful start", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(4))

		if err := sched.Start(context.Background(), square); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer sched.Shutdown(time.Second)

		if sched.state == nil {
			t.Fatal("pool state should not be nil after start")
		}
		if !sched.state.started.Load() {
			t.Error("pool should be marked as started")
		}
		if sched.Workers() != 4 {
			t.Errorf("expected 4 workers, got %d", sched.Workers())
		}
	})

	t.Run("double start fails", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(2))

		if err := sched.Start(context.Background(), square); err != nil {
			t.Fatalf("first start failed: %v", err)
		}
		defer sched.Shutdown(time.Second)

		err := sched.Start(context.Background(), square)
		if !errors.Is(err, ErrPoolAlreadyStarted) {
			t.Errorf("expected ErrPoolAlreadyStarted, got %v", err)
		}
	})

	t.Run("default worker count is positive", func(t *testing.T) {
		sched := NewScheduler[int, int]()
		if sched.Workers() <= 0 {
			t.Errorf("expected a positive default worker count, got %d", sched.Workers())
		}
	})
}

func TestScheduler_Submit(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		sched := NewScheduler[int, int]()
		if _, err := sched.Submit(1); !errors.Is(err, ErrPoolNotStarted) {
			t.Errorf("expected ErrPoolNotStarted, got %v", err)
		}
	})

	t.Run("after shutdown", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(1))
		if err := sched.Start(context.Background(), square); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		if err := sched.Shutdown(time.Second); err != nil {
			t.Fatalf("shutdown failed: %v", err)
		}
		if _, err := sched.Submit(1); !errors.Is(err, ErrPoolShutdown) {
			t.Errorf("expected ErrPoolShutdown, got %v", err)
		}
	})

	t.Run("futures resolve with results", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(3))
		if err := sched.Start(context.Background(), square); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer sched.Shutdown(time.Second)

		futures := make([]*Future[int], 0, 10)
		for i := range 10 {
			f, err := sched.Submit(i)
			if err != nil {
				t.Fatalf("submit %d failed: %v", i, err)
			}
			futures = append(futures, f)
		}

		for i, f := range futures {
			got, err := f.Get()
			if err != nil {
				t.Fatalf("task %d: unexpected error %v", i, err)
			}
			if got != i*i {
				t.Errorf("task %d: expected %d, got %d", i, i*i, got)
			}
			if f.ID() != int64(i+1) {
				t.Errorf("task %d: expected id %d, got %d", i, i+1, f.ID())
			}
		}
	})

	t.Run("task error is delivered through the future", func(t *testing.T) {
		expectedErr := errors.New("processing error")
		sched := NewScheduler[int, int](WithWorkerCount(2))
		err := sched.Start(context.Background(), func(_ context.Context, n int) (int, error) {
			if n == 3 {
				return 0, expectedErr
			}
			return n, nil
		})
		if err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer sched.Shutdown(time.Second)

		bad, _ := sched.Submit(3)
		good, _ := sched.Submit(4)

		if _, err := bad.Get(); !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
		if v, err := good.Get(); err != nil || v != 4 {
			t.Errorf("pool should keep working after a task error, got %d, %v", v, err)
		}
	})

	t.Run("panic is recovered", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(1))
		err := sched.Start(context.Background(), func(_ context.Context, n int) (int, error) {
			if n == 0 {
				panic("boom")
			}
			return n, nil
		})
		if err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer sched.Shutdown(time.Second)

		f, _ := sched.Submit(0)
		_, err = f.Get()
		if err == nil {
			t.Fatal("expected panic to surface as an error")
		}
		if !strings.Contains(err.Error(), "worker panic: boom") {
			t.Errorf("unexpected panic error: %v", err)
		}

		next, _ := sched.Submit(5)
		if v, err := next.Get(); err != nil || v != 5 {
			t.Errorf("worker should survive a panic, got %d, %v", v, err)
		}
	})
}

func TestScheduler_Process(t *testing.T) {
	t.Run("results in task order", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(4))
		if err := sched.Start(context.Background(), func(_ context.Context, n int) (int, error) {
			time.Sleep(time.Duration(10-n) * time.Millisecond)
			return n * 2, nil
		}); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer sched.Shutdown(time.Second)

		tasks := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		results, err := sched.Process(context.Background(), tasks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(tasks) {
			t.Fatalf("expected %d results, got %d", len(tasks), len(results))
		}
		for i, task := range tasks {
			if results[i] != task*2 {
				t.Errorf("task %d: expected %d, got %d", i, task*2, results[i])
			}
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(1))
		if err := sched.Start(context.Background(), square); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer sched.Shutdown(time.Second)

		results, err := sched.Process(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected 0 results, got %d", len(results))
		}
	})

	t.Run("first error wins after all tasks settle", func(t *testing.T) {
		expectedErr := errors.New("bad task")
		var finished atomic.Int32
		sched := NewScheduler[int, int](WithWorkerCount(2))
		if err := sched.Start(context.Background(), func(_ context.Context, n int) (int, error) {
			defer finished.Add(1)
			if n == 2 {
				return 0, expectedErr
			}
			time.Sleep(5 * time.Millisecond)
			return n, nil
		}); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer sched.Shutdown(time.Second)

		_, err := sched.Process(context.Background(), []int{1, 2, 3, 4})
		if !errors.Is(err, expectedErr) {
			t.Fatalf("expected %v, got %v", expectedErr, err)
		}
		if finished.Load() != 4 {
			t.Errorf("expected every task to finish, got %d", finished.Load())
		}
	})
}

func TestScheduler_Shutdown(t *testing.T) {
	t.Run("drains in-flight tasks", func(t *testing.T) {
		var completed atomic.Int32
		sched := NewScheduler[int, int](WithWorkerCount(2), WithTaskBuffer(8))
		if err := sched.Start(context.Background(), func(_ context.Context, n int) (int, error) {
			time.Sleep(20 * time.Millisecond)
			completed.Add(1)
			return n, nil
		}); err != nil {
			t.Fatalf("failed to start: %v", err)
		}

		futures := make([]*Future[int], 0, 6)
		for i := range 6 {
			f, err := sched.Submit(i)
			if err != nil {
				t.Fatalf("submit failed: %v", err)
			}
			futures = append(futures, f)
		}

		if err := sched.Shutdown(0); err != nil {
			t.Fatalf("shutdown failed: %v", err)
		}
		if completed.Load() != 6 {
			t.Errorf("expected 6 tasks completed before shutdown returned, got %d", completed.Load())
		}
		for i, f := range futures {
			if !f.IsReady() {
				t.Errorf("future %d not resolved after shutdown", i)
			}
		}
	})

	t.Run("without start fails", func(t *testing.T) {
		sched := NewScheduler[int, int]()
		if err := sched.Shutdown(time.Second); !errors.Is(err, ErrPoolNotStarted) {
			t.Errorf("expected ErrPoolNotStarted, got %v", err)
		}
	})

	t.Run("double shutdown fails", func(t *testing.T) {
		sched := NewScheduler[int, int](WithWorkerCount(1))
		if err := sched.Start(context.Background(), square); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		if err := sched.Shutdown(time.Second); err != nil {
			t.Fatalf("first shutdown failed: %v", err)
		}
		if err := sched.Shutdown(time.Second); !errors.Is(err, ErrPoolShutdown) {
			t.Errorf("expected ErrPoolShutdown, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		sched := NewScheduler[int, int](WithWorkerCount(1))
		if err := sched.Start(context.Background(), func(_ context.Context, n int) (int, error) {
			<-release
			return n, nil
		}); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer close(release)

		if _, err := sched.Submit(1); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if err := sched.Shutdown(20 * time.Millisecond); !errors.Is(err, ErrShutdownTimeout) {
			t.Errorf("expected ErrShutdownTimeout, got %v", err)
		}
	})

	t.Run("cancelled context fails queued tasks", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		block := make(chan struct{})
		sched := NewScheduler[int, int](WithWorkerCount(1), WithTaskBuffer(4))
		if err := sched.Start(ctx, func(_ context.Context, n int) (int, error) {
			<-block
			return n, nil
		}); err != nil {
			t.Fatalf("failed to start: %v", err)
		}

		first, _ := sched.Submit(1)
		time.Sleep(10 * time.Millisecond) // let the worker pick up the first task
		queued, _ := sched.Submit(2)

		cancel()
		close(block)

		if v, err := first.Get(); err != nil || v != 1 {
			t.Errorf("in-flight task should finish, got %d, %v", v, err)
		}
		if _, err := queued.Get(); !errors.Is(err, context.Canceled) {
			t.Errorf("expected queued task to fail with context.Canceled, got %v", err)
		}
		if _, err := sched.Submit(3); !errors.Is(err, context.Canceled) {
			t.Errorf("expected submit after cancel to fail, got %v", err)
		}
		_ = sched.Shutdown(time.Second)
	})
}

func TestScheduler_RateLimit(t *testing.T) {
	sched := NewScheduler[int, int](WithWorkerCount(4), WithRateLimit(50, 1))
	if err := sched.Start(context.Background(), square); err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	defer sched.Shutdown(time.Second)

	start := time.Now()
	if _, err := sched.Process(context.Background(), []int{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 6 tasks at 50/s with burst 1 need at least 5 refill intervals of 20ms.
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("expected rate limiting to slow the batch, took %v", elapsed)
	}
}

func TestScheduler_CPUAffinity(t *testing.T) {
	sched := NewScheduler[int, int](WithWorkerCount(2), WithCPUAffinity())
	if err := sched.Start(context.Background(), square); err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	results, err := sched.Process(context.Background(), []int{2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0] != 4 || results[1] != 9 {
		t.Errorf("unexpected results %v", results)
	}
	if err := sched.Shutdown(time.Second); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}
