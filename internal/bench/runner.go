package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/utkarsh5026/sysbench/internal/cpu"
	"github.com/utkarsh5026/sysbench/pool"
)

// Runner executes one benchmark run. A Runner is single use: Start succeeds
// at most once.
//
// Lifecycle:
//
//	Idle -> Running -> Completed | Cancelled | Failed
//
// Cancellation is cooperative. It is checked before each workload and
// interrupts the pause between workloads, but a workload that has started
// always finishes and is recorded.
type Runner struct {
	catalog  []Descriptor
	delay    time.Duration
	logger   *slog.Logger
	tempDir  string
	poolOpts []pool.WorkerPoolOption

	runID      string
	started    atomic.Bool
	cancelled  atomic.Bool
	inCallback atomic.Bool
	stopOnce   sync.Once
	stopCh     chan struct{}
	done       chan struct{}

	mu    sync.RWMutex
	state RunState
	log   ResultLog
	err   error
}

// NewRunner creates an idle Runner over the default catalog.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		catalog: Catalog(),
		delay:   DefaultDelay,
		logger:  slog.Default(),
		runID:   uuid.NewString(),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start validates sel, starts the run's worker pool and launches the run
// goroutine. It returns without waiting for any workload.
//
// Cancelling ctx has the effect of Cancel. Workloads themselves run under a
// context that is never cancelled.
//
// Returns ErrAlreadyStarted on a second call and ErrSelectionSize when sel
// does not match the catalog.
func (r *Runner) Start(ctx context.Context, sel Selection, rep Reporter) error {
	if r.started.Load() {
		return ErrAlreadyStarted
	}
	if len(sel) != len(r.catalog) {
		return fmt.Errorf("%w: %d entries for %d workloads", ErrSelectionSize, len(sel), len(r.catalog))
	}
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if rep == nil {
		rep = ReporterFuncs{}
	}
	rep = guardedReporter{next: rep, active: &r.inCallback}

	subset := make([]Descriptor, 0, sel.Count())
	for i, on := range sel {
		if on {
			subset = append(subset, r.catalog[i])
		}
	}

	runCtx := context.WithoutCancel(ctx)
	sched := pool.NewScheduler[Task, int64](r.poolOpts...)
	if err := sched.Start(runCtx, runTask); err != nil {
		err = fmt.Errorf("starting worker pool: %w", err)
		r.mu.Lock()
		r.state.State = StateFailed
		r.err = err
		r.mu.Unlock()
		close(r.done)
		return err
	}

	r.mu.Lock()
	r.state = RunState{
		State:     StateRunning,
		Cancelled: r.cancelled.Load(),
		Total:     len(subset),
	}
	r.log = make(ResultLog, 0, len(subset))
	r.mu.Unlock()

	env := &Env{
		Pool:    sched,
		Cores:   cpu.LogicalCores(),
		TempDir: r.tempDir,
	}
	stopWatch := context.AfterFunc(ctx, r.Cancel)
	// AfterFunc on a done context fires asynchronously; the first
	// cancellation check must already see it.
	if ctx.Err() != nil {
		r.Cancel()
	}

	r.logger.Info("benchmark run started",
		"run_id", r.runID,
		"workloads", len(subset),
		"pool_workers", sched.Workers())

	go r.loop(runCtx, subset, env, sched, rep, stopWatch)
	return nil
}

// Wait blocks until the run reaches a terminal state. It returns the
// workload error of a failed run and nil otherwise.
func (r *Runner) Wait() error {
	if !r.started.Load() {
		return ErrNotStarted
	}
	<-r.done

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Run is Start followed by Wait.
func (r *Runner) Run(ctx context.Context, sel Selection, rep Reporter) error {
	if err := r.Start(ctx, sel, rep); err != nil {
		return err
	}
	return r.Wait()
}

// Cancel requests cancellation without waiting. It is safe to call from
// Reporter callbacks, more than once, and before Start. A Runner cancelled
// before Start finishes its run with no results.
func (r *Runner) Cancel() {
	r.stopOnce.Do(func() {
		r.cancelled.Store(true)

		r.mu.Lock()
		if !r.state.State.Terminal() {
			r.state.Cancelled = true
		}
		r.mu.Unlock()

		close(r.stopCh)
	})
}

// Stop cancels the run and blocks until the in-progress workload has been
// recorded and the worker pool has drained. It returns at once when the run
// was never started, and behaves like Cancel when called from a Reporter
// callback, which runs on the goroutine Stop would wait for.
func (r *Runner) Stop() {
	r.Cancel()
	if !r.started.Load() || r.inCallback.Load() {
		return
	}
	<-r.done
}

// State returns a snapshot of the run.
func (r *Runner) State() RunState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Results returns a copy of the results recorded so far.
func (r *Runner) Results() ResultLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.log.Clone()
}

// RunID identifies this run in logs and exported results.
func (r *Runner) RunID() string {
	return r.runID
}

func (r *Runner) loop(ctx context.Context, subset []Descriptor, env *Env, sched *pool.Scheduler[Task, int64], rep Reporter, stopWatch func() bool) {
	defer close(r.done)
	defer stopWatch()

	final, err := r.execute(ctx, subset, env, rep)

	if serr := sched.Shutdown(0); serr != nil {
		r.logger.Warn("worker pool shutdown failed", "run_id", r.runID, "error", serr)
	}

	r.mu.Lock()
	r.state.State = final
	r.err = err
	log := r.log.Clone()
	r.mu.Unlock()

	rep.RecordResults(log)
	rep.OnDone()

	if err != nil {
		r.logger.Error("benchmark run failed", "run_id", r.runID, "completed", len(log), "error", err)
		return
	}
	r.logger.Info("benchmark run finished", "run_id", r.runID, "state", final, "completed", len(log))
}

func (r *Runner) execute(ctx context.Context, subset []Descriptor, env *Env, rep Reporter) (State, error) {
	total := len(subset)
	for i, d := range subset {
		if r.cancelled.Load() {
			return StateCancelled, nil
		}

		result, err := r.step(ctx, d, env)
		if err != nil {
			return StateFailed, err
		}

		completed := i + 1
		r.mu.Lock()
		r.log = append(r.log, result)
		r.state.Completed = completed
		r.mu.Unlock()

		rep.OnResult(fmt.Sprintf("%s: %.4f seconds", d.Label, result.Duration), result.Score)
		rep.OnProgress(progress(completed, total))

		if completed < total {
			r.pause()
		}
	}
	return StateCompleted, nil
}

// step runs one workload. A panic becomes a WorkloadError carrying the stack.
func (r *Runner) step(ctx context.Context, d Descriptor, env *Env) (result TestResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = &WorkloadError{
				ID:  d.ID,
				Err: fmt.Errorf("workload panic: %v\nstack trace:\n%s", p, buf[:n]),
			}
		}
	}()

	start := time.Now()
	value, err := d.Run(ctx, env)
	wall := time.Since(start)
	if err != nil {
		return TestResult{}, &WorkloadError{ID: d.ID, Err: err}
	}

	if math.IsNaN(value) || value < 0 {
		value = 0
	}
	score := Score(value)

	r.logger.Debug("workload finished",
		"run_id", r.runID,
		"id", d.ID,
		"duration", value,
		"score", score,
		"wall", wall)

	return TestResult{
		WorkloadID: d.ID,
		Label:      d.Label,
		Duration:   value,
		Score:      score,
		Timestamp:  time.Now(),
	}, nil
}

func (r *Runner) pause() {
	if r.delay <= 0 {
		return
	}
	t := time.NewTimer(r.delay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-r.stopCh:
	}
}

// guardedReporter marks the span of every callback so Stop can tell it is
// running on the run goroutine.
type guardedReporter struct {
	next   Reporter
	active *atomic.Bool
}

func (g guardedReporter) enter() func() {
	g.active.Store(true)
	return func() { g.active.Store(false) }
}

func (g guardedReporter) OnProgress(percent int) {
	defer g.enter()()
	g.next.OnProgress(percent)
}

func (g guardedReporter) OnResult(message string, score float64) {
	defer g.enter()()
	g.next.OnResult(message, score)
}

func (g guardedReporter) OnDone() {
	defer g.enter()()
	g.next.OnDone()
}

func (g guardedReporter) RecordResults(results ResultLog) {
	defer g.enter()()
	g.next.RecordResults(results)
}

func progress(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
