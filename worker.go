package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MohanNalamalapu/queuectl/internal"
	"github.com/MohanNalamalapu/queuectl/job"
)

// Default tuning values for WorkerConfig, taken directly from §4.5-4.6
// of the queue specification.
const (
	DefaultPullInterval    = 200 * time.Millisecond
	DefaultLockTimeout     = 60 * time.Second
	DefaultRefreshInterval = 10 * time.Second
	DefaultCommandTimeout  = 30 * time.Second
	DefaultShutdownWait    = 30 * time.Second
	DefaultStoreBackoff    = 1 * time.Second
)

// WorkerConfig defines runtime behavior of a Worker.
//
// Zero-valued duration fields fall back to the Default* constants
// above when passed to NewWorker.
type WorkerConfig struct {
	Id              string
	PullInterval    time.Duration
	LockTimeout     time.Duration
	RefreshInterval time.Duration
	CommandTimeout  time.Duration
	SingleRun       bool
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.PullInterval <= 0 {
		c.PullInterval = DefaultPullInterval
	}
	if c.LockTimeout <= 0 {
		c.LockTimeout = DefaultLockTimeout
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = DefaultCommandTimeout
	}
	if c.Id == "" {
		c.Id = "worker_" + uuid.New().String()[:8]
	}
	return c
}

// Worker coordinates claiming, executing, retrying and completing jobs
// for a single process.
//
// Worker implements an at-least-once processing model:
//
//  1. Heartbeat, then attempt to Claim a job.
//  2. If claimed, start a lock refresher and execute the command under
//     a wall-clock timeout.
//  3. Stop the refresher and resolve the outcome: Complete, Return
//     (retry) or Kill (DLQ), per §4.7.
//  4. If idle, sleep PullInterval and try again.
//
// Worker is internally single-threaded: it processes at most one job
// at a time. Start may only be called once; Stop gracefully shuts
// down, never forcibly killing an in-flight command — it waits up to
// the provided timeout for the current command to finish.
type Worker struct {
	lcBase
	id       string
	pid      int
	claimer  Claimer
	config   ConfigStore
	registry WorkerRegistry
	executor Executor
	log      *slog.Logger
	cfg      WorkerConfig

	stop chan struct{}
	done internal.DoneChan
}

// NewWorker creates a new Worker. executor may be nil, in which case
// DefaultExecutor is used.
func NewWorker(claimer Claimer, config ConfigStore, registry WorkerRegistry, executor Executor, cfg WorkerConfig, pid int, log *slog.Logger) *Worker {
	if executor == nil {
		executor = DefaultExecutor
	}
	cfg = cfg.withDefaults()
	return &Worker{
		id:       cfg.Id,
		pid:      pid,
		claimer:  claimer,
		config:   config,
		registry: registry,
		executor: executor,
		log:      log,
		cfg:      cfg,
	}
}

// Id returns the worker's generated or configured identity
// ("worker_<8-char-random>" unless explicitly set).
func (w *Worker) Id() string {
	return w.id
}

// Done returns a channel that closes when the run loop has exited,
// whether because Stop was called, ctx was canceled, or (in
// single-run mode) one job was processed. Callers that need to detect
// single-run completion without initiating a Stop should select on
// Done rather than polling.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Start begins the heartbeat/claim/process loop in a background
// goroutine. Start returns ErrDoubleStarted if the worker has already
// been started.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	w.stop = make(chan struct{})
	w.done = make(internal.DoneChan)
	go w.run(ctx)
	return nil
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	for {
		if w.stopped() {
			return
		}
		w.heartbeat(ctx)
		if w.stopped() {
			return
		}
		jb, err := w.claimer.Claim(ctx, w.id, w.cfg.LockTimeout)
		if err != nil {
			w.log.Error("claim failed", "worker", w.id, "err", err)
			if !w.sleep(ctx, DefaultStoreBackoff) {
				return
			}
			continue
		}
		if jb == nil {
			if !w.sleep(ctx, w.cfg.PullInterval) {
				return
			}
			continue
		}
		w.process(ctx, jb)
		if w.cfg.SingleRun {
			return
		}
	}
}

func (w *Worker) stopped() bool {
	select {
	case <-w.stop:
		return true
	default:
		return false
	}
}

// sleep waits for d, returning false early (meaning "stop running") if
// the context is canceled or Stop was called.
func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	}
}

func (w *Worker) heartbeat(ctx context.Context) {
	if err := w.registry.Heartbeat(ctx, w.id, w.pid); err != nil {
		w.log.Warn("heartbeat failed", "worker", w.id, "err", err)
	}
}

func (w *Worker) backoffBase(ctx context.Context) float64 {
	base, err := w.config.GetInt(ctx, "backoff_base")
	if err != nil || base <= 0 {
		return 2
	}
	return float64(base)
}

func (w *Worker) process(ctx context.Context, jb *job.Job) {
	base := w.backoffBase(ctx)

	refreshStop := make(chan struct{})
	refreshDone := make(chan struct{})
	go w.refreshLoop(ctx, jb.Id, refreshStop, refreshDone)

	cmdCtx, cancel := context.WithTimeout(ctx, w.cfg.CommandTimeout)
	result := w.executor(cmdCtx, jb.Command)
	cancel()

	close(refreshStop)
	<-refreshDone

	w.resolve(ctx, jb, base, result)
}

func (w *Worker) refreshLoop(ctx context.Context, jobId string, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(w.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.claimer.ExtendLock(ctx, jobId, w.id, w.cfg.LockTimeout); err != nil {
				w.log.Warn("lock refresh failed", "job", jobId, "worker", w.id, "err", err)
			}
		}
	}
}

func (w *Worker) resolve(ctx context.Context, jb *job.Job, base float64, result ExecResult) {
	if result.Err == nil && result.ExitCode == 0 {
		if err := w.claimer.Complete(ctx, jb.Id, w.id); err != nil {
			w.log.Error("cannot complete job", "job", jb.Id, "err", err)
		}
		return
	}

	lastErr := formatOutcome(result, w.cfg.CommandTimeout)
	attemptsNow := jb.Attempts

	if attemptsNow < jb.MaxRetries {
		delay := Backoff(base, attemptsNow)
		if err := w.claimer.Return(ctx, jb.Id, w.id, delay, lastErr); err != nil {
			w.log.Error("cannot return job", "job", jb.Id, "err", err)
		}
		return
	}
	if err := w.claimer.Kill(ctx, jb.Id, w.id, lastErr); err != nil {
		w.log.Error("cannot kill job", "job", jb.Id, "err", err)
	}
}

func formatOutcome(result ExecResult, commandTimeout time.Duration) string {
	if result.Err != nil {
		if errors.Is(result.Err, context.DeadlineExceeded) {
			return job.TruncateError(fmt.Sprintf("exit=-1: command timed out after %s", commandTimeout))
		}
		return job.TruncateError(fmt.Sprintf("exit=-1: %s", result.Err))
	}
	stderr := strings.TrimSpace(result.Stderr)
	if stderr == "" {
		stderr = "(no stderr output)"
	}
	return job.TruncateError(fmt.Sprintf("exit=%d: %s", result.ExitCode, stderr))
}

func (w *Worker) doStop() internal.DoneChan {
	close(w.stop)
	return w.done
}

// Stop initiates graceful shutdown. It signals the loop to stop
// claiming new jobs and waits up to timeout for the in-flight command
// (if any) to finish and the loop goroutine to exit. A running
// command is never killed by Stop; if timeout elapses first,
// ErrStopTimeout is returned and the command keeps running under its
// (eventually expiring) lease.
//
// Stop returns ErrDoubleStopped if the worker is not running.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.tryStop(timeout, w.doStop)
}
