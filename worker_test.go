package queue_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
)

type mockClaimer struct {
	mu          sync.Mutex
	pending     []*job.Job
	extended    atomic.Int64
	completed   []string
	returned    []string
	killed      []string
	lockLostFor map[string]bool
}

func newMockClaimer(jobs ...*job.Job) *mockClaimer {
	return &mockClaimer{pending: jobs, lockLostFor: map[string]bool{}}
}

func (m *mockClaimer) Claim(ctx context.Context, workerId string, lock time.Duration) (*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return nil, nil
	}
	jb := m.pending[0]
	m.pending = m.pending[1:]
	jb.Attempts++
	jb.State = job.Processing
	return jb, nil
}

func (m *mockClaimer) ExtendLock(ctx context.Context, jobId, workerId string, lock time.Duration) error {
	if m.lockLostFor[jobId] {
		return queue.ErrLockLost
	}
	m.extended.Add(1)
	return nil
}

func (m *mockClaimer) Complete(ctx context.Context, jobId, workerId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, jobId)
	return nil
}

func (m *mockClaimer) Return(ctx context.Context, jobId, workerId string, backoff time.Duration, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returned = append(m.returned, jobId)
	return nil
}

func (m *mockClaimer) Kill(ctx context.Context, jobId, workerId, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.killed = append(m.killed, jobId)
	return nil
}

type mockRegistry struct {
	beats atomic.Int64
}

func (r *mockRegistry) Heartbeat(ctx context.Context, workerId string, pid int) error {
	r.beats.Add(1)
	return nil
}

func okExecutor(ctx context.Context, command string) queue.ExecResult {
	return queue.ExecResult{ExitCode: 0}
}

func failExecutor(ctx context.Context, command string) queue.ExecResult {
	return queue.ExecResult{ExitCode: 1, Stderr: "boom"}
}

func TestWorkerCompletesSuccessfulJob(t *testing.T) {
	jb := &job.Job{Id: "t1", Command: "echo ok", MaxRetries: 3}
	claimer := newMockClaimer(jb)
	registry := &mockRegistry{}
	config := &mockConfig{values: map[string]string{}}

	cfg := queue.WorkerConfig{SingleRun: true, PullInterval: 5 * time.Millisecond}
	w := queue.NewWorker(claimer, config, registry, okExecutor, cfg, 123, slog.Default())

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not finish single run in time")
	}

	claimer.mu.Lock()
	defer claimer.mu.Unlock()
	if len(claimer.completed) != 1 || claimer.completed[0] != "t1" {
		t.Fatalf("expected t1 completed, got %v", claimer.completed)
	}
}

func TestWorkerRetriesFailedJobBelowBudget(t *testing.T) {
	jb := &job.Job{Id: "t2", Command: "false", MaxRetries: 3}
	claimer := newMockClaimer(jb)
	registry := &mockRegistry{}
	config := &mockConfig{values: map[string]string{}}

	cfg := queue.WorkerConfig{SingleRun: true, PullInterval: 5 * time.Millisecond}
	w := queue.NewWorker(claimer, config, registry, failExecutor, cfg, 123, slog.Default())

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	<-w.Done()

	claimer.mu.Lock()
	defer claimer.mu.Unlock()
	if len(claimer.returned) != 1 || claimer.returned[0] != "t2" {
		t.Fatalf("expected t2 returned for retry, got %v", claimer.returned)
	}
	if len(claimer.killed) != 0 {
		t.Fatalf("expected no kills, got %v", claimer.killed)
	}
}

func TestWorkerKillsJobAtRetryBudget(t *testing.T) {
	// Attempts is incremented by Claim before process() runs, so a job
	// with MaxRetries=1 hits attempts_now >= max_retries on its first
	// failure and moves straight to the DLQ.
	jb := &job.Job{Id: "t3", Command: "false", MaxRetries: 1}
	claimer := newMockClaimer(jb)
	registry := &mockRegistry{}
	config := &mockConfig{values: map[string]string{}}

	cfg := queue.WorkerConfig{SingleRun: true, PullInterval: 5 * time.Millisecond}
	w := queue.NewWorker(claimer, config, registry, failExecutor, cfg, 123, slog.Default())

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	<-w.Done()

	claimer.mu.Lock()
	defer claimer.mu.Unlock()
	if len(claimer.killed) != 1 || claimer.killed[0] != "t3" {
		t.Fatalf("expected t3 killed, got %v", claimer.killed)
	}
}

func TestWorkerIdleSleepsWhenNothingToClaim(t *testing.T) {
	claimer := newMockClaimer()
	registry := &mockRegistry{}
	config := &mockConfig{values: map[string]string{}}

	cfg := queue.WorkerConfig{PullInterval: 5 * time.Millisecond}
	w := queue.NewWorker(claimer, config, registry, okExecutor, cfg, 123, slog.Default())

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	if registry.beats.Load() == 0 {
		t.Fatal("expected at least one heartbeat while idle")
	}
}

func TestWorkerStopWaitsForInFlightJob(t *testing.T) {
	jb := &job.Job{Id: "t4", Command: "sleep", MaxRetries: 3}
	claimer := newMockClaimer(jb)
	registry := &mockRegistry{}
	config := &mockConfig{values: map[string]string{}}

	blockingExecutor := func(ctx context.Context, command string) queue.ExecResult {
		time.Sleep(50 * time.Millisecond)
		return queue.ExecResult{ExitCode: 0}
	}

	cfg := queue.WorkerConfig{PullInterval: 5 * time.Millisecond, CommandTimeout: time.Second}
	w := queue.NewWorker(claimer, config, registry, blockingExecutor, cfg, 123, slog.Default())

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond) // let the worker claim the job
	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	claimer.mu.Lock()
	defer claimer.mu.Unlock()
	if len(claimer.completed) != 1 {
		t.Fatalf("expected in-flight job to complete before Stop returned, got completed=%v", claimer.completed)
	}
}

func TestWorkerLifecycleErrors(t *testing.T) {
	claimer := newMockClaimer()
	registry := &mockRegistry{}
	config := &mockConfig{values: map[string]string{}}

	w := queue.NewWorker(claimer, config, registry, okExecutor, queue.WorkerConfig{}, 123, slog.Default())

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); err == nil {
		t.Fatal("expected ErrDoubleStarted")
	}
	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(time.Second); err == nil {
		t.Fatal("expected ErrDoubleStopped")
	}
}
