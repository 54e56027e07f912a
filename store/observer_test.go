package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
	"github.com/MohanNalamalapu/queuectl/store"
)

func TestEnqueuerAndObserver(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	enqueuer := store.NewEnqueuer(db, 3)
	observer := store.NewObserver(db)

	id, err := enqueuer.Enqueue(ctx, queue.JobSpec{Command: "echo hi"})
	if err != nil {
		t.Fatal(err)
	}

	jb, err := observer.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if jb == nil {
		t.Fatal("job not found")
	}
	if jb.State != job.Pending {
		t.Fatalf("expected Pending, got %v", jb.State)
	}
}

func TestObserverGetMissing(t *testing.T) {
	db := newTestDB(t)
	observer := store.NewObserver(db)

	jb, err := observer.Get(context.Background(), "job_missing")
	if err != nil {
		t.Fatal(err)
	}
	if jb != nil {
		t.Fatal("expected nil job for unknown id")
	}
}

func TestObserverListByState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	observer := store.NewObserver(db)

	for i := 0; i < 3; i++ {
		if _, err := enqueuer.Enqueue(ctx, queue.JobSpec{Command: "true"}); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := observer.ListByState(ctx, job.Pending)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 pending jobs, got %d", len(jobs))
	}
}

func TestObserverStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	claimer := store.NewClaimer(db)
	registry := store.NewRegistry(db)
	observer := store.NewObserver(db)

	if _, err := enqueuer.Enqueue(ctx, queue.JobSpec{Command: "true"}); err != nil {
		t.Fatal(err)
	}
	id2, err := enqueuer.Enqueue(ctx, queue.JobSpec{Command: "true"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := claimer.Claim(ctx, "worker_1", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := registry.Heartbeat(ctx, "worker_1", 1234); err != nil {
		t.Fatal(err)
	}

	st, err := observer.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Processing != 1 {
		t.Fatalf("expected 1 processing job, got %d", st.Processing)
	}
	if st.Pending != 1 {
		t.Fatalf("expected 1 pending job, got %d", st.Pending)
	}
	if st.ActiveWorkers != 1 {
		t.Fatalf("expected 1 active worker, got %d", st.ActiveWorkers)
	}
	if st.OldestPending == nil {
		t.Fatal("expected an oldest pending timestamp")
	}
	_ = id2
}
