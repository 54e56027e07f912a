package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
	"github.com/MohanNalamalapu/queuectl/store"
)

func TestCleanerDeletesTerminalJobs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	enqueuer := store.NewEnqueuer(db, 3)
	claimer := store.NewClaimer(db)
	cleaner := store.NewCleaner(db)

	id, err := enqueuer.Enqueue(ctx, queue.JobSpec{Command: "true"})
	if err != nil {
		t.Fatal(err)
	}

	jb, err := claimer.Claim(ctx, "worker_1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if jb == nil || jb.Id != id {
		t.Fatal("expected to claim the enqueued job")
	}
	if err := claimer.Complete(ctx, id, "worker_1"); err != nil {
		t.Fatal(err)
	}

	count, err := cleaner.Clean(ctx, job.Completed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 deleted job, got %d", count)
	}
}

func TestCleanerRejectsNonTerminalState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cleaner := store.NewCleaner(db)

	if _, err := cleaner.Clean(ctx, job.Pending, nil); err != queue.ErrBadStatus {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
	if _, err := cleaner.Clean(ctx, job.Processing, nil); err != queue.ErrBadStatus {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}
