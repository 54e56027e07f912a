package queue_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/MohanNalamalapu/queuectl"
)

func TestStopGroupStopsBothWorkers(t *testing.T) {
	claimer := newMockClaimer()
	registry := &mockRegistry{}
	config := &mockConfig{values: map[string]string{"retention_after_seconds": "60"}}
	cleaner := &mockCleaner{}

	w := queue.NewWorker(claimer, config, registry, okExecutor, queue.WorkerConfig{PullInterval: 5 * time.Millisecond}, 1, slog.Default())
	cw := queue.NewCleanWorker(cleaner, config, &queue.CleanConfig{Interval: 5 * time.Millisecond}, slog.Default())

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := cw.Start(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	if err := queue.StopGroup(time.Second, w, cw); err != nil {
		t.Fatalf("StopGroup: %v", err)
	}

	// Both should now report double-stop on a second call.
	if err := w.Stop(time.Second); err == nil {
		t.Fatal("expected worker already stopped")
	}
	if err := cw.Stop(time.Second); err == nil {
		t.Fatal("expected clean worker already stopped")
	}
}
