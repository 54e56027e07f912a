// Command worker runs a single queue worker process: it claims jobs
// from the database at the configured path, executes their shell
// commands, and resolves them as completed, retried or dead.
//
// It is normally spawned and supervised by "queuectl worker start",
// but can be run standalone for testing:
//
//	worker -db jobs.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/store"
)

func main() {
	dbPath := flag.String("db", "queue.db", "path to the SQLite database file")
	id := flag.String("id", "", "worker id (default: randomly generated)")
	singleRun := flag.Bool("single-run", os.Getenv("SINGLE_RUN") == "1", "process at most one job then exit")
	cleanInterval := flag.Duration("clean-interval", 5*time.Minute, "how often to sweep terminal jobs past the retention window")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log, *dbPath, *id, *singleRun, *cleanInterval); err != nil {
		log.Error("worker exited with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, dbPath, id string, singleRun bool, cleanInterval time.Duration) error {
	db, err := store.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	claimer := store.NewClaimer(db)
	config := store.NewConfig(db)
	registry := store.NewRegistry(db)
	cleaner := store.NewCleaner(db)

	cfg := queue.WorkerConfig{
		Id:        id,
		SingleRun: singleRun,
	}
	w := queue.NewWorker(claimer, config, registry, nil, cfg, os.Getpid(), log)
	cw := queue.NewCleanWorker(cleaner, config, &queue.CleanConfig{Interval: cleanInterval}, log)

	log.Info("worker starting", "worker_id", w.Id(), "db", dbPath, "single_run", singleRun)
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	if err := cw.Start(ctx); err != nil {
		return fmt.Errorf("start clean worker: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-w.Done():
		log.Info("worker finished single run", "worker_id", w.Id())
	}

	log.Info("worker shutting down", "worker_id", w.Id())
	if err := queue.StopGroup(queue.DefaultShutdownWait, w, cw); err != nil {
		return fmt.Errorf("stop worker: %w", err)
	}
	return nil
}
