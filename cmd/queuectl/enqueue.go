package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/store"
)

func runEnqueue(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enqueue", flag.ExitOnError)
	dbPath := fs.String("db", "queue.db", "path to the SQLite database file")
	command := fs.String("command", "", "shell command to run (required)")
	priority := fs.Int("priority", 0, "claim priority, higher runs first")
	maxRetries := fs.Int("max-retries", -1, "retry budget before the job is killed (default: queue default)")
	runAt := fs.String("run-at", "", "RFC3339 timestamp before which the job may not be claimed")
	id := fs.String("id", "", "explicit job id (default: generated)")
	fs.Parse(args)

	if *command == "" {
		return fmt.Errorf("-command is required")
	}

	spec := queue.JobSpec{
		Id:       *id,
		Command:  *command,
		Priority: *priority,
	}
	if *maxRetries >= 0 {
		spec.MaxRetries = maxRetries
	}
	if *runAt != "" {
		t, err := time.Parse(time.RFC3339, *runAt)
		if err != nil {
			return fmt.Errorf("invalid -run-at: %w", err)
		}
		spec.RunAt = &t
	}

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	enqueuer := store.NewEnqueuer(db, 3)
	newId, err := enqueuer.Enqueue(ctx, spec)
	if err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	fmt.Println(newId)
	return nil
}
