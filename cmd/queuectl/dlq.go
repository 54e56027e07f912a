package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
	"github.com/MohanNalamalapu/queuectl/store"
)

type dlqView struct {
	Id      string         `json:"id"`
	JobId   string         `json:"job_id"`
	Payload job.DLQPayload `json:"payload"`
	DeadAt  string         `json:"dead_at"`
}

func runDLQ(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("dlq: expected a subcommand (list, retry)")
	}
	switch args[0] {
	case "list":
		return runDLQList(ctx, args[1:])
	case "retry":
		return runDLQRetry(ctx, args[1:])
	default:
		return fmt.Errorf("dlq: unknown subcommand %q", args[0])
	}
}

func runDLQList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dlq list", flag.ExitOnError)
	dbPath := fs.String("db", "queue.db", "path to the SQLite database file")
	fs.Parse(args)

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	observer := store.NewObserver(db)
	entries, err := observer.DLQList(ctx)
	if err != nil {
		return fmt.Errorf("dlq list: %w", err)
	}

	views := make([]dlqView, len(entries))
	for i, e := range entries {
		views[i] = dlqView{
			Id:      e.Id,
			JobId:   e.JobId,
			Payload: e.Payload,
			DeadAt:  queue.FormatTime(e.DeadAt),
		}
	}
	return json.NewEncoder(os.Stdout).Encode(views)
}

func runDLQRetry(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dlq retry", flag.ExitOnError)
	dbPath := fs.String("db", "queue.db", "path to the SQLite database file")
	id := fs.String("id", "", "DLQ entry id (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	retrier := store.NewDLQRetrier(db)
	newId, err := retrier.DLQRetry(ctx, *id)
	if err != nil {
		return fmt.Errorf("dlq retry: %w", err)
	}
	fmt.Println(newId)
	return nil
}
