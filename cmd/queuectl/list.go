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

type jobView struct {
	Id         string  `json:"id"`
	Command    string  `json:"command"`
	State      string  `json:"state"`
	Attempts   int     `json:"attempts"`
	MaxRetries int     `json:"max_retries"`
	Priority   int     `json:"priority"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	RunAt      *string `json:"run_at,omitempty"`
	LastError  string  `json:"last_error,omitempty"`
	LockedBy   *string `json:"locked_by,omitempty"`
}

func toJobView(jb *job.Job) jobView {
	v := jobView{
		Id:         jb.Id,
		Command:    jb.Command,
		State:      jb.State.String(),
		Attempts:   jb.Attempts,
		MaxRetries: jb.MaxRetries,
		Priority:   jb.Priority,
		CreatedAt:  queue.FormatTime(jb.CreatedAt),
		UpdatedAt:  queue.FormatTime(jb.UpdatedAt),
		LastError:  jb.LastError,
		LockedBy:   jb.LockedBy,
	}
	if jb.RunAt != nil {
		s := queue.FormatTime(*jb.RunAt)
		v.RunAt = &s
	}
	return v
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "queue.db", "path to the SQLite database file")
	stateFlag := fs.String("state", "pending", "state to list (pending, processing, completed, failed, dead)")
	fs.Parse(args)

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	observer := store.NewObserver(db)

	// "dead" lists the DLQ (ordered dead_at DESC), not the jobs table's
	// Dead rows, matching the CLI's documented list_by_state contract.
	if *stateFlag == "dead" {
		entries, err := observer.DLQList(ctx)
		if err != nil {
			return fmt.Errorf("list dlq: %w", err)
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

	// An unrecognized state name is treated as an empty result rather
	// than an error, matching list_by_state's documented contract.
	state, err := job.ParseState(*stateFlag)
	if err != nil {
		return json.NewEncoder(os.Stdout).Encode([]jobView{})
	}

	jobs, err := observer.ListByState(ctx, state)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}

	views := make([]jobView, len(jobs))
	for i, jb := range jobs {
		views[i] = toJobView(jb)
	}
	return json.NewEncoder(os.Stdout).Encode(views)
}
