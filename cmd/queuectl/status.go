package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/store"
)

type statusView struct {
	Pending       int64   `json:"pending"`
	Processing    int64   `json:"processing"`
	Completed     int64   `json:"completed"`
	Failed        int64   `json:"failed"`
	Dead          int64   `json:"dead"`
	ActiveWorkers int64   `json:"active_workers"`
	OldestPending *string `json:"oldest_pending,omitempty"`
}

func runStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	dbPath := fs.String("db", "queue.db", "path to the SQLite database file")
	fs.Parse(args)

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	observer := store.NewObserver(db)
	st, err := observer.Status(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	view := statusView{
		Pending:       st.Pending,
		Processing:    st.Processing,
		Completed:     st.Completed,
		Failed:        st.Failed,
		Dead:          st.Dead,
		ActiveWorkers: st.ActiveWorkers,
	}
	if st.OldestPending != nil {
		s := queue.FormatTime(*st.OldestPending)
		view.OldestPending = &s
	}
	return json.NewEncoder(os.Stdout).Encode(view)
}
