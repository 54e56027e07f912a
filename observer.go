package queue

import (
	"context"
	"time"

	"github.com/MohanNalamalapu/queuectl/job"
)

// Status is the snapshot returned by Observer.Status.
type Status struct {
	Pending       int64
	Processing    int64
	Completed     int64
	Failed        int64
	Dead          int64
	ActiveWorkers int64
	OldestPending *time.Time
}

// Observer provides read-only access to jobs, the DLQ and queue-wide
// status.
//
// Observer does not modify job state and does not participate in
// visibility timeout or lifecycle transitions. It is intended for
// diagnostic, monitoring and administrative use (the CLI's list/status
// commands and the HTTP status dashboard).
type Observer interface {

	// Get returns the job identified by id, or (nil, nil) if it does
	// not exist.
	Get(ctx context.Context, id string) (*job.Job, error)

	// ListByState returns jobs in the given state ordered by
	// created_at ascending. An unrecognized state is treated as an
	// empty result, never an error.
	ListByState(ctx context.Context, state job.State) ([]*job.Job, error)

	// Status returns counts by state plus active_workers and
	// oldest_pending.
	Status(ctx context.Context) (*Status, error)

	// DLQList returns DLQ entries ordered by dead_at descending.
	DLQList(ctx context.Context) ([]*job.DLQEntry, error)
}
