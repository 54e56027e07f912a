package queue

import (
	"context"
	"time"
)

// JobSpec describes a job submission. Command is required; all other
// fields have defaults applied by the Enqueuer implementation:
//
//	Id:         generated as "job_<8-char-random>" if empty
//	MaxRetries: the Enqueuer's configured default (3 in the CLI)
//	Priority:   0
//	RunAt:      nil (immediately runnable)
type JobSpec struct {
	Id         string
	Command    string
	MaxRetries *int
	Priority   int
	RunAt      *time.Time
	Metadata   map[string]any
}

// Enqueuer defines the write-side entry point of the queue.
type Enqueuer interface {

	// Enqueue persists a new job in the Pending state and returns its
	// id. Enqueue returns an error if spec.Command is empty.
	//
	// If spec.Id collides with an existing job id, Enqueue returns an
	// error rather than silently overwriting the existing row — ids are
	// the primary key.
	Enqueue(ctx context.Context, spec JobSpec) (string, error)
}
