package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
)

// Enqueuer implements queue.Enqueuer using a SQL backend.
//
// Enqueue inserts a new job row in the Pending state. It does not
// perform deduplication: calling Enqueue twice with equal Command
// values produces two independent jobs.
type Enqueuer struct {
	db         *bun.DB
	maxRetries int
}

// NewEnqueuer creates a new SQL-backed Enqueuer. defaultMaxRetries is
// used for any JobSpec that leaves MaxRetries nil.
func NewEnqueuer(db *bun.DB, defaultMaxRetries int) *Enqueuer {
	return &Enqueuer{db: db, maxRetries: defaultMaxRetries}
}

// Enqueue inserts spec as a new Pending job and returns its id.
//
// If spec.Id is empty, a "job_<8-char>" id is generated. If
// spec.MaxRetries is nil, the Enqueuer's configured default is used.
func (e *Enqueuer) Enqueue(ctx context.Context, spec queue.JobSpec) (string, error) {
	if strings.TrimSpace(spec.Command) == "" {
		return "", errors.New("command must not be empty")
	}
	id := spec.Id
	if id == "" {
		id = "job_" + uuid.New().String()[:8]
	}
	maxRetries := e.maxRetries
	if spec.MaxRetries != nil {
		maxRetries = *spec.MaxRetries
	}
	model := &jobModel{
		Id:         id,
		Command:    spec.Command,
		State:      job.Pending,
		MaxRetries: maxRetries,
		Priority:   spec.Priority,
		RunAt:      spec.RunAt,
		Metadata:   spec.Metadata,
	}
	_, err := e.db.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		return "", err
	}
	return id, nil
}
