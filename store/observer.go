package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
)

// Observer implements queue.Observer using a SQL backend.
//
// Observer provides read-only access to job state stored in the
// database. It does not participate in visibility timeout handling or
// state transitions and must not modify job records.
type Observer struct {
	db *bun.DB
}

// NewObserver creates a new SQL-backed Observer.
func NewObserver(db *bun.DB) *Observer {
	return &Observer{db: db}
}

// Get retrieves a job by its identifier. If no job with the given id
// exists, Get returns (nil, nil).
func (o *Observer) Get(ctx context.Context, id string) (*job.Job, error) {
	var jm jobModel
	err := o.db.NewSelect().
		Model(&jm).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return jm.toJob(), nil
}

// ListByState returns jobs in the given state ordered by created_at
// ascending.
func (o *Observer) ListByState(ctx context.Context, state job.State) ([]*job.Job, error) {
	var rows []*jobModel
	err := o.db.NewSelect().
		Model(&rows).
		Where("state = ?", state).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	jobs := make([]*job.Job, len(rows))
	for i, jm := range rows {
		jobs[i] = jm.toJob()
	}
	return jobs, nil
}

// Status returns counts of jobs by state, the number of workers with a
// heartbeat within queue.ActiveWorkerWindow, and the oldest pending
// job's created_at, if any.
func (o *Observer) Status(ctx context.Context) (*queue.Status, error) {
	st := &queue.Status{}
	counts := []struct {
		state job.State
		dest  *int64
	}{
		{job.Pending, &st.Pending},
		{job.Processing, &st.Processing},
		{job.Completed, &st.Completed},
		{job.Failed, &st.Failed},
		{job.Dead, &st.Dead},
	}
	for _, c := range counts {
		count, err := o.db.NewSelect().
			Model((*jobModel)(nil)).
			Where("state = ?", c.state).
			Count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dest = int64(count)
	}

	since := time.Now().Add(-queue.ActiveWorkerWindow)
	active, err := o.db.NewSelect().
		Model((*workerModel)(nil)).
		Where("heartbeat_at >= ?", since).
		Count(ctx)
	if err != nil {
		return nil, err
	}
	st.ActiveWorkers = int64(active)

	var oldest jobModel
	err = o.db.NewSelect().
		Model(&oldest).
		Where("state = ?", job.Pending).
		Order("created_at ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	} else {
		createdAt := oldest.CreatedAt
		st.OldestPending = &createdAt
	}

	return st, nil
}

// DLQList returns DLQ entries ordered by dead_at descending.
func (o *Observer) DLQList(ctx context.Context) ([]*job.DLQEntry, error) {
	var rows []*dlqModel
	err := o.db.NewSelect().
		Model(&rows).
		Order("dead_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]*job.DLQEntry, len(rows))
	for i, dm := range rows {
		entries[i] = dm.toEntry()
	}
	return entries, nil
}
