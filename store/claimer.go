package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
)

// Claimer implements queue.Claimer using a SQL backend.
//
// Claim performs the atomic state transition at the heart of the
// queue: a single UPDATE ... WHERE id = (SELECT ... LIMIT 1)
// RETURNING statement moves exactly one eligible job to Processing
// and hands it to the caller in the same round trip, so two workers
// racing the same poll never observe the same row as claimable.
//
// ExtendLock, Complete, Return and Kill all gate their UPDATE on both
// the job id and the calling worker's id in the locked_by column, so
// a worker whose lease already expired and was reclaimed by another
// worker cannot silently clobber the new owner's progress.
type Claimer struct {
	db *bun.DB
}

// NewClaimer creates a new SQL-backed Claimer.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization must be completed before using Claimer.
func NewClaimer(db *bun.DB) *Claimer {
	return &Claimer{db: db}
}

// Claim selects the single highest-priority eligible job and
// transitions it to Processing atomically.
//
// A job is eligible if:
//
//   - state = Pending, or state = Failed and due for retry, and
//     run_at is NULL or <= now, and lock_until is NULL or <= now
//   - OR state = Processing and lock_until < now (a lease expired
//     without the owning worker completing or extending it)
//
// Eligible jobs are ordered by priority DESC, created_at ASC so
// higher-priority and older jobs are claimed first.
//
// Claim increments attempts, sets locked_by to workerId and
// lock_until to now+lock, and refreshes updated_at. If no job is
// eligible, Claim returns (nil, nil).
func (c *Claimer) Claim(ctx context.Context, workerId string, lock time.Duration) (*job.Job, error) {
	now := time.Now()
	lockUntil := now.Add(lock)

	sub := c.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		WhereGroup("", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				Where("state IN (?, ?) AND (run_at IS NULL OR run_at <= ?) AND (lock_until IS NULL OR lock_until <= ?)", job.Pending, job.Failed, now, now).
				WhereOr("state = ? AND lock_until < ?", job.Processing, now)
		}).
		OrderExpr("priority DESC, created_at ASC").
		Limit(1)

	var rows []*jobModel
	err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Processing).
		Set("attempts = attempts + 1").
		Set("locked_by = ?", workerId).
		Set("lock_until = ?", lockUntil).
		Set("updated_at = ?", now).
		Where("id = (?)", sub).
		Returning("*").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toJob(), nil
}

// ExtendLock refreshes a Processing job's lease. The job must still be
// owned by workerId; otherwise ErrLockLost is returned.
func (c *Claimer) ExtendLock(ctx context.Context, jobId, workerId string, lock time.Duration) error {
	now := time.Now()
	newLock := now.Add(lock)
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("lock_until = ?", newLock).
		Set("updated_at = ?", now).
		Where("id = ?", jobId).
		Where("state = ?", job.Processing).
		Where("locked_by = ?", workerId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queue.ErrLockLost
	}
	return nil
}

// Complete transitions a Processing job owned by workerId to
// Completed, clearing its lock. If the job is no longer owned by
// workerId, ErrJobLost is returned.
func (c *Claimer) Complete(ctx context.Context, jobId, workerId string) error {
	now := time.Now()
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Completed).
		Set("locked_by = NULL").
		Set("lock_until = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", jobId).
		Where("state = ?", job.Processing).
		Where("locked_by = ?", workerId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queue.ErrJobLost
	}
	return nil
}

// Return transitions a Processing job owned by workerId back to
// Failed, scheduling it to become claimable again after backoff and
// recording lastError. lock_until is set to the same instant as run_at
// so the expired-lease branch of Claim's eligibility predicate never
// races the scheduled-retry branch.
//
// If the job is no longer owned by workerId, ErrJobLost is returned.
func (c *Claimer) Return(ctx context.Context, jobId, workerId string, backoff time.Duration, lastError string) error {
	now := time.Now()
	nextRun := now.Add(backoff)
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Failed).
		Set("run_at = ?", nextRun).
		Set("locked_by = NULL").
		Set("lock_until = ?", nextRun).
		Set("last_error = ?", job.TruncateError(lastError)).
		Set("updated_at = ?", now).
		Where("id = ?", jobId).
		Where("state = ?", job.Processing).
		Where("locked_by = ?", workerId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queue.ErrJobLost
	}
	return nil
}

// Kill transitions a Processing job owned by workerId to Dead and
// inserts a corresponding DLQ entry in the same transaction, so a job
// never disappears from both the jobs table and the DLQ at once.
//
// If the job is no longer owned by workerId, ErrJobLost is returned.
func (c *Claimer) Kill(ctx context.Context, jobId, workerId, lastError string) error {
	return c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		var rows []*jobModel
		err := tx.NewUpdate().
			Model((*jobModel)(nil)).
			Set("state = ?", job.Dead).
			Set("locked_by = NULL").
			Set("lock_until = NULL").
			Set("last_error = ?", job.TruncateError(lastError)).
			Set("updated_at = ?", now).
			Where("id = ?", jobId).
			Where("state = ?", job.Processing).
			Where("locked_by = ?", workerId).
			Returning("*").
			Scan(ctx, &rows)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return queue.ErrJobLost
		}
		jm := rows[0]

		entry := &dlqModel{
			Id:    dlqId(jm.Id),
			JobId: jm.Id,
			Payload: job.DLQPayload{
				Id:         jm.Id,
				Command:    jm.Command,
				MaxRetries: jm.MaxRetries,
				Priority:   jm.Priority,
			},
			DeadAt: now,
		}
		_, err = tx.NewInsert().Model(entry).Exec(ctx)
		return err
	})
}
