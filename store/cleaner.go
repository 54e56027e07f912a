package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
)

// Cleaner implements queue.Cleaner using a SQL backend.
//
// Cleaner permanently removes terminal jobs and aged-out DLQ entries
// from storage. It does not participate in claim/resolve processing
// and never touches Pending, Processing or Failed rows.
type Cleaner struct {
	db *bun.DB
}

// NewCleaner creates a new SQL-backed Cleaner.
func NewCleaner(db *bun.DB) *Cleaner {
	return &Cleaner{db: db}
}

// Clean deletes jobs matching state and, if before is non-nil, whose
// updated_at is less than or equal to *before. Only job.Completed and
// job.Dead are accepted; any other state returns ErrBadStatus.
func (c *Cleaner) Clean(ctx context.Context, state job.State, before *time.Time) (int64, error) {
	if state != job.Completed && state != job.Dead {
		return 0, queue.ErrBadStatus
	}
	query := c.db.NewDelete().
		Model((*jobModel)(nil)).
		Where("state = ?", state)
	if before != nil {
		query.Where("updated_at <= ?", before)
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}

// CleanDLQ deletes DLQ entries whose dead_at is less than or equal to
// *before. A nil before applies no time filter.
func (c *Cleaner) CleanDLQ(ctx context.Context, before *time.Time) (int64, error) {
	query := c.db.NewDelete().Model((*dlqModel)(nil))
	if before != nil {
		query.Where("dead_at <= ?", before)
	} else {
		query.Where("1 = 1")
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
