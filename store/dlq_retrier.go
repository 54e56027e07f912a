package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
)

// DLQRetrier implements queue.DLQRetrier using a SQL backend.
type DLQRetrier struct {
	db *bun.DB
}

// NewDLQRetrier creates a new SQL-backed DLQRetrier.
func NewDLQRetrier(db *bun.DB) *DLQRetrier {
	return &DLQRetrier{db: db}
}

// DLQRetry deletes the DLQ entry identified by dlqId, removes the Dead
// job row left behind by Kill under the same id, and inserts a fresh
// Pending job from its payload, with Attempts reset to 0, inside a
// single transaction.
func (r *DLQRetrier) DLQRetry(ctx context.Context, dlqId string) (string, error) {
	var newId string
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var dm dlqModel
		err := tx.NewSelect().
			Model(&dm).
			Where("id = ?", dlqId).
			Scan(ctx)
		if err != nil {
			return queue.ErrNotFound
		}

		if _, err := tx.NewDelete().
			Model((*dlqModel)(nil)).
			Where("id = ?", dlqId).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*jobModel)(nil)).
			Where("id = ?", dm.Payload.Id).
			Where("state = ?", job.Dead).
			Exec(ctx); err != nil {
			return err
		}

		model := &jobModel{
			Id:         dm.Payload.Id,
			Command:    dm.Payload.Command,
			State:      job.Pending,
			MaxRetries: dm.Payload.MaxRetries,
			Priority:   dm.Payload.Priority,
		}
		if _, err := tx.NewInsert().Model(model).Exec(ctx); err != nil {
			return err
		}
		newId = model.Id
		return nil
	})
	if err != nil {
		return "", err
	}
	return newId, nil
}
