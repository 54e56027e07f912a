package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Registry implements queue.WorkerRegistry using a SQL backend.
type Registry struct {
	db *bun.DB
}

// NewRegistry creates a new SQL-backed Registry.
func NewRegistry(db *bun.DB) *Registry {
	return &Registry{db: db}
}

// Heartbeat upserts the worker's liveness row, preserving StartedAt on
// repeat calls and refreshing HeartbeatAt to now.
func (r *Registry) Heartbeat(ctx context.Context, workerId string, pid int) error {
	now := time.Now()
	var existing workerModel
	err := r.db.NewSelect().
		Model(&existing).
		Where("id = ?", workerId).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		model := &workerModel{
			Id:          workerId,
			Pid:         pid,
			StartedAt:   now,
			HeartbeatAt: now,
		}
		_, err := r.db.NewInsert().Model(model).Exec(ctx)
		return err
	}
	_, err = r.db.NewUpdate().
		Model((*workerModel)(nil)).
		Set("pid = ?", pid).
		Set("heartbeat_at = ?", now).
		Where("id = ?", workerId).
		Exec(ctx)
	return err
}
