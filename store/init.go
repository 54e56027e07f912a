package store

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

func createJobsTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*jobModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createDLQTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*dlqModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createConfigTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*configModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createWorkersTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*workerModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// createStateRunIndex backs the claim protocol's predicate: WHERE
// state IN (pending, failed) AND (run_at IS NULL OR run_at <= now).
func createStateRunIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_state_run_at").
		Column("state", "run_at").
		IfNotExists().
		Exec(ctx)
	return err
}

// createPriorityOrderIndex backs the claim protocol's ordering clause:
// ORDER BY priority DESC, created_at ASC.
func createPriorityOrderIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_priority_created").
		ColumnExpr("priority DESC, created_at ASC").
		IfNotExists().
		Exec(ctx)
	return err
}

func createLockIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_locked_by").
		Column("locked_by").
		IfNotExists().
		Exec(ctx)
	return err
}

func createDLQJobIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*dlqModel)(nil)).
		Index("idx_dlq_job_id").
		Column("job_id").
		IfNotExists().
		Exec(ctx)
	return err
}

func initDB(ctx context.Context, db *bun.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	steps := []func(context.Context, bun.IDB) error{
		createJobsTable,
		createDLQTable,
		createConfigTable,
		createWorkersTable,
		createStateRunIndex,
		createPriorityOrderIndex,
		createLockIndex,
		createDLQJobIndex,
	}
	for _, step := range steps {
		if err := step(ctx, tx); err != nil {
			return errors.Join(err, tx.Rollback())
		}
	}
	return tx.Commit()
}

// InitDB initializes the database schema required by the store
// package: the jobs, dlq, config and workers tables, plus the
// secondary indexes the claim protocol and retention sweeps depend on.
//
// It runs inside a single transaction; if any step fails the
// transaction is rolled back. InitDB is idempotent and safe to call on
// every process startup.
func InitDB(ctx context.Context, db *bun.DB) error {
	return initDB(ctx, db)
}

// MustInitDB behaves like InitDB but panics if initialization fails.
// It is intended for application bootstrap code, where failure to
// initialize schema is unrecoverable.
func MustInitDB(ctx context.Context, db *bun.DB) {
	if err := initDB(ctx, db); err != nil {
		panic(err)
	}
}
