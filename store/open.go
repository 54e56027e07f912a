package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite-backed *bun.DB at path, configured with WAL mode
// and a busy_timeout so concurrent worker processes don't immediately
// fail on lock contention, and runs InitDB against it.
//
// path may be a filesystem path or ":memory:" for an in-process
// database; it is prefixed with "file:" to form the DSN. SetMaxOpenConns(1) matches modernc.org/sqlite's
// single-writer expectations.
func Open(ctx context.Context, path string) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}
