package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/uptrace/bun"

	"github.com/MohanNalamalapu/queuectl"
)

// Config implements queue.ConfigStore using a SQL backend.
//
// Config reads fall back to queue.Default when a key has no stored
// row, so the queue behaves sensibly before any operator has run
// "config set".
type Config struct {
	db *bun.DB
}

// NewConfig creates a new SQL-backed Config.
func NewConfig(db *bun.DB) *Config {
	return &Config{db: db}
}

// Get returns the stored value for key, falling back to
// queue.Default, or ("", false) if neither exists.
func (c *Config) Get(ctx context.Context, key string) (string, bool, error) {
	var cm configModel
	err := c.db.NewSelect().
		Model(&cm).
		Where("key = ?", key).
		Scan(ctx)
	if err == nil {
		return cm.Value, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", false, err
	}
	if v, ok := queue.Default(key); ok {
		return v, true, nil
	}
	return "", false, nil
}

// GetInt parses Get's result as an integer, defaulting to 0 if the
// value is absent or unparsable.
func (c *Config) GetInt(ctx context.Context, key string) (int, error) {
	v, ok, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// Set upserts key to value.
func (c *Config) Set(ctx context.Context, key, value string) error {
	model := &configModel{Key: key, Value: value}
	_, err := c.db.NewInsert().
		Model(model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}
