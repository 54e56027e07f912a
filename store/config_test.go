package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohanNalamalapu/queuectl/store"
)

func TestConfigFallsBackToDefault(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfg := store.NewConfig(db)

	v, ok, err := cfg.Get(ctx, "max_retries")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	v, ok, err = cfg.Get(ctx, "no_such_key")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestConfigSetOverridesDefault(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfg := store.NewConfig(db)

	require.NoError(t, cfg.Set(ctx, "backoff_base", "4"))

	n, err := cfg.GetInt(ctx, "backoff_base")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, cfg.Set(ctx, "backoff_base", "5"))
	n, err = cfg.GetInt(ctx, "backoff_base")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestConfigGetIntUnparsableDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfg := store.NewConfig(db)

	require.NoError(t, cfg.Set(ctx, "retention_after_seconds", "not-a-number"))

	n, err := cfg.GetInt(ctx, "retention_after_seconds")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
