package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/job"
	"github.com/MohanNalamalapu/queuectl/store"
)

func TestDLQRetryReEnqueuesFreshJob(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 2)
	claimer := store.NewClaimer(db)
	observer := store.NewObserver(db)
	retrier := store.NewDLQRetrier(db)

	priority := 7
	id, err := enqueuer.Enqueue(ctx, queue.JobSpec{Command: "false", Priority: priority})
	require.NoError(t, err)

	_, err = claimer.Claim(ctx, "worker_1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, claimer.Kill(ctx, id, "worker_1", "exit=1: boom"))

	entries, err := observer.DLQList(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	newId, err := retrier.DLQRetry(ctx, entries[0].Id)
	require.NoError(t, err)
	assert.Equal(t, id, newId)

	jb, err := observer.Get(ctx, newId)
	require.NoError(t, err)
	require.NotNil(t, jb)
	assert.Equal(t, job.Pending, jb.State)
	assert.Equal(t, 0, jb.Attempts)
	assert.Equal(t, priority, jb.Priority)

	entries, err = observer.DLQList(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDLQRetryUnknownIdFails(t *testing.T) {
	db := newTestDB(t)
	retrier := store.NewDLQRetrier(db)

	_, err := retrier.DLQRetry(context.Background(), "dlq_missing")
	assert.ErrorIs(t, err, queue.ErrNotFound)
}
