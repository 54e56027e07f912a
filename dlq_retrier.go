package queue

import "context"

// DLQRetrier re-enqueues jobs that were previously moved to the Dead
// Letter Queue.
type DLQRetrier interface {

	// DLQRetry deletes the DLQ entry identified by dlqId and, in the
	// same transaction, inserts a fresh Pending job preserving Id,
	// Command, MaxRetries and Priority from the DLQ payload, with
	// Attempts reset to 0. It returns the new job's id (equal to the
	// preserved Id).
	//
	// DLQRetry returns ErrNotFound if dlqId does not exist.
	DLQRetry(ctx context.Context, dlqId string) (string, error)
}
