package queue

import (
	"context"
	"errors"
	"time"

	"github.com/MohanNalamalapu/queuectl/job"
)

var (
	// ErrJobLost indicates that the referenced job no longer exists in
	// storage or cannot be found in its expected state.
	//
	// This may occur if the job was concurrently removed or
	// transitioned by another actor.
	ErrJobLost = errors.New("job lost")

	// ErrLockLost indicates that the caller no longer owns the job
	// lock.
	//
	// This typically happens when the visibility timeout expires and
	// the job is claimed by another worker before the current worker
	// completes or extends the lease.
	ErrLockLost = errors.New("lock lost")

	// ErrNotFound indicates that an operation referenced an id that
	// does not exist (for example, dlq_retry on an unknown DLQ id).
	ErrNotFound = errors.New("not found")
)

// Claimer defines the read-write contract for consuming and managing
// jobs in the queue lifecycle.
//
// Claimer provides visibility timeout semantics similar to systems
// such as Amazon SQS:
//
//   - Claim transitions a job from Pending or Failed to Processing.
//   - While Processing, a job is temporarily invisible to other
//     claimers.
//   - LockUntil defines the visibility timeout (lease).
//   - If a worker crashes or fails to resolve the job before the
//     timeout, the job becomes eligible for claiming again.
//
// The queue provides at-least-once delivery semantics. Commands must
// be idempotent, as a job may be executed more than once.
type Claimer interface {

	// Claim atomically selects and locks the single highest-priority
	// eligible job (priority DESC, created_at ASC), transitioning it to
	// Processing, incrementing Attempts, and setting LockUntil to
	// now + lock. Claim returns (nil, nil) if no job is eligible.
	//
	// A job is eligible when State is Pending or Failed, RunAt is due,
	// and LockUntil (if set) has expired.
	Claim(ctx context.Context, workerId string, lock time.Duration) (*job.Job, error)

	// ExtendLock extends the visibility timeout of a job currently
	// owned by workerId in the Processing state. ExtendLock must not
	// succeed — and must return ErrLockLost — if the job is no longer
	// Processing under workerId, including when the lease was already
	// stolen by another worker.
	ExtendLock(ctx context.Context, jobId, workerId string, lock time.Duration) error

	// Complete transitions a job from Processing to Completed,
	// clearing its lease and last error. Complete must only succeed if
	// the job is currently Processing under workerId.
	Complete(ctx context.Context, jobId, workerId string) error

	// Return transitions a job from Processing back to Failed and
	// schedules it for a future retry: RunAt is set to now + backoff,
	// LockUntil is set equal to RunAt (so the lease continues to hide
	// the job until its scheduled retry time, per the store's
	// documented lease/schedule design), and lastError is recorded
	// (truncated to job.MaxErrorLen). Return must only succeed if the
	// job is currently Processing under workerId.
	Return(ctx context.Context, jobId, workerId string, backoff time.Duration, lastError string) error

	// Kill transitions a job from Processing to Dead and, in the same
	// transaction, inserts a DLQ entry ("dlq_<job id>") holding a
	// snapshot of the job's preserved fields. Kill must only succeed if
	// the job is currently Processing under workerId.
	Kill(ctx context.Context, jobId, workerId string, lastError string) error
}
