package queue

import (
	"context"
	"errors"
	"time"

	"github.com/MohanNalamalapu/queuectl/job"
)

var (
	// ErrBadStatus indicates that an invalid job state was supplied to
	// Cleaner.
	//
	// Cleaner implementations restrict deletion to terminal states
	// (Completed, Dead). Supplying a non-terminal state such as
	// Pending or Processing results in ErrBadStatus.
	ErrBadStatus = errors.New("bad job status")
)

// Cleaner provides a mechanism for permanently removing terminal jobs
// and aged-out DLQ entries from storage.
//
// Cleaner is a retention-management supplement to the core queue
// lifecycle: it is never invoked as part of normal claim/resolve
// processing and must not modify non-terminal jobs.
type Cleaner interface {

	// Clean deletes jobs matching the given state and time condition.
	//
	// If state is job.Completed or job.Dead, only jobs in that state
	// are targeted. Any other state returns ErrBadStatus.
	//
	// If before is non-nil, only rows whose UpdatedAt is less than or
	// equal to *before are deleted; a nil before applies no time
	// filter.
	//
	// Clean returns the number of deleted job rows.
	Clean(ctx context.Context, state job.State, before *time.Time) (int64, error)

	// CleanDLQ deletes DLQ entries whose DeadAt is less than or equal
	// to *before. A nil before applies no time filter. CleanDLQ returns
	// the number of deleted rows.
	CleanDLQ(ctx context.Context, before *time.Time) (int64, error)
}
