package job

import "fmt"

// State represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed      (retry scheduled via RunAt/LockUntil)
//	Failed     -> Processing
//	Processing -> Dead        (retry budget exhausted, DLQ entry written)
//
// Completed and Dead are terminal: a job only leaves them via an
// explicit DLQ retry, which creates a fresh Pending job.
type State uint8

const (
	// Pending indicates the job is eligible for claiming, subject to
	// RunAt and LockUntil.
	Pending State = iota

	// Processing indicates a worker currently holds the job's lease.
	Processing

	// Completed indicates the command exited with status 0.
	Completed

	// Failed indicates the command exited non-zero (or could not be
	// started) and the job's retry budget is not yet exhausted. The job
	// is scheduled to become eligible again at RunAt.
	Failed

	// Dead indicates the job exhausted its retry budget. A DLQEntry
	// with the same JobId exists or existed.
	Dead
)

func stateToString(s State) string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func stateFromString(s string) (State, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "dead":
		return Dead, nil
	default:
		return 0, fmt.Errorf("unknown job state: %s", s)
	}
}

// ParseState converts a string representation of a state into a State
// value. An error is returned for unrecognized strings.
func ParseState(s string) (State, error) {
	return stateFromString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(stateToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	state, err := stateFromString(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// String returns the canonical lowercase name of the state, matching
// the CLI/HTTP JSON vocabulary ("pending", "processing", "completed",
// "failed", "dead").
func (s State) String() string {
	return stateToString(s)
}
