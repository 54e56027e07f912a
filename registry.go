package queue

import (
	"context"
	"time"
)

// WorkerRegistry records worker liveness.
//
// Heartbeat rows back status().active_workers and let operators see
// which workers are alive; they carry no coordination semantics beyond
// that — claim serialization happens entirely through the jobs table.
type WorkerRegistry interface {

	// Heartbeat upserts the worker's liveness row keyed by workerId,
	// preserving the original StartedAt on repeat calls and refreshing
	// HeartbeatAt to now.
	Heartbeat(ctx context.Context, workerId string, pid int) error
}

// ActiveWorkerWindow is the heartbeat recency window used by
// status().active_workers: a worker is active if its HeartbeatAt falls
// within the last ActiveWorkerWindow.
const ActiveWorkerWindow = 10 * time.Second
