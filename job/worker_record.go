package job

import "time"

// WorkerRecord is a liveness row written by a worker process via
// heartbeat. It is keyed by Id and is used by status() to compute
// active_workers.
type WorkerRecord struct {
	Id          string
	Pid         int
	StartedAt   time.Time
	HeartbeatAt time.Time
}
