// Package job defines the stateful representation of a unit of work
// managed by the queue.
//
// A Job carries both the shell command to execute and the delivery
// metadata (state, attempts, scheduling, lease) that the store and
// worker runtime use to drive it through its lifecycle. DLQEntry and
// WorkerRecord are the other two durable row shapes the store owns:
// a DLQEntry is the authoritative record of a job that exhausted its
// retry budget, and a WorkerRecord is the liveness row a worker
// process writes via heartbeat.
//
// Job, DLQEntry and WorkerRecord are snapshots of storage state. They
// are not intended to be constructed by user code except via the
// store's operations; mutating a returned value does not change the
// underlying row.
package job
