// Package queue provides a durable, embedded background-job queue with
// a worker pool, backed by a shared SQLite database.
//
// # Overview
//
// queue models a durable shell-command queue with explicit state
// transitions. Producers submit jobs with optional scheduling and
// priority; one or more worker processes atomically claim due jobs,
// execute them under a timeout, and persist outcomes. It separates the
// job-lifecycle engine (this package and the job/store packages) from
// its external collaborators: an operator CLI, an HTTP status
// dashboard, and a worker supervisor (see cmd/).
//
// # Delivery Semantics
//
// queue provides at-least-once processing guarantees.
//
// A job may be executed more than once if:
//
//   - a worker crashes before completing it
//   - the visibility timeout (lease) expires
//   - the lease is lost due to concurrent processing
//
// Commands must therefore be idempotent.
//
// Visibility Timeout (Lease Model)
//
// When a job is claimed, it transitions from Pending (or Failed) to
// Processing and receives a visibility timeout (LockUntil). While the
// lease is valid, the job is not eligible for claiming by other
// workers. If the lease expires before resolution, the job becomes
// eligible again and a subsequent claim increments Attempts.
//
// The Worker automatically extends the lease while a command is
// running.
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed       (retry scheduled)
//	Failed     -> Processing
//	Processing -> Dead         (DLQ entry written)
//
// Terminal states (Completed, Dead) are not retried unless explicitly
// requeued via dlq_retry.
//
// # Retry Policy
//
// Retry behavior is controlled by the backoff_base and max_retries
// config/job values. When a command exits non-zero:
//
//   - If attempts is still below max_retries, the job is rescheduled
//     with a delay of backoff_base^attempts seconds.
//   - Otherwise, the job transitions to Dead and a DLQ entry is written.
//
// Attempts is incremented each time a job is successfully claimed.
//
// Worker
//
//	coordinates claiming, executing, retrying and completing jobs.
//
// It:
//
//   - heartbeats and polls storage for eligible jobs
//   - executes the claimed command under a wall-clock timeout
//   - extends the job lease while the command runs
//   - applies retry/backoff logic on failure
//   - supports graceful shutdown with a bounded wait
//
// Worker does not guarantee exactly-once delivery.
//
// # Interfaces
//
// queue defines the following primary interfaces, implemented by the
// store package against SQLite:
//
//	Enqueuer — submit jobs
//	Claimer  — manage job lifecycle transitions
//	Observer — inspect job/queue state
//	Cleaner  — remove terminal jobs past a retention threshold
//
// # Concurrency Model
//
// Each worker process is internally single-threaded for job
// processing: it claims and executes one job at a time. The lock
// refresher for the in-flight job runs on a periodic timer concurrent
// with the command's execution. All cross-process ordering derives
// from the shared database's write serialization; there is no other
// IPC between workers.
//
// # Storage Expectations
//
// Implementations of Claimer must ensure atomic state transitions,
// durable persistence and correct visibility timeout handling. queue
// assumes the store provides reliable write semantics with a
// busy-timeout tolerant of concurrent claimers.
//
// # Summary
//
// queue provides a minimal yet structured foundation for durable
// background processing with explicit lifecycle control, retry
// semantics and a single concrete SQLite-backed store.
package queue
