// Package store provides a bun-based SQL storage implementation of
// the queue package's interfaces.
//
// # Overview
//
// The store package implements queue.Enqueuer, queue.Claimer,
// queue.Observer, queue.Cleaner, queue.ConfigStore, queue.WorkerRegistry
// and queue.DLQRetrier using github.com/uptrace/bun, and is exercised
// against modernc.org/sqlite in tests and at runtime.
//
// It provides:
//
//   - durable persistence of jobs, DLQ entries, config and worker rows
//   - atomic state transitions via UPDATE ... RETURNING
//   - visibility timeout (lease) semantics via lock_until
//
// # Concurrency Model
//
// Claim is implemented as a single atomic UPDATE statement with a
// subquery, so selection and state transition happen in one round
// trip and never race across workers. ExtendLock, Complete, Return and
// Kill all additionally gate on locked_by, so a worker that lost its
// lease cannot clobber the job after another worker reclaims it.
//
// SQLite deployments should enable WAL mode and a busy_timeout; Open,
// which the cmd entrypoints use, configures both.
//
// # Schema
//
// InitDB creates the jobs, dlq, config and workers tables plus the
// indexes the claim protocol and retention sweeps rely on:
// (state, run_at), (priority DESC, created_at ASC), (locked_by) and
// (job_id) on dlq. InitDB is idempotent and runs inside a transaction.
//
// # Database Lifecycle
//
// This package does not manage migrations. Open creates a SQLite
// *bun.DB with WAL mode, a busy_timeout and a single open connection,
// and runs InitDB on it. A caller that builds its own *bun.DB instead
// is responsible for configuring it and running InitDB before use.
//
// # Limitations
//
// Lease semantics use timestamp comparisons, not lease tokens.
// Delivery remains at-least-once: a worker that completes a job but
// crashes before its caller observes success may see the job claimed
// and retried elsewhere if its lease already expired.
package store
