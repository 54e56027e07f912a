package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/MohanNalamalapu/queuectl/internal"
	"github.com/MohanNalamalapu/queuectl/job"
)

// CleanConfig defines the scheduling parameters for a CleanWorker.
type CleanConfig struct {
	Interval time.Duration
}

// CleanWorker periodically purges terminal jobs (Completed, Dead) and
// aged-out DLQ entries older than the operator-configured retention
// window.
//
// The retention window is read from the config table's
// "retention_after_seconds" key on every tick — like backoff_base, an
// operator change takes effect on the next tick without a restart. If
// the key is unset (no default is registered for it), retention is
// disabled and CleanWorker runs as a no-op.
//
// CleanWorker does not participate in job processing and does not
// affect visibility timeouts.
//
// CleanWorker has a strict lifecycle:
//   - Start may only be called once.
//   - Stop must be called to terminate the worker.
//   - Stop waits for the internal task to finish or until the timeout
//     expires.
type CleanWorker struct {
	lcBase
	cleaner  Cleaner
	config   ConfigStore
	task     internal.TimerTask
	log      *slog.Logger
	interval time.Duration
}

// NewCleanWorker creates a new CleanWorker. The worker is not started
// automatically; call Start to begin periodic cleaning.
func NewCleanWorker(cleaner Cleaner, config ConfigStore, cfg *CleanConfig, log *slog.Logger) *CleanWorker {
	return &CleanWorker{
		cleaner:  cleaner,
		config:   config,
		log:      log,
		interval: cfg.Interval,
	}
}

func (cw *CleanWorker) clean(ctx context.Context) {
	seconds, err := cw.config.GetInt(ctx, "retention_after_seconds")
	if err != nil {
		cw.log.Error("error reading retention window", "err", err)
		return
	}
	if seconds <= 0 {
		return
	}
	before := time.Now().Add(-time.Duration(seconds) * time.Second)

	completed, err := cw.cleaner.Clean(ctx, job.Completed, &before)
	if err != nil {
		cw.log.Error("error cleaning completed jobs", "err", err)
	}
	dead, err := cw.cleaner.Clean(ctx, job.Dead, &before)
	if err != nil {
		cw.log.Error("error cleaning dead jobs", "err", err)
	}
	dlq, err := cw.cleaner.CleanDLQ(ctx, &before)
	if err != nil {
		cw.log.Error("error cleaning dlq entries", "err", err)
	}
	cw.log.Info("retention sweep", "completed", completed, "dead", dead, "dlq", dlq)
}

// Start begins periodic execution of the cleaning task. Start returns
// ErrDoubleStarted if the worker has already been started.
func (cw *CleanWorker) Start(ctx context.Context) error {
	if err := cw.tryStart(); err != nil {
		return err
	}
	cw.task.Start(ctx, cw.clean, cw.interval)
	return nil
}

// Stop terminates the background cleaning task, waiting up to timeout
// for the current sweep to finish.
func (cw *CleanWorker) Stop(timeout time.Duration) error {
	return cw.tryStop(timeout, cw.task.Stop)
}
