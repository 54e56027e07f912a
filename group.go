package queue

import (
	"time"

	"github.com/MohanNalamalapu/queuectl/internal"
)

// StopGroup stops a Worker and a CleanWorker concurrently, returning
// once both have finished shutting down (or timeout has elapsed for
// both). Stopping them one after another would pay each one's bounded
// wait in sequence; StopGroup lets the two shutdowns overlap, which
// matters because both poll for in-flight work on similar timescales.
//
// If both Stop calls return errors, the Worker's error takes
// precedence.
func StopGroup(timeout time.Duration, w *Worker, cw *CleanWorker) error {
	workerDone := make(internal.DoneChan)
	cleanDone := make(internal.DoneChan)

	var workerErr, cleanErr error
	go func() {
		workerErr = w.Stop(timeout)
		close(workerDone)
	}()
	go func() {
		cleanErr = cw.Stop(timeout)
		close(cleanDone)
	}()

	<-internal.Combine(workerDone, cleanDone)
	if workerErr != nil {
		return workerErr
	}
	return cleanErr
}
