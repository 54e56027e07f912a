package queue

import (
	"math"
	"time"
)

// Backoff computes the retry delay for a job that has been attempted
// attempts times, as base^attempts seconds.
//
// base is read from the config table (key "backoff_base", falling back
// to DefaultBackoffBase) once per execution, so operator changes to
// backoff_base take effect on the next attempt without a restart.
//
// This is a deliberately simpler formula than a jittered exponential
// backoff: the run_at ≈ now+delay testable property requires an
// exact, reproducible delay rather than a randomized one.
func Backoff(base float64, attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	seconds := math.Pow(base, float64(attempts))
	return time.Duration(seconds * float64(time.Second))
}
