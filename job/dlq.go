package job

import "time"

// DLQEntry is the authoritative record of a job that exhausted its
// retry budget.
//
// Id is derived from JobId ("dlq_<job id>"). Payload is a serialized
// snapshot of the fields dlq_retry must preserve when re-enqueuing:
// Id, Command, MaxRetries and Priority.
type DLQEntry struct {
	Id      string
	JobId   string
	Payload DLQPayload
	DeadAt  time.Time
}

// DLQPayload is the preserved subset of a Job's fields needed to
// recreate it via dlq_retry.
type DLQPayload struct {
	Id         string `json:"id"`
	Command    string `json:"command"`
	MaxRetries int    `json:"max_retries"`
	Priority   int    `json:"priority"`
}
