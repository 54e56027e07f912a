package store

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/MohanNalamalapu/queuectl/job"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`
	Id            string `bun:"id,pk"`
	Command       string `bun:"command,notnull"`

	State      job.State `bun:"state,notnull,default:0"`
	Attempts   int       `bun:"attempts,notnull,default:0"`
	MaxRetries int       `bun:"max_retries,notnull,default:3"`
	Priority   int       `bun:"priority,notnull,default:0"`

	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	RunAt     *time.Time `bun:"run_at,nullzero,default:null"`

	LastError string `bun:"last_error,notnull,default:''"`

	LockedBy  *string    `bun:"locked_by,nullzero,default:null"`
	LockUntil *time.Time `bun:"lock_until,nullzero,default:null"`

	Metadata map[string]any `bun:"metadata,type:jsonb"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		Id:         jm.Id,
		Command:    jm.Command,
		State:      jm.State,
		Attempts:   jm.Attempts,
		MaxRetries: jm.MaxRetries,
		Priority:   jm.Priority,
		CreatedAt:  jm.CreatedAt,
		UpdatedAt:  jm.UpdatedAt,
		RunAt:      jm.RunAt,
		LastError:  jm.LastError,
		LockedBy:   jm.LockedBy,
		LockUntil:  jm.LockUntil,
		Metadata:   jm.Metadata,
	}
}

type dlqModel struct {
	bun.BaseModel `bun:"table:dlq"`
	Id            string         `bun:"id,pk"`
	JobId         string         `bun:"job_id,notnull"`
	Payload       job.DLQPayload `bun:"payload,type:jsonb,notnull"`
	DeadAt        time.Time      `bun:"dead_at,nullzero,notnull,default:current_timestamp"`
}

func (dm *dlqModel) toEntry() *job.DLQEntry {
	return &job.DLQEntry{
		Id:      dm.Id,
		JobId:   dm.JobId,
		Payload: dm.Payload,
		DeadAt:  dm.DeadAt,
	}
}

type configModel struct {
	bun.BaseModel `bun:"table:config"`
	Key           string `bun:"key,pk"`
	Value         string `bun:"value,notnull"`
}

type workerModel struct {
	bun.BaseModel `bun:"table:workers"`
	Id            string    `bun:"id,pk"`
	Pid           int       `bun:"pid,notnull"`
	StartedAt     time.Time `bun:"started_at,nullzero,notnull,default:current_timestamp"`
	HeartbeatAt   time.Time `bun:"heartbeat_at,nullzero,notnull,default:current_timestamp"`
}

func dlqId(jobId string) string {
	return "dlq_" + jobId
}
