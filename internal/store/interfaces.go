package store

import (
	"context"
	"errors"
	"time"

	"crewline.app/dispatch/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// JobStore defines the contract for job data access
type JobStore interface {
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	UpdateSchedule(ctx context.Context, id int64, workerID int64, start, end time.Time, status model.JobStatus) error
	List(ctx context.Context, limit int32) ([]model.Job, error)
}

// WorkerStore defines the contract for worker data access
type WorkerStore interface {
	GetByID(ctx context.Context, id int64) (*model.Worker, error)
	Create(ctx context.Context, worker *model.Worker) error
	Update(ctx context.Context, worker *model.Worker) error
	ListAvailable(ctx context.Context) ([]model.Worker, error)
	List(ctx context.Context) ([]model.Worker, error)
}

// CommitmentStore defines the contract for commitment data access
type CommitmentStore interface {
	GetByID(ctx context.Context, id int64) (*model.Commitment, error)
	Create(ctx context.Context, c *model.Commitment) error
	Delete(ctx context.Context, id int64) error
	DeleteByJob(ctx context.Context, jobID int64) error
	ListFrom(ctx context.Context, from time.Time) ([]model.Commitment, error)
	ListByWorker(ctx context.Context, workerID int64, from time.Time) ([]model.Commitment, error)
}

// DecisionLogStore defines the contract for the decision audit log
type DecisionLogStore interface {
	Create(ctx context.Context, rec *model.DecisionRecord) error
	ListRecent(ctx context.Context, limit int32) ([]model.DecisionRecord, error)
	CountByResolution(ctx context.Context, since time.Time) (map[string]int64, error)
}
