package model

import (
	"time"

	"crewline.app/dispatch/internal/domain"
)

// Commitment is a reserved time window for a worker, created when a
// recommended slot is actually booked. Reserving is transactional; the
// planner only recommends.
type Commitment struct {
	ID            int64     `json:"id,string"`
	JobID         int64     `json:"job_id,string"`
	WorkerID      int64     `json:"worker_id,string"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	RequiredTools []string  `json:"required_tools,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Constraint projects the commitment into the engine's read-only input type.
func (c *Commitment) Constraint() domain.ExistingCommitment {
	return domain.ExistingCommitment{
		ID:            c.ID,
		JobID:         c.JobID,
		WorkerID:      c.WorkerID,
		Start:         c.StartAt,
		End:           c.EndAt,
		RequiredTools: c.RequiredTools,
	}
}
