package domain

// WorkerStatus represents a worker's current availability state.
type WorkerStatus string

const (
	WorkerStatusAvailable WorkerStatus = "available"
	WorkerStatusBusy      WorkerStatus = "busy"
	WorkerStatusOffDuty   WorkerStatus = "off_duty"
)

// JobOutcome is a single entry in a worker's job-type history.
type JobOutcome struct {
	JobType string `json:"job_type"`
	Outcome string `json:"outcome"` // "success", "partial", "failed"
}

const OutcomeSuccess = "success"

// WorkerProfile is the read-only view of a worker used for selection.
// Owned by the worker persistence collaborator.
type WorkerProfile struct {
	ID             int64        `json:"id,string"`
	Name           string       `json:"name"`
	Skills         []string     `json:"skills,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
	SuccessRate    float64      `json:"success_rate"` // 0-100
	OnTimeRate     float64      `json:"on_time_rate"` // 0-100
	Status         WorkerStatus `json:"status"`
	JobHistory     []JobOutcome `json:"job_history,omitempty"`
}

// CriterionScore is one weighted component of a worker's composite score.
type CriterionScore struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`  // 0-10, pre-weight
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
}

// WorkerScore is the ranked selection result for a single worker.
// Produced fresh on every selection call; never persisted.
type WorkerScore struct {
	WorkerID  int64            `json:"worker_id,string"`
	Worker    *WorkerProfile   `json:"-"`
	Composite float64          `json:"composite"` // 0-10
	Breakdown []CriterionScore `json:"breakdown"`
	Reasoning []string         `json:"reasoning"`
}
