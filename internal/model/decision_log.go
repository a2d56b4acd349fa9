package model

import (
	"time"

	"crewline.app/dispatch/internal/domain"
)

// DecisionRecord is the audit log entry for a decision the engine made.
// Every planning run and exception resolution appends one; the insights
// endpoint aggregates over them.
type DecisionRecord struct {
	ID           int64               `json:"id,string"`
	JobID        *int64              `json:"job_id,string,omitempty"`
	DecisionType domain.DecisionType `json:"decision_type"`
	Resolution   domain.Resolution   `json:"resolution"`
	Confidence   domain.Confidence   `json:"confidence"`
	Reasoning    []string            `json:"reasoning"`

	CreatedAt time.Time `json:"created_at"`
}
