package model

import (
	"time"

	"crewline.app/dispatch/internal/domain"
)

// Worker is the persisted record of a field worker.
type Worker struct {
	ID             int64               `json:"id,string"`
	Name           string              `json:"name"`
	Skills         []string            `json:"skills,omitempty"`
	Certifications []string            `json:"certifications,omitempty"`
	SuccessRate    float64             `json:"success_rate"`
	OnTimeRate     float64             `json:"on_time_rate"`
	Status         domain.WorkerStatus `json:"status"`
	JobHistory     []domain.JobOutcome `json:"job_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile projects the persisted worker into the engine's input type.
func (w *Worker) Profile() domain.WorkerProfile {
	return domain.WorkerProfile{
		ID:             w.ID,
		Name:           w.Name,
		Skills:         w.Skills,
		Certifications: w.Certifications,
		SuccessRate:    w.SuccessRate,
		OnTimeRate:     w.OnTimeRate,
		Status:         w.Status,
		JobHistory:     w.JobHistory,
	}
}
