package model

import (
	"time"

	"crewline.app/dispatch/internal/domain"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusPlanned   JobStatus = "planned"
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job is the persisted record of a client job, from intake through completion.
type Job struct {
	ID          int64   `json:"id,string"`
	ClientName  string  `json:"client_name"`
	ClientPhone *string `json:"client_phone,omitempty"`
	Description string  `json:"description"`

	JobType           string         `json:"job_type"`
	Urgency           domain.Urgency `json:"urgency"`
	ComplexityScore   int            `json:"complexity_score"`
	EstimatedDuration float64        `json:"estimated_duration"`
	WeatherDependent  bool           `json:"weather_dependent"`
	RequiredSkills    []string       `json:"required_skills,omitempty"`
	RequiredTools     []string       `json:"required_tools,omitempty"`
	Location          string         `json:"location"`

	Status           JobStatus  `json:"status"`
	AssignedWorkerID *int64     `json:"assigned_worker_id,string,omitempty"`
	ScheduledStart   *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd     *time.Time `json:"scheduled_end,omitempty"`
	QuotedTotal      *float64   `json:"quoted_total,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Requirements projects the persisted job into the engine's input type.
func (j *Job) Requirements() domain.JobRequirements {
	return domain.JobRequirements{
		JobType:           j.JobType,
		Urgency:           j.Urgency,
		ComplexityScore:   j.ComplexityScore,
		EstimatedDuration: j.EstimatedDuration,
		WeatherDependent:  j.WeatherDependent,
		RequiredSkills:    j.RequiredSkills,
		RequiredTools:     j.RequiredTools,
		Location:          j.Location,
	}
}
