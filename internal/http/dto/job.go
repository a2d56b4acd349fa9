package dto

import (
	"time"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/model"
)

// JobRequirementsPayload lets callers submit pre-structured requirements and
// skip intake analysis.
type JobRequirementsPayload struct {
	JobType           string   `json:"job_type" binding:"required"`
	Urgency           string   `json:"urgency" binding:"required"`
	ComplexityScore   int      `json:"complexity_score" binding:"required"`
	EstimatedDuration float64  `json:"estimated_duration" binding:"required"`
	WeatherDependent  bool     `json:"weather_dependent"`
	RequiredSkills    []string `json:"required_skills,omitempty"`
	RequiredTools     []string `json:"required_tools,omitempty"`
}

func (p *JobRequirementsPayload) ToDomain() domain.JobRequirements {
	return domain.JobRequirements{
		JobType:           p.JobType,
		Urgency:           domain.Urgency(p.Urgency),
		ComplexityScore:   p.ComplexityScore,
		EstimatedDuration: p.EstimatedDuration,
		WeatherDependent:  p.WeatherDependent,
		RequiredSkills:    p.RequiredSkills,
		RequiredTools:     p.RequiredTools,
	}
}

type CreateJobRequest struct {
	ClientName   string                  `json:"client_name" binding:"required"`
	ClientPhone  *string                 `json:"client_phone,omitempty"`
	Description  string                  `json:"description"`
	Location     string                  `json:"location" binding:"required"`
	Requirements *JobRequirementsPayload `json:"requirements,omitempty"`
}

type JobResponse struct {
	ID                int64      `json:"id,string"`
	ClientName        string     `json:"client_name"`
	JobType           string     `json:"job_type"`
	Urgency           string     `json:"urgency"`
	ComplexityScore   int        `json:"complexity_score"`
	EstimatedDuration float64    `json:"estimated_duration"`
	WeatherDependent  bool       `json:"weather_dependent"`
	Location          string     `json:"location"`
	Status            string     `json:"status"`
	AssignedWorkerID  *int64     `json:"assigned_worker_id,string,omitempty"`
	ScheduledStart    *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd      *time.Time `json:"scheduled_end,omitempty"`
	QuotedTotal       *float64   `json:"quoted_total,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func NewJobResponse(job *model.Job) JobResponse {
	return JobResponse{
		ID:                job.ID,
		ClientName:        job.ClientName,
		JobType:           job.JobType,
		Urgency:           string(job.Urgency),
		ComplexityScore:   job.ComplexityScore,
		EstimatedDuration: job.EstimatedDuration,
		WeatherDependent:  job.WeatherDependent,
		Location:          job.Location,
		Status:            string(job.Status),
		AssignedWorkerID:  job.AssignedWorkerID,
		ScheduledStart:    job.ScheduledStart,
		ScheduledEnd:      job.ScheduledEnd,
		QuotedTotal:       job.QuotedTotal,
		CreatedAt:         job.CreatedAt,
	}
}
