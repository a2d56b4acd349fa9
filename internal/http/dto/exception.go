package dto

import "crewline.app/dispatch/internal/domain"

type RaiseExceptionRequest struct {
	JobID        int64  `json:"job_id,string" binding:"required"`
	DecisionType string `json:"decision_type" binding:"required"`

	EmergencyLevel string  `json:"emergency_level,omitempty"`
	ConflictType   string  `json:"conflict_type,omitempty"`
	CostImpact     float64 `json:"cost_impact,omitempty"`
	Severity       string  `json:"severity,omitempty"`
	DelayHours     float64 `json:"delay_hours,omitempty"`
	Location       string  `json:"location,omitempty"`
	Description    string  `json:"description,omitempty"`
	ClientName     string  `json:"client_name,omitempty"`
	ClientPhone    string  `json:"client_phone,omitempty"`
}

func (r *RaiseExceptionRequest) Context() domain.ExceptionContext {
	return domain.ExceptionContext{
		JobID:          r.JobID,
		EmergencyLevel: r.EmergencyLevel,
		ConflictType:   r.ConflictType,
		CostImpact:     r.CostImpact,
		Severity:       r.Severity,
		DelayHours:     r.DelayHours,
		Location:       r.Location,
		Description:    r.Description,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
	}
}

type RaiseExceptionResponse struct {
	JobID        int64  `json:"job_id,string"`
	DecisionType string `json:"decision_type"`
	Enqueued     bool   `json:"enqueued"`
}
