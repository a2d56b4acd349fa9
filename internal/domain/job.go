package domain

import (
	"fmt"
	"strings"
)

// Urgency represents how quickly a job needs to be performed.
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyHigh      Urgency = "high"
	UrgencyMedium    Urgency = "medium"
	UrgencyLow       Urgency = "low"
)

// JobRequirements is the structured description of a job as produced by the
// intake collaborator. It is immutable once created; the engine only reads it.
type JobRequirements struct {
	JobType           string   `json:"job_type"`
	Urgency           Urgency  `json:"urgency"`
	ComplexityScore   int      `json:"complexity_score"`   // 1-10
	EstimatedDuration float64  `json:"estimated_duration"` // hours
	WeatherDependent  bool     `json:"weather_dependent"`
	RequiredSkills    []string `json:"required_skills,omitempty"`
	RequiredTools     []string `json:"required_tools,omitempty"`
	Location          string   `json:"location,omitempty"`
}

// Validate rejects malformed requirements before any scoring runs.
// Business-level "no match" outcomes are not validation failures; this only
// catches genuine input faults.
func (r JobRequirements) Validate() error {
	if strings.TrimSpace(r.JobType) == "" {
		return fmt.Errorf("job type is required")
	}
	if r.EstimatedDuration <= 0 {
		return fmt.Errorf("estimated duration must be positive, got %v", r.EstimatedDuration)
	}
	if r.ComplexityScore < 1 || r.ComplexityScore > 10 {
		return fmt.Errorf("complexity score must be in [1,10], got %d", r.ComplexityScore)
	}
	return nil
}
