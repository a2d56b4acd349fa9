// Package selector ranks candidate workers for a job using weighted
// criteria and produces an explainable score per candidate.
package selector

import (
	"fmt"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine/scoring"
)

// Criterion weights. The optional predicted-success bonus only applies when
// historical outcome data is supplied.
const (
	weightSkillMatch   = 0.35
	weightSuccessRate  = 0.25
	weightAvailability = 0.15
	weightOnTimeRate   = 0.15
	weightExperience   = 0.10
	weightPrediction   = 0.05
)

// Selection is the outcome of ranking a candidate pool.
type Selection struct {
	Best       *domain.WorkerScore // nil when no candidates were supplied
	Confidence domain.Confidence
	Reasoning  []string
}

// Selector ranks workers. It is stateless and safe for concurrent use.
type Selector struct{}

func New() *Selector {
	return &Selector{}
}

// Select scores every candidate and returns the strictly highest scorer.
// Ties resolve to the earliest-listed candidate; this is a defined tie-break,
// not an accident of iteration. An empty candidate pool is a normal outcome
// reported with low confidence, never an error.
func (s *Selector) Select(req domain.JobRequirements, candidates []domain.WorkerProfile, history []domain.JobOutcome) Selection {
	if len(candidates) == 0 {
		return Selection{
			Best:       nil,
			Confidence: domain.ConfidenceLow,
			Reasoning:  []string{"No workers available"},
		}
	}

	var best *domain.WorkerScore
	bestScore := 0.0

	for i := range candidates {
		ws := s.score(req, &candidates[i], history)
		// Strictly greater wins: the first candidate keeps its slot on ties.
		if ws.Composite > bestScore {
			bestScore = ws.Composite
			best = ws
		}
	}

	if best == nil {
		// All candidates scored exactly zero, which only happens with
		// degenerate profiles. Fall back to the first so the tie-break rule
		// still holds.
		best = s.score(req, &candidates[0], history)
	}

	return Selection{
		Best:       best,
		Confidence: confidenceFor(best.Composite),
		Reasoning:  best.Reasoning,
	}
}

func (s *Selector) score(req domain.JobRequirements, worker *domain.WorkerProfile, history []domain.JobOutcome) *domain.WorkerScore {
	ws := &domain.WorkerScore{
		WorkerID: worker.ID,
		Worker:   worker,
	}

	add := func(criterion string, score, weight float64, reason string) {
		weighted := score * weight
		ws.Composite += weighted
		ws.Breakdown = append(ws.Breakdown, domain.CriterionScore{
			Criterion: criterion,
			Score:     score,
			Weight:    weight,
			Weighted:  weighted,
		})
		ws.Reasoning = append(ws.Reasoning, reason)
	}

	skill := scoring.SkillMatch(req.RequiredSkills, worker.Skills)
	add("skill_match", skill, weightSkillMatch, fmt.Sprintf("Skill match: %.1f/10", skill))

	success := worker.SuccessRate / 10
	add("success_rate", success, weightSuccessRate, fmt.Sprintf("Success rate: %.0f%%", worker.SuccessRate))

	availability := 5.0
	if worker.Status == domain.WorkerStatusAvailable {
		availability = 10.0
	}
	add("availability", availability, weightAvailability, fmt.Sprintf("Availability: %s", worker.Status))

	onTime := min(worker.OnTimeRate/10, 10)
	add("on_time_rate", onTime, weightOnTimeRate, fmt.Sprintf("On-time rate: %.0f%%", worker.OnTimeRate))

	experience := scoring.JobTypeExperience(req.JobType, worker.JobHistory)
	add("job_type_experience", experience, weightExperience, fmt.Sprintf("Job type experience: %.1f/10", experience))

	if len(history) > 0 {
		predicted := predictSuccess(worker, req)
		add("predicted_success", predicted*10, weightPrediction, fmt.Sprintf("Predicted success: %.1f/10", predicted*10))
	}

	return ws
}

// predictSuccess estimates the probability of a successful outcome as the
// average of the worker's track record and the job's complexity headroom.
func predictSuccess(worker *domain.WorkerProfile, req domain.JobRequirements) float64 {
	base := worker.SuccessRate / 100
	complexityFactor := 1 - float64(req.ComplexityScore)/20
	return min((base+complexityFactor)/2, 1.0)
}

func confidenceFor(score float64) domain.Confidence {
	switch {
	case score >= 8:
		return domain.ConfidenceHigh
	case score >= 6:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
