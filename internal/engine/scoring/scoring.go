// Package scoring holds the pure sub-score functions shared by worker
// selection and slot search. Everything here is deterministic and free of
// I/O.
package scoring

import (
	"strings"

	"crewline.app/dispatch/internal/domain"
)

const (
	// neutralSkillScore is returned when a job lists no skill requirements.
	// Workers are not penalized for requirements that were never specified.
	neutralSkillScore = 8.0

	// neutralExperienceScore is returned when the job type itself is unknown.
	neutralExperienceScore = 5.0

	// noExperienceScore is low but nonzero: generalists are discounted, not
	// excluded.
	noExperienceScore = 3.0

	maxRainProbability = 50.0
	maxWindSpeed       = 40.0
)

// SkillMatch scores how well offered skills cover the required set, on a
// 0-10 scale. Matching is case-insensitive and bidirectional substring, so
// "plumbing" covers "emergency_plumbing" and vice versa. Each required skill
// contributes at most one match.
func SkillMatch(required, offered []string) float64 {
	if len(required) == 0 {
		return neutralSkillScore
	}

	matches := 0
	for _, req := range required {
		reqLower := strings.ToLower(req)
		for _, skill := range offered {
			skillLower := strings.ToLower(skill)
			if strings.Contains(skillLower, reqLower) || strings.Contains(reqLower, skillLower) {
				matches++
				break
			}
		}
	}

	score := float64(matches) / float64(len(required)) * 10
	return min(score, 10)
}

// JobTypeExperience scores a worker's history with a specific job type on a
// 0-10 scale: 2 points per matching past job capped at 8, plus up to 2 bonus
// points scaled by the fraction of those jobs that succeeded.
func JobTypeExperience(jobType string, history []domain.JobOutcome) float64 {
	if jobType == "" {
		return neutralExperienceScore
	}

	var relevant, successful int
	for _, outcome := range history {
		if strings.EqualFold(outcome.JobType, jobType) {
			relevant++
			if outcome.Outcome == domain.OutcomeSuccess {
				successful++
			}
		}
	}

	if relevant == 0 {
		return noExperienceScore
	}

	score := min(float64(relevant)*2, 8)
	if successful > 0 {
		score += float64(successful) / float64(relevant) * 2
	}

	return min(score, 10)
}

// WeatherSuitable reports whether outdoor work is feasible for the given day.
// Missing forecast data is treated as suitable: blocking all scheduling on an
// unavailable weather feed is worse than the occasional misjudged day.
func WeatherSuitable(day *domain.ForecastDay) bool {
	if day == nil {
		return true
	}
	return day.RainProbability < maxRainProbability && day.WindSpeed < maxWindSpeed
}
