// Package slotsearch enumerates feasible future work windows for a job and
// worker under commitment, tool, and weather constraints.
package slotsearch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine/scoring"
)

const (
	// DefaultHorizonDays bounds how far ahead the search looks before
	// declaring no feasible slot.
	DefaultHorizonDays = 14

	workdayStartHour = 9
	workdayEndHour   = 17

	baseSlotScore = 5.0
	maxSlotScore  = 10.0
)

// ForecastProvider supplies a multi-day outlook for a location. A nil
// forecast with a nil error means no data, which the search treats as
// suitable weather (fail-open).
type ForecastProvider interface {
	Forecast(ctx context.Context, location string) (*domain.Forecast, error)
}

// Search finds constraint-satisfying schedule slots. It holds only read-only
// configuration and is safe for concurrent use.
type Search struct {
	forecasts ForecastProvider
	now       func() time.Time
}

// Option configures a Search.
type Option func(*Search)

// WithForecastProvider wires a weather source. Without one, every day is
// weather-suitable.
func WithForecastProvider(fp ForecastProvider) Option {
	return func(s *Search) { s.forecasts = fp }
}

// WithClock overrides the time source. Tests use this for determinism.
func WithClock(now func() time.Time) Option {
	return func(s *Search) { s.now = now }
}

func New(opts ...Option) *Search {
	s := &Search{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindSlot iterates candidate days from "now" through the horizon and scores
// every feasible one. The best day becomes the scheduled slot; up to three
// runners-up are returned as alternatives. An exhausted horizon is a normal
// outcome reported via Success=false, never an error.
//
// Emergency urgency bypasses the weekend skip and nothing else: commitment
// and tool checks are never waived.
func (s *Search) FindSlot(ctx context.Context, job domain.JobRequirements, worker domain.WorkerProfile, commitments []domain.ExistingCommitment, horizonDays int) domain.ScheduleResult {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	// One forecast fetch covers the whole horizon loop. The fetch is the only
	// potentially blocking operation in the search, so its failure degrades to
	// "no weather data" rather than blocking scheduling.
	var forecast *domain.Forecast
	if job.WeatherDependent && s.forecasts != nil {
		var err error
		forecast, err = s.forecasts.Forecast(ctx, job.Location)
		if err != nil {
			slog.WarnContext(ctx, "weather forecast unavailable, proceeding fail-open",
				"error", err,
				"location", job.Location)
			forecast = nil
		}
	}

	now := s.now()
	var slots []domain.ScheduleSlot

	for offset := 0; offset < horizonDays; offset++ {
		day := now.AddDate(0, 0, offset)
		start := time.Date(day.Year(), day.Month(), day.Day(), workdayStartHour, 0, 0, 0, day.Location())
		windowEnd := time.Date(day.Year(), day.Month(), day.Day(), workdayEndHour, 0, 0, 0, day.Location())

		if isWeekend(day) && job.Urgency != domain.UrgencyEmergency {
			continue
		}

		dayWeather := forecast.Day(day)
		if job.WeatherDependent && !scoring.WeatherSuitable(dayWeather) {
			continue
		}

		if workerBooked(worker.ID, start, windowEnd, commitments) {
			continue
		}

		if !toolsFree(job.RequiredTools, start, windowEnd, commitments) {
			continue
		}

		end := start.Add(time.Duration(job.EstimatedDuration * float64(time.Hour)))
		score, reasons := scoreSlot(job, offset, day, dayWeather)

		slots = append(slots, domain.ScheduleSlot{
			Start:     start,
			End:       end,
			Score:     score,
			Weather:   dayWeather,
			Reasoning: reasons,
		})
	}

	if len(slots) == 0 {
		return domain.ScheduleResult{
			Success: false,
			Reason:  fmt.Sprintf("no suitable time slot within %d days; widen the horizon or schedule manually", horizonDays),
		}
	}

	// Stable sort keeps earlier days ahead on equal scores.
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Score > slots[j].Score
	})

	best := slots[0]
	alternatives := slots[1:]
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}

	return domain.ScheduleResult{
		Success:      true,
		Scheduled:    &best,
		Alternatives: alternatives,
	}
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// workerBooked reports whether any of the worker's commitments intersects the
// candidate work window. Half-open comparison keeps exact boundary handoffs
// conflict-free.
func workerBooked(workerID int64, start, end time.Time, commitments []domain.ExistingCommitment) bool {
	for _, c := range commitments {
		if c.WorkerID == workerID && c.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// toolsFree reports whether every required tool is unclaimed by overlapping
// commitments of any worker.
func toolsFree(required []string, start, end time.Time, commitments []domain.ExistingCommitment) bool {
	if len(required) == 0 {
		return true
	}

	inUse := make(map[string]bool)
	for _, c := range commitments {
		if !c.Overlaps(start, end) {
			continue
		}
		for _, tool := range c.RequiredTools {
			inUse[tool] = true
		}
	}

	for _, tool := range required {
		if inUse[tool] {
			return false
		}
	}
	return true
}

func scoreSlot(job domain.JobRequirements, daysOut int, day time.Time, weather *domain.ForecastDay) (float64, []string) {
	score := baseSlotScore
	reasons := []string{fmt.Sprintf("Available in %d day(s)", daysOut)}

	switch {
	case job.Urgency == domain.UrgencyEmergency && daysOut == 0:
		score += 5
		reasons = append(reasons, "Same-day slot for emergency job")
	case job.Urgency == domain.UrgencyHigh && daysOut <= 1:
		score += 3
		reasons = append(reasons, "Next-day slot for high-urgency job")
	case job.Urgency == domain.UrgencyMedium && daysOut <= 3:
		score += 2
		reasons = append(reasons, "Prompt slot for medium-urgency job")
	}

	if job.WeatherDependent && weather != nil && scoring.WeatherSuitable(weather) {
		score += 1
		reasons = append(reasons, "Weather conditions are favorable")
	}

	if wd := day.Weekday(); wd >= time.Tuesday && wd <= time.Thursday {
		score += 1
		reasons = append(reasons, fmt.Sprintf("%s is a preferred working day", wd))
	}

	score = min(score, maxSlotScore)
	if score >= 8 {
		reasons = append(reasons, "Optimal scheduling conditions")
	}

	return score, reasons
}
