package slotsearch_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine/slotsearch"
)

type stubForecastProvider struct {
	forecast *domain.Forecast
	err      error
	calls    int
}

func (s *stubForecastProvider) Forecast(_ context.Context, _ string) (*domain.Forecast, error) {
	s.calls++
	return s.forecast, s.err
}

var _ = Describe("Search", func() {
	var (
		ctx context.Context
		// Monday 08:00.
		monday = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
		clock  = func() time.Time { return monday }
		worker = domain.WorkerProfile{ID: 7, Name: "Anna", Status: domain.WorkerStatusAvailable}
	)

	job := func(urgency domain.Urgency) domain.JobRequirements {
		return domain.JobRequirements{
			JobType:           "plumbing",
			Urgency:           urgency,
			ComplexityScore:   5,
			EstimatedDuration: 4,
			Location:          "Amsterdam",
		}
	}

	dayAt := func(offset, hour int) time.Time {
		d := monday.AddDate(0, 0, offset)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
	}

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("prefers the highest-scoring day and breaks ties toward the earliest", func() {
		search := slotsearch.New(slotsearch.WithClock(clock))
		result := search.FindSlot(ctx, job(domain.UrgencyMedium), worker, nil, 14)

		Expect(result.Success).To(BeTrue())
		// Tuesday scores 5 (base) + 2 (medium, <=3 days) + 1 (Tue-Thu) = 8;
		// Wednesday and Thursday tie but come later.
		Expect(result.Scheduled.Start).To(Equal(dayAt(1, 9)))
		Expect(result.Scheduled.Score).To(Equal(8.0))
		Expect(result.Scheduled.End).To(Equal(dayAt(1, 13)))
	})

	It("returns at most three alternatives", func() {
		search := slotsearch.New(slotsearch.WithClock(clock))
		result := search.FindSlot(ctx, job(domain.UrgencyLow), worker, nil, 14)

		Expect(result.Success).To(BeTrue())
		Expect(len(result.Alternatives)).To(BeNumerically("<=", 3))
	})

	Context("weekends", func() {
		saturday := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		satClock := func() time.Time { return saturday }

		It("skips weekend days for non-emergency jobs", func() {
			search := slotsearch.New(slotsearch.WithClock(satClock))
			result := search.FindSlot(ctx, job(domain.UrgencyMedium), worker, nil, 14)

			Expect(result.Success).To(BeTrue())
			Expect(result.Scheduled.Start.Weekday()).NotTo(Or(Equal(time.Saturday), Equal(time.Sunday)))
			for _, alt := range result.Alternatives {
				Expect(alt.Start.Weekday()).NotTo(Or(Equal(time.Saturday), Equal(time.Sunday)))
			}
		})

		It("allows same-day weekend slots for emergencies", func() {
			search := slotsearch.New(slotsearch.WithClock(satClock))
			result := search.FindSlot(ctx, job(domain.UrgencyEmergency), worker, nil, 14)

			Expect(result.Success).To(BeTrue())
			Expect(result.Scheduled.Start.Weekday()).To(Equal(time.Saturday))
			// base 5 + 5 same-day emergency, clamped territory
			Expect(result.Scheduled.Score).To(Equal(10.0))
		})
	})

	Context("existing commitments", func() {
		It("never returns a slot overlapping the worker's commitments", func() {
			commitments := []domain.ExistingCommitment{
				{ID: 1, WorkerID: 7, Start: dayAt(1, 10), End: dayAt(1, 12)},
				{ID: 2, WorkerID: 7, Start: dayAt(2, 9), End: dayAt(2, 17)},
			}

			search := slotsearch.New(slotsearch.WithClock(clock))
			result := search.FindSlot(ctx, job(domain.UrgencyMedium), worker, commitments, 14)

			Expect(result.Success).To(BeTrue())
			all := append([]domain.ScheduleSlot{*result.Scheduled}, result.Alternatives...)
			for _, slot := range all {
				for _, c := range commitments {
					Expect(c.Overlaps(slot.Start, slot.End)).To(BeFalse())
				}
			}
		})

		It("treats exact window boundaries as conflict-free", func() {
			commitments := []domain.ExistingCommitment{
				// Ends exactly when the work window opens; starts exactly when it closes.
				{ID: 1, WorkerID: 7, Start: dayAt(1, 7), End: dayAt(1, 9)},
				{ID: 2, WorkerID: 7, Start: dayAt(1, 17), End: dayAt(1, 19)},
			}

			search := slotsearch.New(slotsearch.WithClock(clock))
			result := search.FindSlot(ctx, job(domain.UrgencyMedium), worker, commitments, 14)

			Expect(result.Success).To(BeTrue())
			Expect(result.Scheduled.Start).To(Equal(dayAt(1, 9)))
		})

		It("does not waive commitment checks for emergencies", func() {
			commitments := []domain.ExistingCommitment{
				{ID: 1, WorkerID: 7, Start: dayAt(0, 9), End: dayAt(0, 17)},
			}

			search := slotsearch.New(slotsearch.WithClock(clock))
			result := search.FindSlot(ctx, job(domain.UrgencyEmergency), worker, commitments, 14)

			Expect(result.Success).To(BeTrue())
			Expect(result.Scheduled.Start).NotTo(Equal(dayAt(0, 9)))
		})

		It("ignores commitments belonging to other workers", func() {
			commitments := []domain.ExistingCommitment{
				{ID: 1, WorkerID: 99, Start: dayAt(1, 9), End: dayAt(1, 17)},
			}

			search := slotsearch.New(slotsearch.WithClock(clock))
			result := search.FindSlot(ctx, job(domain.UrgencyMedium), worker, commitments, 14)

			Expect(result.Success).To(BeTrue())
			Expect(result.Scheduled.Start).To(Equal(dayAt(1, 9)))
		})

		It("reports a structured failure when the horizon is fully booked", func() {
			var commitments []domain.ExistingCommitment
			for offset := range 14 {
				commitments = append(commitments, domain.ExistingCommitment{
					WorkerID: 7,
					Start:    dayAt(offset, 9),
					End:      dayAt(offset, 17),
				})
			}

			search := slotsearch.New(slotsearch.WithClock(clock))
			result := search.FindSlot(ctx, job(domain.UrgencyMedium), worker, commitments, 14)

			Expect(result.Success).To(BeFalse())
			Expect(result.Scheduled).To(BeNil())
			Expect(result.Reason).To(ContainSubstring("no suitable time slot"))
		})
	})

	Context("tool availability", func() {
		It("skips days where a required tool is claimed by any overlapping commitment", func() {
			toolJob := job(domain.UrgencyMedium)
			toolJob.RequiredTools = []string{"crane"}

			commitments := []domain.ExistingCommitment{
				// Another worker holds the crane on Tuesday.
				{ID: 1, WorkerID: 99, Start: dayAt(1, 9), End: dayAt(1, 17), RequiredTools: []string{"crane"}},
			}

			search := slotsearch.New(slotsearch.WithClock(clock))
			result := search.FindSlot(ctx, toolJob, worker, commitments, 14)

			Expect(result.Success).To(BeTrue())
			Expect(result.Scheduled.Start).NotTo(Equal(dayAt(1, 9)))
		})
	})

	Context("weather", func() {
		weatherJob := func() domain.JobRequirements {
			j := job(domain.UrgencyMedium)
			j.WeatherDependent = true
			return j
		}

		It("fetches the forecast once per search", func() {
			provider := &stubForecastProvider{forecast: &domain.Forecast{}}
			search := slotsearch.New(slotsearch.WithClock(clock), slotsearch.WithForecastProvider(provider))

			result := search.FindSlot(ctx, weatherJob(), worker, nil, 14)
			Expect(result.Success).To(BeTrue())
			Expect(provider.calls).To(Equal(1))
		})

		It("skips days with unsuitable forecasts", func() {
			days := map[string]domain.ForecastDay{
				domain.DayKey(dayAt(1, 0)): {RainProbability: 80},
				domain.DayKey(dayAt(2, 0)): {RainProbability: 10, WindSpeed: 10},
			}
			provider := &stubForecastProvider{forecast: &domain.Forecast{Days: days}}
			search := slotsearch.New(slotsearch.WithClock(clock), slotsearch.WithForecastProvider(provider))

			result := search.FindSlot(ctx, weatherJob(), worker, nil, 14)

			Expect(result.Success).To(BeTrue())
			Expect(result.Scheduled.Start).To(Equal(dayAt(2, 9)))
			// base 5 + 2 medium + 1 favorable weather + 1 Wednesday
			Expect(result.Scheduled.Score).To(Equal(9.0))
		})

		It("fails open when the forecast fetch errors", func() {
			provider := &stubForecastProvider{err: errors.New("upstream timeout")}
			search := slotsearch.New(slotsearch.WithClock(clock), slotsearch.WithForecastProvider(provider))

			result := search.FindSlot(ctx, weatherJob(), worker, nil, 14)

			Expect(result.Success).To(BeTrue())
			// No weather data: no favorable-weather bonus either.
			Expect(result.Scheduled.Start).To(Equal(dayAt(1, 9)))
			Expect(result.Scheduled.Score).To(Equal(8.0))
		})

		It("does not consult the provider for weather-independent jobs", func() {
			provider := &stubForecastProvider{}
			search := slotsearch.New(slotsearch.WithClock(clock), slotsearch.WithForecastProvider(provider))

			_ = search.FindSlot(ctx, job(domain.UrgencyMedium), worker, nil, 14)
			Expect(provider.calls).To(BeZero())
		})
	})

	It("applies the default horizon when none is given", func() {
		search := slotsearch.New(slotsearch.WithClock(clock))
		result := search.FindSlot(ctx, job(domain.UrgencyMedium), worker, nil, 0)
		Expect(result.Success).To(BeTrue())
	})
})
