package engine_test

import (
	"context"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine/selector"
)

type mockSelector struct {
	SelectFunc func(job domain.JobRequirements, candidates []domain.WorkerProfile, history []domain.JobOutcome) selector.Selection
}

func (m *mockSelector) Select(job domain.JobRequirements, candidates []domain.WorkerProfile, history []domain.JobOutcome) selector.Selection {
	return m.SelectFunc(job, candidates, history)
}

type mockSlotFinder struct {
	FindSlotFunc func(ctx context.Context, job domain.JobRequirements, worker domain.WorkerProfile, commitments []domain.ExistingCommitment, horizonDays int) domain.ScheduleResult
}

func (m *mockSlotFinder) FindSlot(ctx context.Context, job domain.JobRequirements, worker domain.WorkerProfile, commitments []domain.ExistingCommitment, horizonDays int) domain.ScheduleResult {
	return m.FindSlotFunc(ctx, job, worker, commitments, horizonDays)
}

type mockPriceCalculator struct {
	PriceFunc func(job domain.JobRequirements, market domain.MarketConditions) domain.PriceQuote
}

func (m *mockPriceCalculator) Price(job domain.JobRequirements, market domain.MarketConditions) domain.PriceQuote {
	return m.PriceFunc(job, market)
}
