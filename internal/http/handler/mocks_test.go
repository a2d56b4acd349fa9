package handler_test

import (
	"context"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/service"
)

type mockPlannerService struct {
	createFn func(ctx context.Context, params service.CreateJobParams) (*model.Job, error)
	planFn   func(ctx context.Context, jobID int64, market domain.MarketConditions, horizonDays int) (*engine.Plan, error)
	bookFn   func(ctx context.Context, params service.BookParams) (*model.Commitment, error)
	quoteFn  func(ctx context.Context, req domain.JobRequirements, market domain.MarketConditions) (domain.PriceQuote, error)
}

func (m *mockPlannerService) CreateJob(ctx context.Context, params service.CreateJobParams) (*model.Job, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockPlannerService) Plan(ctx context.Context, jobID int64, market domain.MarketConditions, horizonDays int) (*engine.Plan, error) {
	if m.planFn != nil {
		return m.planFn(ctx, jobID, market, horizonDays)
	}
	return nil, nil
}

func (m *mockPlannerService) Book(ctx context.Context, params service.BookParams) (*model.Commitment, error) {
	if m.bookFn != nil {
		return m.bookFn(ctx, params)
	}
	return nil, nil
}

func (m *mockPlannerService) Quote(ctx context.Context, req domain.JobRequirements, market domain.MarketConditions) (domain.PriceQuote, error) {
	if m.quoteFn != nil {
		return m.quoteFn(ctx, req, market)
	}
	return domain.PriceQuote{}, nil
}

type mockExceptionService struct {
	raiseFn  func(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) error
	handleFn func(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) (*domain.Decision, error)
}

func (m *mockExceptionService) Raise(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) error {
	if m.raiseFn != nil {
		return m.raiseFn(ctx, jobID, decisionType, exc)
	}
	return nil
}

func (m *mockExceptionService) Handle(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) (*domain.Decision, error) {
	if m.handleFn != nil {
		return m.handleFn(ctx, jobID, decisionType, exc)
	}
	return &domain.Decision{}, nil
}

type mockRosterService struct {
	addFn       func(ctx context.Context, params service.CreateWorkerParams) (*model.Worker, error)
	workerFn    func(ctx context.Context, workerID int64) (*model.Worker, error)
	workersFn   func(ctx context.Context, availableOnly bool) ([]model.Worker, error)
	setStatusFn func(ctx context.Context, workerID int64, status domain.WorkerStatus) (*model.Worker, error)
}

func (m *mockRosterService) AddWorker(ctx context.Context, params service.CreateWorkerParams) (*model.Worker, error) {
	if m.addFn != nil {
		return m.addFn(ctx, params)
	}
	return nil, nil
}

func (m *mockRosterService) Worker(ctx context.Context, workerID int64) (*model.Worker, error) {
	if m.workerFn != nil {
		return m.workerFn(ctx, workerID)
	}
	return nil, nil
}

func (m *mockRosterService) Workers(ctx context.Context, availableOnly bool) ([]model.Worker, error) {
	if m.workersFn != nil {
		return m.workersFn(ctx, availableOnly)
	}
	return nil, nil
}

func (m *mockRosterService) SetStatus(ctx context.Context, workerID int64, status domain.WorkerStatus) (*model.Worker, error) {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, workerID, status)
	}
	return nil, nil
}
