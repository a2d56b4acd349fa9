package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crewline.app/dispatch/common/id"
	"crewline.app/dispatch/common/logger"
	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine"
	"crewline.app/dispatch/internal/engine/pricing"
	"crewline.app/dispatch/internal/intake"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/notify"
	"crewline.app/dispatch/internal/queue"
	"crewline.app/dispatch/internal/store"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrSlotConflict = errors.New("slot no longer available")
)

// Engine is the planning pipeline the service drives.
type Engine interface {
	PlanJob(ctx context.Context, req engine.PlanRequest) (*engine.Plan, error)
}

type CreateJobParams struct {
	ClientName  string
	ClientPhone *string
	Description string
	Location    string

	// Requirements skips intake analysis when the caller already has
	// structured data.
	Requirements *domain.JobRequirements
}

type BookParams struct {
	JobID    int64
	WorkerID int64
	Start    time.Time
	End      time.Time
}

type PlannerService interface {
	CreateJob(ctx context.Context, params CreateJobParams) (*model.Job, error)
	Plan(ctx context.Context, jobID int64, market domain.MarketConditions, horizonDays int) (*engine.Plan, error)
	Book(ctx context.Context, params BookParams) (*model.Commitment, error)
	Quote(ctx context.Context, req domain.JobRequirements, market domain.MarketConditions) (domain.PriceQuote, error)
}

type plannerService struct {
	jobs        store.JobStore
	workers     store.WorkerStore
	commitments store.CommitmentStore
	decisions   store.DecisionLogStore
	txRunner    TxRunner
	engine      Engine
	pricing     *pricing.Calculator
	intake      intake.Analyzer
	queue       queue.Producer
	logger      *slog.Logger
}

func NewPlannerService(jobs store.JobStore, workers store.WorkerStore, commitments store.CommitmentStore, decisions store.DecisionLogStore, txRunner TxRunner, eng Engine, analyzer intake.Analyzer, producer queue.Producer, logger *slog.Logger) PlannerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &plannerService{
		jobs:        jobs,
		workers:     workers,
		commitments: commitments,
		decisions:   decisions,
		txRunner:    txRunner,
		engine:      eng,
		pricing:     pricing.New(),
		intake:      analyzer,
		queue:       producer,
		logger:      logger,
	}
}

func (s *plannerService) CreateJob(ctx context.Context, params CreateJobParams) (*model.Job, error) {
	if params.ClientName == "" {
		return nil, fmt.Errorf("client_name is required")
	}

	var req domain.JobRequirements
	if params.Requirements != nil {
		req = *params.Requirements
		req.Location = params.Location
	} else {
		var err error
		req, err = s.intake.Analyze(ctx, params.Description, params.Location)
		if err != nil {
			return nil, fmt.Errorf("analyzing job description: %w", err)
		}
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validating requirements: %w", err)
	}

	job := &model.Job{
		ID:                id.New(),
		ClientName:        params.ClientName,
		ClientPhone:       params.ClientPhone,
		Description:       params.Description,
		JobType:           req.JobType,
		Urgency:           req.Urgency,
		ComplexityScore:   req.ComplexityScore,
		EstimatedDuration: req.EstimatedDuration,
		WeatherDependent:  req.WeatherDependent,
		RequiredSkills:    req.RequiredSkills,
		RequiredTools:     req.RequiredTools,
		Location:          params.Location,
		Status:            model.JobStatusPending,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	s.logger.InfoContext(ctx, "job created", "job_id", job.ID, "job_type", job.JobType, "urgency", job.Urgency)
	return job, nil
}

func (s *plannerService) Plan(ctx context.Context, jobID int64, market domain.MarketConditions, horizonDays int) (*engine.Plan, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		JobID:     logger.Ptr(jobID),
		Component: "dispatch.service.planner",
	})

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("fetching job: %w", err)
	}

	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}

	commitments, err := s.commitments.ListFrom(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("listing commitments: %w", err)
	}

	candidates := make([]domain.WorkerProfile, len(workers))
	var history []domain.JobOutcome
	for i := range workers {
		candidates[i] = workers[i].Profile()
		history = append(history, workers[i].JobHistory...)
	}

	constraints := make([]domain.ExistingCommitment, len(commitments))
	for i := range commitments {
		constraints[i] = commitments[i].Constraint()
	}

	plan, err := s.engine.PlanJob(ctx, engine.PlanRequest{
		Job:         job.Requirements(),
		Candidates:  candidates,
		Commitments: constraints,
		Market:      market,
		History:     history,
		HorizonDays: horizonDays,
	})
	if err != nil {
		return nil, fmt.Errorf("planning job: %w", err)
	}

	rec := &model.DecisionRecord{
		ID:           id.New(),
		JobID:        &job.ID,
		DecisionType: plan.Decision.Type,
		Resolution:   plan.Decision.Resolution,
		Confidence:   plan.Decision.Confidence,
		Reasoning:    plan.Decision.Reasoning,
	}
	if err := s.decisions.Create(ctx, rec); err != nil {
		// The plan itself is still valid; a missing audit row should not fail
		// the request.
		s.logger.ErrorContext(ctx, "failed to record planning decision", "error", err)
	}

	job.Status = model.JobStatusPlanned
	job.QuotedTotal = &plan.Quote.TotalCost
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.ErrorContext(ctx, "failed to update job after planning", "error", err)
	}

	s.logger.InfoContext(ctx, "job planned",
		"resolution", plan.Decision.Resolution,
		"confidence", plan.Decision.Confidence,
		"scheduled", plan.Schedule.Success)
	return plan, nil
}

// Book reserves a recommended slot. The overlap check re-runs against fresh
// commitment data inside the transaction: planning only recommends, booking
// is the moment the slot is actually claimed.
func (s *plannerService) Book(ctx context.Context, params BookParams) (*model.Commitment, error) {
	var (
		job        *model.Job
		commitment *model.Commitment
	)

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var err error
		job, err = sp.Jobs().GetByID(ctx, params.JobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("fetching job: %w", err)
		}

		existing, err := sp.Commitments().ListByWorker(ctx, params.WorkerID, time.Now())
		if err != nil {
			return fmt.Errorf("listing worker commitments: %w", err)
		}
		for i := range existing {
			if existing[i].Constraint().Overlaps(params.Start, params.End) {
				return ErrSlotConflict
			}
		}

		commitment = &model.Commitment{
			ID:            id.New(),
			JobID:         params.JobID,
			WorkerID:      params.WorkerID,
			StartAt:       params.Start,
			EndAt:         params.End,
			RequiredTools: job.RequiredTools,
		}
		if err := sp.Commitments().Create(ctx, commitment); err != nil {
			return fmt.Errorf("creating commitment: %w", err)
		}

		return sp.Jobs().UpdateSchedule(ctx, params.JobID, params.WorkerID, params.Start, params.End, model.JobStatusScheduled)
	})
	if err != nil {
		return nil, err
	}

	slot := domain.ScheduleSlot{Start: params.Start, End: params.End}
	confirmation := notify.ScheduleConfirmation(job.ClientName, job.JobType, slot)
	if err := s.queue.EnqueueNotification(ctx, queue.NotificationMessage{
		JobID:        job.ID,
		Notification: confirmation,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue booking confirmation", "error", err)
	}

	if worker, err := s.workers.GetByID(ctx, params.WorkerID); err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch worker for dispatch notice", "error", err)
	} else {
		dispatch := notify.WorkerAssignment(worker.Name, job.JobType, job.Location, params.Start)
		if err := s.queue.EnqueueNotification(ctx, queue.NotificationMessage{
			JobID:        job.ID,
			Notification: dispatch,
		}); err != nil {
			s.logger.ErrorContext(ctx, "failed to enqueue worker dispatch notice", "error", err)
		}
	}

	s.logger.InfoContext(ctx, "slot booked", "job_id", job.ID, "worker_id", params.WorkerID, "start", params.Start)
	return commitment, nil
}

func (s *plannerService) Quote(ctx context.Context, req domain.JobRequirements, market domain.MarketConditions) (domain.PriceQuote, error) {
	if err := req.Validate(); err != nil {
		return domain.PriceQuote{}, fmt.Errorf("validating requirements: %w", err)
	}
	return s.pricing.Price(req, market), nil
}
