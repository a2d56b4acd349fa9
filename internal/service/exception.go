package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"crewline.app/dispatch/common/id"
	"crewline.app/dispatch/common/logger"
	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/notify"
	"crewline.app/dispatch/internal/queue"
	"crewline.app/dispatch/internal/store"
)

// ExceptionResolver maps exception events to decisions.
type ExceptionResolver interface {
	Resolve(decisionType domain.DecisionType, exc domain.ExceptionContext) domain.Decision
}

type ExceptionService interface {
	// Raise enqueues an exception for asynchronous resolution.
	Raise(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) error

	// Handle resolves an exception, records the decision, dispatches its
	// notifications and executes a reschedule when the decision asks for one.
	Handle(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) (*domain.Decision, error)
}

type exceptionService struct {
	jobs        store.JobStore
	workers     store.WorkerStore
	commitments store.CommitmentStore
	decisions   store.DecisionLogStore
	txRunner    TxRunner
	resolver    ExceptionResolver
	slots       engine.SlotFinder
	queue       queue.Producer
	logger      *slog.Logger
}

func NewExceptionService(jobs store.JobStore, workers store.WorkerStore, commitments store.CommitmentStore, decisions store.DecisionLogStore, txRunner TxRunner, resolver ExceptionResolver, slots engine.SlotFinder, producer queue.Producer, logger *slog.Logger) ExceptionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &exceptionService{
		jobs:        jobs,
		workers:     workers,
		commitments: commitments,
		decisions:   decisions,
		txRunner:    txRunner,
		resolver:    resolver,
		slots:       slots,
		queue:       producer,
		logger:      logger,
	}
}

func (s *exceptionService) Raise(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) error {
	exc.JobID = jobID

	var traceID *string
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		tid := sc.TraceID().String()
		traceID = &tid
	}

	if err := s.queue.EnqueueException(ctx, queue.ExceptionMessage{
		JobID:        jobID,
		DecisionType: decisionType,
		Context:      exc,
		TraceID:      traceID,
	}); err != nil {
		return fmt.Errorf("enqueueing exception: %w", err)
	}

	s.logger.InfoContext(ctx, "exception raised", "job_id", jobID, "decision_type", decisionType)
	return nil
}

func (s *exceptionService) Handle(ctx context.Context, jobID int64, decisionType domain.DecisionType, exc domain.ExceptionContext) (*domain.Decision, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		JobID:        logger.Ptr(jobID),
		DecisionType: logger.Ptr(string(decisionType)),
		Component:    "dispatch.service.exception",
	})

	exc.JobID = jobID
	decision := s.resolver.Resolve(decisionType, exc)

	rec := &model.DecisionRecord{
		ID:           id.New(),
		JobID:        &jobID,
		DecisionType: decision.Type,
		Resolution:   decision.Resolution,
		Confidence:   decision.Confidence,
		Reasoning:    decision.Reasoning,
	}
	if err := s.decisions.Create(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "failed to record exception decision", "error", err)
	}

	for _, n := range decision.Notifications {
		if err := s.queue.EnqueueNotification(ctx, queue.NotificationMessage{
			JobID:        jobID,
			Notification: n,
		}); err != nil {
			s.logger.ErrorContext(ctx, "failed to enqueue notification", "error", err, "channel", n.Channel)
		}
	}

	if decision.RescheduleRequested {
		if err := s.reschedule(ctx, jobID, decisionType); err != nil {
			// The decision stands; the reschedule failure is surfaced for
			// manual follow-up instead of flipping the resolution.
			s.logger.ErrorContext(ctx, "automatic reschedule failed", "error", err)
			decision.NextSteps = append(decision.NextSteps, "manual_reschedule_required")
		}
	}

	s.logger.InfoContext(ctx, "exception handled",
		"resolution", decision.Resolution,
		"confidence", decision.Confidence,
		"notifications", len(decision.Notifications))
	return &decision, nil
}

// reschedule re-runs the slot search for an already-assigned job and moves
// its commitment to the new window.
func (s *exceptionService) reschedule(ctx context.Context, jobID int64, reason domain.DecisionType) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("fetching job: %w", err)
	}
	if job.AssignedWorkerID == nil {
		return fmt.Errorf("job %d has no assigned worker", jobID)
	}

	worker, err := s.workers.GetByID(ctx, *job.AssignedWorkerID)
	if err != nil {
		return fmt.Errorf("fetching worker: %w", err)
	}

	commitments, err := s.commitments.ListFrom(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("listing commitments: %w", err)
	}

	// The job's own reservation must not block its replacement slot.
	constraints := make([]domain.ExistingCommitment, 0, len(commitments))
	for i := range commitments {
		if commitments[i].JobID == jobID {
			continue
		}
		constraints = append(constraints, commitments[i].Constraint())
	}

	result := s.slots.FindSlot(ctx, job.Requirements(), worker.Profile(), constraints, 0)
	if !result.Success {
		return fmt.Errorf("no alternative slot: %s", result.Reason)
	}

	slot := *result.Scheduled
	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Commitments().DeleteByJob(ctx, jobID); err != nil {
			return fmt.Errorf("releasing old commitment: %w", err)
		}
		if err := sp.Commitments().Create(ctx, &model.Commitment{
			ID:            id.New(),
			JobID:         jobID,
			WorkerID:      worker.ID,
			StartAt:       slot.Start,
			EndAt:         slot.End,
			RequiredTools: job.RequiredTools,
		}); err != nil {
			return fmt.Errorf("creating new commitment: %w", err)
		}
		return sp.Jobs().UpdateSchedule(ctx, jobID, worker.ID, slot.Start, slot.End, model.JobStatusScheduled)
	}); err != nil {
		return err
	}

	notice := notify.RescheduleNotice(job.ClientName, slot, string(reason))
	if err := s.queue.EnqueueNotification(ctx, queue.NotificationMessage{
		JobID:        jobID,
		Notification: notice,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue reschedule notice", "error", err)
	}

	s.logger.InfoContext(ctx, "job rescheduled", "job_id", jobID, "new_start", slot.Start)
	return nil
}
