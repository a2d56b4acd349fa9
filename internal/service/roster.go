package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"crewline.app/dispatch/common/id"
	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/store"
)

var ErrWorkerNotFound = errors.New("worker not found")

type CreateWorkerParams struct {
	Name           string
	Skills         []string
	Certifications []string
	SuccessRate    float64
	OnTimeRate     float64
}

type RosterService interface {
	AddWorker(ctx context.Context, params CreateWorkerParams) (*model.Worker, error)
	Worker(ctx context.Context, workerID int64) (*model.Worker, error)
	Workers(ctx context.Context, availableOnly bool) ([]model.Worker, error)
	SetStatus(ctx context.Context, workerID int64, status domain.WorkerStatus) (*model.Worker, error)
}

type rosterService struct {
	workers store.WorkerStore
	logger  *slog.Logger
}

func NewRosterService(workers store.WorkerStore, logger *slog.Logger) RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &rosterService{workers: workers, logger: logger}
}

func (s *rosterService) AddWorker(ctx context.Context, params CreateWorkerParams) (*model.Worker, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	worker := &model.Worker{
		ID:             id.New(),
		Name:           params.Name,
		Skills:         params.Skills,
		Certifications: params.Certifications,
		SuccessRate:    params.SuccessRate,
		OnTimeRate:     params.OnTimeRate,
		Status:         domain.WorkerStatusAvailable,
	}

	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, fmt.Errorf("creating worker: %w", err)
	}

	s.logger.InfoContext(ctx, "worker added", "worker_id", worker.ID, "name", worker.Name)
	return worker, nil
}

func (s *rosterService) Worker(ctx context.Context, workerID int64) (*model.Worker, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("fetching worker: %w", err)
	}
	return worker, nil
}

func (s *rosterService) Workers(ctx context.Context, availableOnly bool) ([]model.Worker, error) {
	if availableOnly {
		return s.workers.ListAvailable(ctx)
	}
	return s.workers.List(ctx)
}

func (s *rosterService) SetStatus(ctx context.Context, workerID int64, status domain.WorkerStatus) (*model.Worker, error) {
	switch status {
	case domain.WorkerStatusAvailable, domain.WorkerStatusBusy, domain.WorkerStatusOffDuty:
	default:
		return nil, fmt.Errorf("unknown worker status %q", status)
	}

	worker, err := s.Worker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	worker.Status = status
	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, fmt.Errorf("updating worker: %w", err)
	}

	s.logger.InfoContext(ctx, "worker status changed", "worker_id", workerID, "status", status)
	return worker, nil
}
