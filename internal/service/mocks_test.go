package service_test

import (
	"context"
	"time"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/queue"
	"crewline.app/dispatch/internal/service"
	"crewline.app/dispatch/internal/store"
)

type mockJobStore struct {
	GetByIDFunc        func(ctx context.Context, id int64) (*model.Job, error)
	CreateFunc         func(ctx context.Context, job *model.Job) error
	UpdateFunc         func(ctx context.Context, job *model.Job) error
	UpdateScheduleFunc func(ctx context.Context, id int64, workerID int64, start, end time.Time, status model.JobStatus) error
	ListFunc           func(ctx context.Context, limit int32) ([]model.Job, error)
}

func (m *mockJobStore) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockJobStore) Create(ctx context.Context, job *model.Job) error {
	return m.CreateFunc(ctx, job)
}
func (m *mockJobStore) Update(ctx context.Context, job *model.Job) error {
	return m.UpdateFunc(ctx, job)
}
func (m *mockJobStore) UpdateSchedule(ctx context.Context, id int64, workerID int64, start, end time.Time, status model.JobStatus) error {
	return m.UpdateScheduleFunc(ctx, id, workerID, start, end, status)
}
func (m *mockJobStore) List(ctx context.Context, limit int32) ([]model.Job, error) {
	return m.ListFunc(ctx, limit)
}

type mockWorkerStore struct {
	GetByIDFunc       func(ctx context.Context, id int64) (*model.Worker, error)
	CreateFunc        func(ctx context.Context, worker *model.Worker) error
	UpdateFunc        func(ctx context.Context, worker *model.Worker) error
	ListAvailableFunc func(ctx context.Context) ([]model.Worker, error)
	ListFunc          func(ctx context.Context) ([]model.Worker, error)
}

func (m *mockWorkerStore) GetByID(ctx context.Context, id int64) (*model.Worker, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockWorkerStore) Create(ctx context.Context, worker *model.Worker) error {
	return m.CreateFunc(ctx, worker)
}
func (m *mockWorkerStore) Update(ctx context.Context, worker *model.Worker) error {
	return m.UpdateFunc(ctx, worker)
}
func (m *mockWorkerStore) ListAvailable(ctx context.Context) ([]model.Worker, error) {
	return m.ListAvailableFunc(ctx)
}
func (m *mockWorkerStore) List(ctx context.Context) ([]model.Worker, error) {
	return m.ListFunc(ctx)
}

type mockCommitmentStore struct {
	GetByIDFunc      func(ctx context.Context, id int64) (*model.Commitment, error)
	CreateFunc       func(ctx context.Context, c *model.Commitment) error
	DeleteFunc       func(ctx context.Context, id int64) error
	DeleteByJobFunc  func(ctx context.Context, jobID int64) error
	ListFromFunc     func(ctx context.Context, from time.Time) ([]model.Commitment, error)
	ListByWorkerFunc func(ctx context.Context, workerID int64, from time.Time) ([]model.Commitment, error)
}

func (m *mockCommitmentStore) GetByID(ctx context.Context, id int64) (*model.Commitment, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockCommitmentStore) Create(ctx context.Context, c *model.Commitment) error {
	return m.CreateFunc(ctx, c)
}
func (m *mockCommitmentStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockCommitmentStore) DeleteByJob(ctx context.Context, jobID int64) error {
	return m.DeleteByJobFunc(ctx, jobID)
}
func (m *mockCommitmentStore) ListFrom(ctx context.Context, from time.Time) ([]model.Commitment, error) {
	return m.ListFromFunc(ctx, from)
}
func (m *mockCommitmentStore) ListByWorker(ctx context.Context, workerID int64, from time.Time) ([]model.Commitment, error) {
	return m.ListByWorkerFunc(ctx, workerID, from)
}

type mockDecisionLogStore struct {
	CreateFunc            func(ctx context.Context, rec *model.DecisionRecord) error
	ListRecentFunc        func(ctx context.Context, limit int32) ([]model.DecisionRecord, error)
	CountByResolutionFunc func(ctx context.Context, since time.Time) (map[string]int64, error)
}

func (m *mockDecisionLogStore) Create(ctx context.Context, rec *model.DecisionRecord) error {
	return m.CreateFunc(ctx, rec)
}
func (m *mockDecisionLogStore) ListRecent(ctx context.Context, limit int32) ([]model.DecisionRecord, error) {
	return m.ListRecentFunc(ctx, limit)
}
func (m *mockDecisionLogStore) CountByResolution(ctx context.Context, since time.Time) (map[string]int64, error) {
	return m.CountByResolutionFunc(ctx, since)
}

// mockStoreProvider hands the same mocks back inside "transactions".
type mockStoreProvider struct {
	jobs        *mockJobStore
	workers     *mockWorkerStore
	commitments *mockCommitmentStore
	decisions   *mockDecisionLogStore
}

func (m *mockStoreProvider) Jobs() store.JobStore                 { return m.jobs }
func (m *mockStoreProvider) Workers() store.WorkerStore           { return m.workers }
func (m *mockStoreProvider) Commitments() store.CommitmentStore   { return m.commitments }
func (m *mockStoreProvider) DecisionLogs() store.DecisionLogStore { return m.decisions }

type mockTxRunner struct {
	provider *mockStoreProvider
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	return fn(m.provider)
}

type mockProducer struct {
	Exceptions    []queue.ExceptionMessage
	Notifications []queue.NotificationMessage
	Err           error
}

func (m *mockProducer) EnqueueException(_ context.Context, msg queue.ExceptionMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Exceptions = append(m.Exceptions, msg)
	return nil
}

func (m *mockProducer) EnqueueNotification(_ context.Context, msg queue.NotificationMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Notifications = append(m.Notifications, msg)
	return nil
}

func (m *mockProducer) Close() error { return nil }

type mockEngine struct {
	PlanJobFunc func(ctx context.Context, req engine.PlanRequest) (*engine.Plan, error)
}

func (m *mockEngine) PlanJob(ctx context.Context, req engine.PlanRequest) (*engine.Plan, error) {
	return m.PlanJobFunc(ctx, req)
}

type mockResolver struct {
	ResolveFunc func(decisionType domain.DecisionType, exc domain.ExceptionContext) domain.Decision
}

func (m *mockResolver) Resolve(decisionType domain.DecisionType, exc domain.ExceptionContext) domain.Decision {
	return m.ResolveFunc(decisionType, exc)
}

type mockSlotFinder struct {
	FindSlotFunc func(ctx context.Context, job domain.JobRequirements, worker domain.WorkerProfile, commitments []domain.ExistingCommitment, horizonDays int) domain.ScheduleResult
}

func (m *mockSlotFinder) FindSlot(ctx context.Context, job domain.JobRequirements, worker domain.WorkerProfile, commitments []domain.ExistingCommitment, horizonDays int) domain.ScheduleResult {
	return m.FindSlotFunc(ctx, job, worker, commitments, horizonDays)
}
