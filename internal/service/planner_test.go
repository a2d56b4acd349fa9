package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine"
	"crewline.app/dispatch/internal/engine/selector"
	"crewline.app/dispatch/internal/intake"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/service"
	"crewline.app/dispatch/internal/store"
)

var _ = Describe("PlannerService", func() {
	var (
		ctx         context.Context
		jobs        *mockJobStore
		workers     *mockWorkerStore
		commitments *mockCommitmentStore
		decisions   *mockDecisionLogStore
		txRunner    *mockTxRunner
		producer    *mockProducer
		eng         *mockEngine
	)

	storedJob := func() *model.Job {
		return &model.Job{
			ID:                100,
			ClientName:        "V. Janssen",
			JobType:           "plumbing",
			Urgency:           domain.UrgencyMedium,
			ComplexityScore:   5,
			EstimatedDuration: 2,
			Location:          "Amsterdam",
			Status:            model.JobStatusPending,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		jobs = &mockJobStore{}
		workers = &mockWorkerStore{}
		commitments = &mockCommitmentStore{}
		decisions = &mockDecisionLogStore{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{
			jobs: jobs, workers: workers, commitments: commitments, decisions: decisions,
		}}
		producer = &mockProducer{}
		eng = &mockEngine{}
	})

	newPlanner := func() service.PlannerService {
		return service.NewPlannerService(jobs, workers, commitments, decisions, txRunner, eng, intake.New(), producer, nil)
	}

	Describe("CreateJob", func() {
		It("analyzes the description and persists the job", func() {
			var created *model.Job
			jobs.CreateFunc = func(_ context.Context, job *model.Job) error {
				created = job
				return nil
			}

			job, err := newPlanner().CreateJob(ctx, service.CreateJobParams{
				ClientName:  "V. Janssen",
				Description: "Emergency, a pipe burst in the kitchen",
				Location:    "Amsterdam",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created).NotTo(BeNil())
			Expect(job.JobType).To(Equal("plumbing"))
			Expect(job.Urgency).To(Equal(domain.UrgencyEmergency))
			Expect(job.Status).To(Equal(model.JobStatusPending))
			Expect(job.ID).NotTo(BeZero())
		})

		It("requires a client name", func() {
			_, err := newPlanner().CreateJob(ctx, service.CreateJobParams{Description: "leaky tap"})
			Expect(err).To(MatchError(ContainSubstring("client_name is required")))
		})

		It("accepts pre-structured requirements without intake", func() {
			jobs.CreateFunc = func(_ context.Context, _ *model.Job) error { return nil }

			job, err := newPlanner().CreateJob(ctx, service.CreateJobParams{
				ClientName: "B. de Vries",
				Location:   "Utrecht",
				Requirements: &domain.JobRequirements{
					JobType:           "electrical",
					Urgency:           domain.UrgencyHigh,
					ComplexityScore:   7,
					EstimatedDuration: 3,
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(job.JobType).To(Equal("electrical"))
			Expect(job.Location).To(Equal("Utrecht"))
		})
	})

	Describe("Plan", func() {
		It("feeds persisted state into the engine and records the decision", func() {
			jobs.GetByIDFunc = func(_ context.Context, id int64) (*model.Job, error) {
				Expect(id).To(Equal(int64(100)))
				return storedJob(), nil
			}
			workers.ListFunc = func(context.Context) ([]model.Worker, error) {
				return []model.Worker{{ID: 7, Name: "Anna", Status: domain.WorkerStatusAvailable}}, nil
			}
			commitments.ListFromFunc = func(context.Context, time.Time) ([]model.Commitment, error) {
				return []model.Commitment{{ID: 1, JobID: 50, WorkerID: 7, StartAt: time.Now(), EndAt: time.Now().Add(time.Hour)}}, nil
			}

			var recorded *model.DecisionRecord
			decisions.CreateFunc = func(_ context.Context, rec *model.DecisionRecord) error {
				recorded = rec
				return nil
			}
			var updated *model.Job
			jobs.UpdateFunc = func(_ context.Context, job *model.Job) error {
				updated = job
				return nil
			}

			eng.PlanJobFunc = func(_ context.Context, req engine.PlanRequest) (*engine.Plan, error) {
				Expect(req.Candidates).To(HaveLen(1))
				Expect(req.Commitments).To(HaveLen(1))
				return &engine.Plan{
					Selection: selector.Selection{Best: &domain.WorkerScore{WorkerID: 7}, Confidence: domain.ConfidenceHigh},
					Schedule:  domain.ScheduleResult{Success: true, Scheduled: &domain.ScheduleSlot{}},
					Quote:     domain.PriceQuote{TotalCost: 80},
					Decision: domain.Decision{
						Type:       domain.DecisionWorkerAssignment,
						Resolution: domain.ResolutionAutoResolve,
						Confidence: domain.ConfidenceHigh,
						Reasoning:  []string{"assigned"},
					},
				}, nil
			}

			plan, err := newPlanner().Plan(ctx, 100, domain.MarketConditions{}, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Decision.Resolution).To(Equal(domain.ResolutionAutoResolve))
			Expect(recorded).NotTo(BeNil())
			Expect(recorded.DecisionType).To(Equal(domain.DecisionWorkerAssignment))
			Expect(*recorded.JobID).To(Equal(int64(100)))
			Expect(updated.Status).To(Equal(model.JobStatusPlanned))
			Expect(*updated.QuotedTotal).To(Equal(80.0))
		})

		It("maps a missing job to ErrJobNotFound", func() {
			jobs.GetByIDFunc = func(context.Context, int64) (*model.Job, error) {
				return nil, store.ErrNotFound
			}

			_, err := newPlanner().Plan(ctx, 999, domain.MarketConditions{}, 0)
			Expect(err).To(MatchError(service.ErrJobNotFound))
		})
	})

	Describe("Book", func() {
		start := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
		end := start.Add(2 * time.Hour)

		BeforeEach(func() {
			jobs.GetByIDFunc = func(context.Context, int64) (*model.Job, error) {
				return storedJob(), nil
			}
			jobs.UpdateScheduleFunc = func(context.Context, int64, int64, time.Time, time.Time, model.JobStatus) error {
				return nil
			}
			workers.GetByIDFunc = func(_ context.Context, id int64) (*model.Worker, error) {
				return &model.Worker{ID: id, Name: "Anna"}, nil
			}
		})

		It("reserves the slot and notifies client and worker", func() {
			commitments.ListByWorkerFunc = func(context.Context, int64, time.Time) ([]model.Commitment, error) {
				return nil, nil
			}
			var createdCommitment *model.Commitment
			commitments.CreateFunc = func(_ context.Context, c *model.Commitment) error {
				createdCommitment = c
				return nil
			}

			commitment, err := newPlanner().Book(ctx, service.BookParams{JobID: 100, WorkerID: 7, Start: start, End: end})

			Expect(err).NotTo(HaveOccurred())
			Expect(commitment).To(Equal(createdCommitment))
			Expect(commitment.WorkerID).To(Equal(int64(7)))
			Expect(producer.Notifications).To(HaveLen(2))
			Expect(producer.Notifications[0].Notification.Recipient).To(Equal("client"))
			Expect(producer.Notifications[1].Notification.Recipient).To(Equal("worker"))
			Expect(producer.Notifications[1].Notification.Body).To(ContainSubstring("Anna"))
		})

		It("rejects a slot the worker has since claimed", func() {
			commitments.ListByWorkerFunc = func(context.Context, int64, time.Time) ([]model.Commitment, error) {
				return []model.Commitment{{WorkerID: 7, StartAt: start.Add(30 * time.Minute), EndAt: end}}, nil
			}

			_, err := newPlanner().Book(ctx, service.BookParams{JobID: 100, WorkerID: 7, Start: start, End: end})
			Expect(err).To(MatchError(service.ErrSlotConflict))
			Expect(producer.Notifications).To(BeEmpty())
		})
	})

	Describe("Quote", func() {
		It("prices valid requirements", func() {
			quote, err := newPlanner().Quote(ctx, domain.JobRequirements{
				JobType:           "plumbing",
				Urgency:           domain.UrgencyMedium,
				ComplexityScore:   5,
				EstimatedDuration: 2,
			}, domain.MarketConditions{})

			Expect(err).NotTo(HaveOccurred())
			Expect(quote.TotalCost).To(Equal(40.0))
		})

		It("rejects malformed requirements", func() {
			_, err := newPlanner().Quote(ctx, domain.JobRequirements{}, domain.MarketConditions{})
			Expect(err).To(HaveOccurred())
		})
	})
})
