// Package engine composes worker selection, slot search and pricing into the
// end-to-end planning pipeline. The engine only recommends: reserving the
// returned slot is the commitment store's transactional responsibility, and
// planning must be re-run against refreshed commitments immediately before
// commit.
package engine

import (
	"context"
	"fmt"
	"time"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine/policy"
	"crewline.app/dispatch/internal/engine/pricing"
	"crewline.app/dispatch/internal/engine/selector"
	"crewline.app/dispatch/internal/engine/slotsearch"
)

// WorkerSelector scores candidates and picks the best match for a job.
type WorkerSelector interface {
	Select(job domain.JobRequirements, candidates []domain.WorkerProfile, history []domain.JobOutcome) selector.Selection
}

// SlotFinder searches the scheduling horizon for a feasible work window.
type SlotFinder interface {
	FindSlot(ctx context.Context, job domain.JobRequirements, worker domain.WorkerProfile, commitments []domain.ExistingCommitment, horizonDays int) domain.ScheduleResult
}

// PriceCalculator quotes a job under given market conditions.
type PriceCalculator interface {
	Price(job domain.JobRequirements, market domain.MarketConditions) domain.PriceQuote
}

// ExceptionResolver maps exception events to decisions.
type ExceptionResolver interface {
	Resolve(decisionType domain.DecisionType, exc domain.ExceptionContext) domain.Decision
}

// PlanRequest carries everything a planning run needs. All inputs are
// materialized in-memory values; the engine performs no I/O of its own beyond
// the slot search's single forecast fetch.
type PlanRequest struct {
	Job         domain.JobRequirements
	Candidates  []domain.WorkerProfile
	Commitments []domain.ExistingCommitment
	Market      domain.MarketConditions
	History     []domain.JobOutcome
	HorizonDays int
}

// Plan is the decision bundle for one job.
type Plan struct {
	Selection selector.Selection    `json:"selection"`
	Schedule  domain.ScheduleResult `json:"schedule"`
	Quote     domain.PriceQuote     `json:"quote"`
	Decision  domain.Decision       `json:"decision"`
}

// Facade is the single entry point external callers use. Safe for concurrent
// use; each call is independent.
type Facade struct {
	selector WorkerSelector
	slots    SlotFinder
	pricing  PriceCalculator
	policy   ExceptionResolver
	now      func() time.Time
}

type Option func(*Facade)

func WithSelector(s WorkerSelector) Option             { return func(f *Facade) { f.selector = s } }
func WithSlotFinder(s SlotFinder) Option               { return func(f *Facade) { f.slots = s } }
func WithPriceCalculator(p PriceCalculator) Option     { return func(f *Facade) { f.pricing = p } }
func WithExceptionResolver(r ExceptionResolver) Option { return func(f *Facade) { f.policy = r } }
func WithClock(now func() time.Time) Option            { return func(f *Facade) { f.now = now } }

func New(opts ...Option) *Facade {
	f := &Facade{
		selector: selector.New(),
		slots:    slotsearch.New(),
		pricing:  pricing.New(),
		policy:   policy.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// PlanJob validates the request, selects a worker, then schedules and prices
// in parallel. Pricing does not depend on the selected worker or slot, so the
// two run concurrently and join before the bundle is returned.
//
// "No worker" and "no slot" are normal outcomes surfaced in the bundle's
// Decision; only malformed requirements abort the pipeline.
func (f *Facade) PlanJob(ctx context.Context, req PlanRequest) (*Plan, error) {
	if err := req.Job.Validate(); err != nil {
		return nil, fmt.Errorf("validating job requirements: %w", err)
	}

	sel := f.selector.Select(req.Job, req.Candidates, req.History)

	quoteCh := make(chan domain.PriceQuote, 1)
	go func() {
		quoteCh <- f.pricing.Price(req.Job, req.Market)
	}()

	var schedule domain.ScheduleResult
	if sel.Best != nil && sel.Best.Worker != nil {
		schedule = f.slots.FindSlot(ctx, req.Job, *sel.Best.Worker, req.Commitments, req.HorizonDays)
	} else {
		schedule = domain.ScheduleResult{Success: false, Reason: "no worker selected"}
	}

	quote := <-quoteCh

	return &Plan{
		Selection: sel,
		Schedule:  schedule,
		Quote:     quote,
		Decision:  f.decide(sel, schedule),
	}, nil
}

// ResolveException applies the decision policy to an exception event for an
// already-scheduled job.
func (f *Facade) ResolveException(decisionType domain.DecisionType, exc domain.ExceptionContext) domain.Decision {
	return f.policy.Resolve(decisionType, exc)
}

func (f *Facade) decide(sel selector.Selection, schedule domain.ScheduleResult) domain.Decision {
	switch {
	case sel.Best == nil:
		return domain.Decision{
			Type:       domain.DecisionWorkerAssignment,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceLow,
			Reasoning:  append([]string{"no worker available for assignment"}, sel.Reasoning...),
			DecidedAt:  f.now(),
		}
	case !schedule.Success:
		return domain.Decision{
			Type:       domain.DecisionScheduling,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceLow,
			Reasoning:  []string{"worker selected but no feasible slot found", schedule.Reason},
			DecidedAt:  f.now(),
		}
	default:
		reasoning := append([]string{fmt.Sprintf("assigned worker %d with %s confidence", sel.Best.WorkerID, sel.Confidence)}, sel.Reasoning...)
		return domain.Decision{
			Type:       domain.DecisionWorkerAssignment,
			Resolution: domain.ResolutionAutoResolve,
			Confidence: sel.Confidence,
			Reasoning:  reasoning,
			DecidedAt:  f.now(),
		}
	}
}
