package service

import (
	"log/slog"

	"crewline.app/dispatch/internal/engine"
	"crewline.app/dispatch/internal/engine/policy"
	"crewline.app/dispatch/internal/intake"
	"crewline.app/dispatch/internal/queue"
	"crewline.app/dispatch/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	engine   *engine.Facade
	slots    engine.SlotFinder
	intake   intake.Analyzer
	queue    queue.Producer
	logger   *slog.Logger
}

func NewServices(stores *store.Stores, txRunner TxRunner, facade *engine.Facade, slots engine.SlotFinder, analyzer intake.Analyzer, producer queue.Producer, logger *slog.Logger) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		engine:   facade,
		slots:    slots,
		intake:   analyzer,
		queue:    producer,
		logger:   logger,
	}
}

func (s *Services) Planner() PlannerService {
	return NewPlannerService(
		s.stores.Jobs(),
		s.stores.Workers(),
		s.stores.Commitments(),
		s.stores.DecisionLogs(),
		s.txRunner,
		s.engine,
		s.intake,
		s.queue,
		s.logger,
	)
}

func (s *Services) Exceptions() ExceptionService {
	return NewExceptionService(
		s.stores.Jobs(),
		s.stores.Workers(),
		s.stores.Commitments(),
		s.stores.DecisionLogs(),
		s.txRunner,
		policy.New(),
		s.slots,
		s.queue,
		s.logger,
	)
}

func (s *Services) Insights() InsightsService {
	return NewInsightsService(s.stores.DecisionLogs())
}

func (s *Services) Roster() RosterService {
	return NewRosterService(s.stores.Workers(), s.logger)
}

func (s *Services) Intake() intake.Analyzer {
	return s.intake
}
