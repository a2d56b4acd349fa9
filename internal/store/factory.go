package store

import (
	"crewline.app/dispatch/core/db"
)

type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

// WithQuerier returns Stores bound to a different querier, typically a
// transaction obtained from db.WithTx.
func (s *Stores) WithQuerier(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Jobs() JobStore {
	return newJobStore(s.q)
}

func (s *Stores) Workers() WorkerStore {
	return newWorkerStore(s.q)
}

func (s *Stores) Commitments() CommitmentStore {
	return newCommitmentStore(s.q)
}

func (s *Stores) DecisionLogs() DecisionLogStore {
	return newDecisionLogStore(s.q)
}
