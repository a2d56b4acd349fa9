package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"crewline.app/dispatch/core/db"
	"crewline.app/dispatch/internal/model"
)

type decisionLogStore struct {
	q db.Querier
}

func newDecisionLogStore(q db.Querier) DecisionLogStore {
	return &decisionLogStore{q: q}
}

const decisionColumns = `id, job_id, decision_type, resolution, confidence, reasoning, created_at`

func (s *decisionLogStore) Create(ctx context.Context, rec *model.DecisionRecord) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO decision_logs (id, job_id, decision_type, resolution, confidence, reasoning)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+decisionColumns,
		rec.ID, rec.JobID, rec.DecisionType, rec.Resolution, rec.Confidence, rec.Reasoning)

	created, err := scanDecision(row)
	if err != nil {
		return err
	}
	*rec = *created
	return nil
}

func (s *decisionLogStore) ListRecent(ctx context.Context, limit int32) ([]model.DecisionRecord, error) {
	rows, err := s.q.Query(ctx, `SELECT `+decisionColumns+` FROM decision_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.DecisionRecord
	for rows.Next() {
		rec, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *decisionLogStore) CountByResolution(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := s.q.Query(ctx, `
		SELECT resolution, count(*) FROM decision_logs
		WHERE created_at >= $1
		GROUP BY resolution`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var resolution string
		var count int64
		if err := rows.Scan(&resolution, &count); err != nil {
			return nil, err
		}
		counts[resolution] = count
	}
	return counts, rows.Err()
}

func scanDecision(row pgx.Row) (*model.DecisionRecord, error) {
	var rec model.DecisionRecord
	err := row.Scan(&rec.ID, &rec.JobID, &rec.DecisionType, &rec.Resolution, &rec.Confidence, &rec.Reasoning, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
