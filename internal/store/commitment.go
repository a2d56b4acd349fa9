package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"crewline.app/dispatch/core/db"
	"crewline.app/dispatch/internal/model"
)

type commitmentStore struct {
	q db.Querier
}

func newCommitmentStore(q db.Querier) CommitmentStore {
	return &commitmentStore{q: q}
}

const commitmentColumns = `id, job_id, worker_id, start_at, end_at, required_tools, created_at`

func (s *commitmentStore) GetByID(ctx context.Context, id int64) (*model.Commitment, error) {
	row := s.q.QueryRow(ctx, `SELECT `+commitmentColumns+` FROM commitments WHERE id = $1`, id)
	c, err := scanCommitment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *commitmentStore) Create(ctx context.Context, c *model.Commitment) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO commitments (id, job_id, worker_id, start_at, end_at, required_tools)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+commitmentColumns,
		c.ID, c.JobID, c.WorkerID, c.StartAt, c.EndAt, c.RequiredTools)

	created, err := scanCommitment(row)
	if err != nil {
		return err
	}
	*c = *created
	return nil
}

func (s *commitmentStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM commitments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *commitmentStore) DeleteByJob(ctx context.Context, jobID int64) error {
	_, err := s.q.Exec(ctx, `DELETE FROM commitments WHERE job_id = $1`, jobID)
	return err
}

func (s *commitmentStore) ListFrom(ctx context.Context, from time.Time) ([]model.Commitment, error) {
	return s.list(ctx, `SELECT `+commitmentColumns+` FROM commitments WHERE end_at > $1 ORDER BY start_at`, from)
}

func (s *commitmentStore) ListByWorker(ctx context.Context, workerID int64, from time.Time) ([]model.Commitment, error) {
	return s.list(ctx, `SELECT `+commitmentColumns+` FROM commitments WHERE worker_id = $1 AND end_at > $2 ORDER BY start_at`, workerID, from)
}

func (s *commitmentStore) list(ctx context.Context, sql string, args ...any) ([]model.Commitment, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commitments []model.Commitment
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, *c)
	}
	return commitments, rows.Err()
}

func scanCommitment(row pgx.Row) (*model.Commitment, error) {
	var c model.Commitment
	err := row.Scan(&c.ID, &c.JobID, &c.WorkerID, &c.StartAt, &c.EndAt, &c.RequiredTools, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
