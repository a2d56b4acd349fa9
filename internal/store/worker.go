package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"crewline.app/dispatch/core/db"
	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/model"
)

type workerStore struct {
	q db.Querier
}

func newWorkerStore(q db.Querier) WorkerStore {
	return &workerStore{q: q}
}

const workerColumns = `id, name, skills, certifications, success_rate, on_time_rate,
	status, job_history, created_at, updated_at`

func (s *workerStore) GetByID(ctx context.Context, id int64) (*model.Worker, error) {
	row := s.q.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id)
	worker, err := scanWorker(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return worker, nil
}

func (s *workerStore) Create(ctx context.Context, worker *model.Worker) error {
	history, err := json.Marshal(worker.JobHistory)
	if err != nil {
		return fmt.Errorf("marshal job history: %w", err)
	}

	row := s.q.QueryRow(ctx, `
		INSERT INTO workers (id, name, skills, certifications, success_rate, on_time_rate, status, job_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+workerColumns,
		worker.ID, worker.Name, worker.Skills, worker.Certifications,
		worker.SuccessRate, worker.OnTimeRate, worker.Status, history)

	created, err := scanWorker(row)
	if err != nil {
		return err
	}
	*worker = *created
	return nil
}

func (s *workerStore) Update(ctx context.Context, worker *model.Worker) error {
	history, err := json.Marshal(worker.JobHistory)
	if err != nil {
		return fmt.Errorf("marshal job history: %w", err)
	}

	row := s.q.QueryRow(ctx, `
		UPDATE workers SET name = $2, skills = $3, certifications = $4, success_rate = $5,
			on_time_rate = $6, status = $7, job_history = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+workerColumns,
		worker.ID, worker.Name, worker.Skills, worker.Certifications,
		worker.SuccessRate, worker.OnTimeRate, worker.Status, history)

	updated, err := scanWorker(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*worker = *updated
	return nil
}

func (s *workerStore) ListAvailable(ctx context.Context) ([]model.Worker, error) {
	return s.list(ctx, `SELECT `+workerColumns+` FROM workers WHERE status = $1 ORDER BY id`, domain.WorkerStatusAvailable)
}

func (s *workerStore) List(ctx context.Context) ([]model.Worker, error) {
	return s.list(ctx, `SELECT `+workerColumns+` FROM workers ORDER BY id`)
}

func (s *workerStore) list(ctx context.Context, sql string, args ...any) ([]model.Worker, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, *worker)
	}
	return workers, rows.Err()
}

func scanWorker(row pgx.Row) (*model.Worker, error) {
	var worker model.Worker
	var history []byte
	err := row.Scan(
		&worker.ID, &worker.Name, &worker.Skills, &worker.Certifications,
		&worker.SuccessRate, &worker.OnTimeRate, &worker.Status, &history,
		&worker.CreatedAt, &worker.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &worker.JobHistory); err != nil {
			return nil, fmt.Errorf("unmarshal job history: %w", err)
		}
	}
	return &worker, nil
}
