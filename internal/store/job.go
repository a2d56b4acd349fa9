package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"crewline.app/dispatch/core/db"
	"crewline.app/dispatch/internal/model"
)

type jobStore struct {
	q db.Querier
}

func newJobStore(q db.Querier) JobStore {
	return &jobStore{q: q}
}

const jobColumns = `id, client_name, client_phone, description, job_type, urgency,
	complexity_score, estimated_duration, weather_dependent, required_skills,
	required_tools, location, status, assigned_worker_id, scheduled_start,
	scheduled_end, quoted_total, created_at, updated_at`

func (s *jobStore) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	row := s.q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *jobStore) Create(ctx context.Context, job *model.Job) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO jobs (id, client_name, client_phone, description, job_type, urgency,
			complexity_score, estimated_duration, weather_dependent, required_skills,
			required_tools, location, status, quoted_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+jobColumns,
		job.ID, job.ClientName, job.ClientPhone, job.Description, job.JobType, job.Urgency,
		job.ComplexityScore, job.EstimatedDuration, job.WeatherDependent, job.RequiredSkills,
		job.RequiredTools, job.Location, job.Status, job.QuotedTotal)

	created, err := scanJob(row)
	if err != nil {
		return err
	}
	*job = *created
	return nil
}

func (s *jobStore) Update(ctx context.Context, job *model.Job) error {
	row := s.q.QueryRow(ctx, `
		UPDATE jobs SET client_name = $2, client_phone = $3, description = $4,
			job_type = $5, urgency = $6, complexity_score = $7, estimated_duration = $8,
			weather_dependent = $9, required_skills = $10, required_tools = $11,
			location = $12, status = $13, quoted_total = $14, updated_at = now()
		WHERE id = $1
		RETURNING `+jobColumns,
		job.ID, job.ClientName, job.ClientPhone, job.Description, job.JobType, job.Urgency,
		job.ComplexityScore, job.EstimatedDuration, job.WeatherDependent, job.RequiredSkills,
		job.RequiredTools, job.Location, job.Status, job.QuotedTotal)

	updated, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*job = *updated
	return nil
}

func (s *jobStore) UpdateSchedule(ctx context.Context, id int64, workerID int64, start, end time.Time, status model.JobStatus) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE jobs SET assigned_worker_id = $2, scheduled_start = $3, scheduled_end = $4,
			status = $5, updated_at = now()
		WHERE id = $1`,
		id, workerID, start, end, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *jobStore) List(ctx context.Context, limit int32) ([]model.Job, error) {
	rows, err := s.q.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var job model.Job
	err := row.Scan(
		&job.ID, &job.ClientName, &job.ClientPhone, &job.Description, &job.JobType, &job.Urgency,
		&job.ComplexityScore, &job.EstimatedDuration, &job.WeatherDependent, &job.RequiredSkills,
		&job.RequiredTools, &job.Location, &job.Status, &job.AssignedWorkerID, &job.ScheduledStart,
		&job.ScheduledEnd, &job.QuotedTotal, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
