// Command seed loads a small demo roster and a few open jobs so the planner
// has something to work with on a fresh database.
package main

import (
	"context"
	"log/slog"
	"os"

	"crewline.app/dispatch/common/id"
	"crewline.app/dispatch/common/logger"
	"crewline.app/dispatch/core/config"
	"crewline.app/dispatch/core/db"
	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeSeed)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(ctx, cfg.DB); err != nil {
		slog.ErrorContext(ctx, "failed to apply migrations", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	stores := store.NewStores(database.Pool())

	workers := []*model.Worker{
		{
			ID:             id.New(),
			Name:           "Mike Rodriguez",
			Skills:         []string{"plumbing", "pipe fitting", "drain cleaning"},
			Certifications: []string{"master plumber"},
			SuccessRate:    95,
			OnTimeRate:     92,
			Status:         domain.WorkerStatusAvailable,
			JobHistory: []domain.JobOutcome{
				{JobType: "plumbing", Outcome: domain.OutcomeSuccess},
				{JobType: "plumbing", Outcome: domain.OutcomeSuccess},
				{JobType: "plumbing", Outcome: domain.OutcomeSuccess},
			},
		},
		{
			ID:             id.New(),
			Name:           "Sarah Chen",
			Skills:         []string{"electrical", "wiring", "panel upgrades"},
			Certifications: []string{"licensed electrician"},
			SuccessRate:    98,
			OnTimeRate:     96,
			Status:         domain.WorkerStatusAvailable,
			JobHistory: []domain.JobOutcome{
				{JobType: "electrical", Outcome: domain.OutcomeSuccess},
				{JobType: "electrical", Outcome: domain.OutcomeSuccess},
			},
		},
		{
			ID:          id.New(),
			Name:        "Tom Baker",
			Skills:      []string{"roofing", "gutter repair", "carpentry"},
			SuccessRate: 88,
			OnTimeRate:  85,
			Status:      domain.WorkerStatusAvailable,
			JobHistory: []domain.JobOutcome{
				{JobType: "roofing", Outcome: domain.OutcomeSuccess},
				{JobType: "roofing", Outcome: "partial"},
			},
		},
		{
			ID:          id.New(),
			Name:        "Lisa Park",
			Skills:      []string{"painting", "drywall", "general"},
			SuccessRate: 91,
			OnTimeRate:  94,
			Status:      domain.WorkerStatusBusy,
		},
	}

	for _, w := range workers {
		if err := stores.Workers().Create(ctx, w); err != nil {
			slog.ErrorContext(ctx, "failed to seed worker", "error", err, "name", w.Name)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "worker seeded", "worker_id", w.ID, "name", w.Name)
	}

	phone := "+1-555-0142"
	jobs := []*model.Job{
		{
			ID:                id.New(),
			ClientName:        "Janet Wu",
			ClientPhone:       &phone,
			Description:       "Kitchen sink drain is clogged and backing up",
			JobType:           "plumbing",
			Urgency:           domain.UrgencyHigh,
			ComplexityScore:   4,
			EstimatedDuration: 2,
			RequiredSkills:    []string{"plumbing", "drain cleaning"},
			RequiredTools:     []string{"drain snake", "wrench set"},
			Location:          "Maple District",
			Status:            model.JobStatusPending,
		},
		{
			ID:                id.New(),
			ClientName:        "Robert Hall",
			Description:       "Several shingles blew off in last week's storm",
			JobType:           "roofing",
			Urgency:           domain.UrgencyMedium,
			ComplexityScore:   6,
			EstimatedDuration: 4,
			WeatherDependent:  true,
			RequiredSkills:    []string{"roofing"},
			RequiredTools:     []string{"ladder", "nail gun", "safety harness"},
			Location:          "Oak Hill",
			Status:            model.JobStatusPending,
		},
	}

	for _, j := range jobs {
		if err := stores.Jobs().Create(ctx, j); err != nil {
			slog.ErrorContext(ctx, "failed to seed job", "error", err, "client", j.ClientName)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "job seeded", "job_id", j.ID, "job_type", j.JobType)
	}

	slog.InfoContext(ctx, "seed complete", "workers", len(workers), "jobs", len(jobs))
}
