package service

import (
	"context"
	"fmt"
	"time"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/store"
)

// Insights summarizes how the engine has been deciding.
type Insights struct {
	Since           time.Time              `json:"since"`
	TotalDecisions  int64                  `json:"total_decisions"`
	ByResolution    map[string]int64       `json:"by_resolution"`
	AutomationRate  float64                `json:"automation_rate"`
	RecentDecisions []model.DecisionRecord `json:"recent_decisions"`
}

type InsightsService interface {
	Summary(ctx context.Context, since time.Time) (*Insights, error)
}

type insightsService struct {
	decisions store.DecisionLogStore
}

func NewInsightsService(decisions store.DecisionLogStore) InsightsService {
	return &insightsService{decisions: decisions}
}

func (s *insightsService) Summary(ctx context.Context, since time.Time) (*Insights, error) {
	counts, err := s.decisions.CountByResolution(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("counting decisions: %w", err)
	}

	recent, err := s.decisions.ListRecent(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("listing recent decisions: %w", err)
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	rate := 0.0
	if total > 0 {
		rate = float64(counts[string(domain.ResolutionAutoResolve)]) / float64(total)
	}

	return &Insights{
		Since:           since,
		TotalDecisions:  total,
		ByResolution:    counts,
		AutomationRate:  rate,
		RecentDecisions: recent,
	}, nil
}
