package dto

import (
	"time"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine"
)

type MarketPayload struct {
	BadWeather       bool    `json:"bad_weather"`
	DemandMultiplier float64 `json:"demand_multiplier"`
}

func (p *MarketPayload) ToDomain() domain.MarketConditions {
	if p == nil {
		return domain.MarketConditions{}
	}
	return domain.MarketConditions{
		BadWeather:       p.BadWeather,
		DemandMultiplier: p.DemandMultiplier,
	}
}

type PlanJobRequest struct {
	Market      *MarketPayload `json:"market,omitempty"`
	HorizonDays int            `json:"horizon_days,omitempty"`
}

type PlanResponse struct {
	Best       *domain.WorkerScore   `json:"best,omitempty"`
	Confidence domain.Confidence     `json:"confidence"`
	Reasoning  []string              `json:"reasoning"`
	Schedule   domain.ScheduleResult `json:"schedule"`
	Quote      domain.PriceQuote     `json:"quote"`
	Decision   domain.Decision       `json:"decision"`
}

func NewPlanResponse(plan *engine.Plan) PlanResponse {
	return PlanResponse{
		Best:       plan.Selection.Best,
		Confidence: plan.Selection.Confidence,
		Reasoning:  plan.Selection.Reasoning,
		Schedule:   plan.Schedule,
		Quote:      plan.Quote,
		Decision:   plan.Decision,
	}
}

type BookJobRequest struct {
	WorkerID int64     `json:"worker_id,string" binding:"required"`
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end" binding:"required"`
}

type BookJobResponse struct {
	CommitmentID int64     `json:"commitment_id,string"`
	JobID        int64     `json:"job_id,string"`
	WorkerID     int64     `json:"worker_id,string"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

type QuoteRequest struct {
	Requirements JobRequirementsPayload `json:"requirements" binding:"required"`
	Market       *MarketPayload         `json:"market,omitempty"`
}
