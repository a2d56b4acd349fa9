// Package pricing implements the deterministic multiplier-based cost model.
// Quotes are pure functions of their inputs: no I/O, no randomness, identical
// inputs always yield identical quotes.
package pricing

import (
	"math"

	"crewline.app/dispatch/internal/domain"
)

// Rates and thresholds of the cost model. Complexity 5 is the pricing
// baseline; jobs needing more than two distinct tools carry the equipment
// surcharge.
const (
	BaseHourlyRate = 20.0
	EquipmentRate  = 2.5

	complexityBaseline = 5
	complexityStep     = 0.1
	equipmentToolCount = 2

	adverseWeatherMultiplier = 1.1
	profitMarginRate         = 0.3
)

var urgencyMultipliers = map[domain.Urgency]float64{
	domain.UrgencyEmergency: 1.5,
	domain.UrgencyHigh:      1.2,
	domain.UrgencyMedium:    1.0,
	domain.UrgencyLow:       0.9,
}

// Calculator prices jobs. It holds only read-only configuration and is safe
// for concurrent use.
type Calculator struct {
	baseRate      float64
	equipmentRate float64
}

func New() *Calculator {
	return &Calculator{
		baseRate:      BaseHourlyRate,
		equipmentRate: EquipmentRate,
	}
}

// Price produces a quote for the job under the given market conditions.
// Every multiplier is returned alongside the totals so a reviewer can audit
// any quote from the quote alone.
func (c *Calculator) Price(job domain.JobRequirements, market domain.MarketConditions) domain.PriceQuote {
	multipliers := domain.PriceMultipliers{
		Urgency:    urgencyMultiplier(job.Urgency),
		Complexity: 1.0 + float64(job.ComplexityScore-complexityBaseline)*complexityStep,
		Weather:    1.0,
		Demand:     1.0,
	}

	if job.WeatherDependent && market.BadWeather {
		multipliers.Weather = adverseWeatherMultiplier
	}
	if market.DemandMultiplier > 0 {
		multipliers.Demand = market.DemandMultiplier
	}

	hourlyRate := c.baseRate * multipliers.Urgency * multipliers.Complexity * multipliers.Weather * multipliers.Demand
	laborCost := hourlyRate * job.EstimatedDuration

	var equipmentCost float64
	if len(job.RequiredTools) > equipmentToolCount {
		equipmentCost = c.equipmentRate * job.EstimatedDuration
	}

	totalCost := laborCost + equipmentCost

	return domain.PriceQuote{
		HourlyRate:     roundCents(hourlyRate),
		EstimatedHours: job.EstimatedDuration,
		LaborCost:      roundCents(laborCost),
		EquipmentCost:  roundCents(equipmentCost),
		TotalCost:      roundCents(totalCost),
		ProfitMargin:   roundCents(totalCost * profitMarginRate),
		Multipliers:    multipliers,
	}
}

// urgencyMultiplier maps unrecognized urgencies to the neutral 1.0 rate.
func urgencyMultiplier(u domain.Urgency) float64 {
	if m, ok := urgencyMultipliers[u]; ok {
		return m
	}
	return 1.0
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
