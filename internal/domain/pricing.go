package domain

// MarketConditions captures the external market signals that influence
// pricing. Produced by the market collaborator; zero value means neutral
// conditions.
type MarketConditions struct {
	BadWeather       bool    `json:"bad_weather"`
	DemandMultiplier float64 `json:"demand_multiplier"` // 0 means default 1.0
}

// PriceMultipliers is the audit trail for a quote: every factor that went
// into the hourly rate.
type PriceMultipliers struct {
	Urgency    float64 `json:"urgency"`
	Complexity float64 `json:"complexity"`
	Weather    float64 `json:"weather"`
	Demand     float64 `json:"demand"`
}

// PriceQuote is a deterministic cost estimate for a job. Monetary values are
// rounded to cents.
type PriceQuote struct {
	HourlyRate     float64          `json:"hourly_rate"`
	EstimatedHours float64          `json:"estimated_hours"`
	LaborCost      float64          `json:"labor_cost"`
	EquipmentCost  float64          `json:"equipment_cost"`
	TotalCost      float64          `json:"total_cost"`
	ProfitMargin   float64          `json:"profit_margin"` // informational, not subtracted
	Multipliers    PriceMultipliers `json:"multipliers"`
}
