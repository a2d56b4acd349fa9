package domain

import "time"

// ForecastDay is the weather outlook for a single calendar day.
// Units follow the forecast source: rain probability in percent, wind speed
// in km/h.
type ForecastDay struct {
	Date            time.Time `json:"date"`
	RainProbability float64   `json:"rain_probability"`
	WindSpeed       float64   `json:"wind_speed"`
	Temperature     float64   `json:"temperature"`
	Conditions      string    `json:"conditions,omitempty"`
}

// Forecast is a multi-day outlook for a location, keyed by calendar day.
type Forecast struct {
	Location string
	Days     map[string]ForecastDay // key: YYYY-MM-DD
}

// DayKey formats a timestamp as the forecast map key for its calendar day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Day returns the forecast for the given day, or nil when the forecast has
// no data for it.
func (f *Forecast) Day(t time.Time) *ForecastDay {
	if f == nil || f.Days == nil {
		return nil
	}
	if d, ok := f.Days[DayKey(t)]; ok {
		return &d
	}
	return nil
}
