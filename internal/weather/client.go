// Package weather fetches day-level forecasts for scheduling. The engine
// treats forecast data as advisory: a failed fetch degrades to "no weather
// data" rather than blocking the search.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"crewline.app/dispatch/core/config"
	"crewline.app/dispatch/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Client fetches forecasts over HTTP. It implements the slot search's
// ForecastProvider contract.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(cfg config.WeatherConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}
}

type forecastResponse struct {
	Location string        `json:"location"`
	Days     []forecastDay `json:"days"`
}

type forecastDay struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	RainProbability float64 `json:"rain_probability"`
	WindSpeed       float64 `json:"wind_speed"`
	Temperature     float64 `json:"temperature"`
	Conditions      string  `json:"conditions"`
}

// Forecast fetches the day-level forecast for a location. The single call
// covers the whole scheduling horizon, so the slot search fetches once per
// query rather than once per day.
func (c *Client) Forecast(ctx context.Context, location string) (*domain.Forecast, error) {
	endpoint := fmt.Sprintf("%s/forecast?location=%s", c.baseURL, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building forecast request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request failed: status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}

	forecast := &domain.Forecast{
		Location: payload.Location,
		Days:     make(map[string]domain.ForecastDay, len(payload.Days)),
	}
	for _, day := range payload.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			// A bad day entry degrades to "no data" for that day; the rest of
			// the forecast stays usable.
			continue
		}
		forecast.Days[day.Date] = domain.ForecastDay{
			Date:            date,
			RainProbability: day.RainProbability,
			WindSpeed:       day.WindSpeed,
			Temperature:     day.Temperature,
			Conditions:      day.Conditions,
		}
	}

	return forecast, nil
}
