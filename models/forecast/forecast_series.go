package forecast

import (
	"time"

	"covid-stats/models"
)

// ForecastPoint is one row of a forecast series. Historical rows have no
// Forecast value, horizon rows have no Cases value.
type ForecastPoint struct {
	Date       time.Time   `json:"date"`
	Cases      models.Cell `json:"cases"`
	RollingAvg models.Cell `json:"rolling_avg"`
	Forecast   models.Cell `json:"forecast"`
}

// ForecastSeries is the rolling-average history of one region followed by
// the constant forecast horizon.
type ForecastSeries struct {
	Region  models.Region   `json:"region"`
	Horizon int             `json:"horizon"`
	Points  []ForecastPoint `json:"points"`
}

// Len returns the total number of rows, history plus horizon.
func (s *ForecastSeries) Len() int {
	return len(s.Points)
}

// HasForecast reports whether any row carries a forecast value.
func (s *ForecastSeries) HasForecast() bool {
	for _, p := range s.Points {
		if p.Forecast.Valid {
			return true
		}
	}
	return false
}

// History returns the historical rows.
func (s *ForecastSeries) History() []ForecastPoint {
	n := len(s.Points) - s.Horizon
	if n < 0 {
		n = 0
	}
	return s.Points[:n]
}

// Future returns the synthetic horizon rows.
func (s *ForecastSeries) Future() []ForecastPoint {
	n := len(s.Points) - s.Horizon
	if n < 0 {
		n = 0
	}
	return s.Points[n:]
}
