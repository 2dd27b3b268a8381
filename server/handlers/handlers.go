package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"covid-stats/models"
	"covid-stats/models/forecast"
	"covid-stats/plot"
)

const (
	REGION_QUERY_ARG = "region"
	TOP_N_QUERY_ARG  = "n"
	FORMAT_QUERY_ARG = "format"
	FORMAT_JSON      = "json"

	DASHBOARD_TITLE = "COVID-19 Confirmed Cases Dashboard"
)

// CaseStats is the service surface the handlers depend on.
type CaseStats interface {
	Regions() ([]models.Region, error)
	Summaries(regions []models.Region) ([]models.SummaryRow, error)
	Forecast(region models.Region) (*forecast.ForecastSeries, error)
	TopChart(n int) (*plot.Chart, error)
	DailyChart(regions []models.Region) (*plot.Chart, error)
	GlobalChart() (*plot.Chart, error)
	ForecastChart(region models.Region) (*plot.Chart, error)
}

// parseRegions reads every region query arg. Each value is "Country" or
// "Country|Province".
func parseRegions(vals url.Values) ([]models.Region, error) {
	raw := vals[REGION_QUERY_ARG]
	regions := make([]models.Region, 0, len(raw))
	for _, s := range raw {
		r, err := models.ParseRegion(s)
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// parseSingleRegion requires exactly one region query arg.
func parseSingleRegion(vals url.Values) (models.Region, error) {
	regions, err := parseRegions(vals)
	if err != nil {
		return models.Region{}, err
	}
	if len(regions) != 1 {
		return models.Region{}, errors.New("exactly one region is required")
	}
	return regions[0], nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrColumnNotFound), errors.Is(err, models.ErrEmptyTable):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Println("Internal error:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
