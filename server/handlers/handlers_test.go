package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"covid-stats/models"
	"covid-stats/models/forecast"
	"covid-stats/plot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCaseStats records the arguments it receives and returns canned values.
type fakeCaseStats struct {
	regions      []models.Region
	gotRegions   []models.Region
	gotRegion    models.Region
	gotN         int
	err          error
	summaryRows  []models.SummaryRow
	forecastData *forecast.ForecastSeries
}

func (f *fakeCaseStats) Regions() ([]models.Region, error) {
	return f.regions, f.err
}

func (f *fakeCaseStats) Summaries(regions []models.Region) ([]models.SummaryRow, error) {
	f.gotRegions = regions
	return f.summaryRows, f.err
}

func (f *fakeCaseStats) Forecast(region models.Region) (*forecast.ForecastSeries, error) {
	f.gotRegion = region
	return f.forecastData, f.err
}

func (f *fakeCaseStats) TopChart(n int) (*plot.Chart, error) {
	f.gotN = n
	return f.chart(), f.err
}

func (f *fakeCaseStats) DailyChart(regions []models.Region) (*plot.Chart, error) {
	f.gotRegions = regions
	return f.chart(), f.err
}

func (f *fakeCaseStats) GlobalChart() (*plot.Chart, error) {
	return f.chart(), f.err
}

func (f *fakeCaseStats) ForecastChart(region models.Region) (*plot.Chart, error) {
	f.gotRegion = region
	return f.chart(), f.err
}

func (f *fakeCaseStats) chart() *plot.Chart {
	if f.err != nil {
		return nil
	}
	return &plot.Chart{
		Type:       plot.ChartLine,
		Title:      "Test Chart",
		Categories: []string{"2020-01-01"},
		Series: []plot.Series{{
			Name:   "Italy",
			Points: []plot.Point{{X: "2020-01-01", Y: models.Num(3)}},
		}},
	}
}

func serve(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestRegionHandler_GetSummaries(t *testing.T) {
	t.Run("explicit regions", func(t *testing.T) {
		// Arrange
		stats := &fakeCaseStats{summaryRows: []models.SummaryRow{{Region: "US - New York", TotalCases: 10}}}
		h := NewRegionHandler(stats)

		// Act
		rr := serve(h.GetSummaries, "/v1/summary?region=US%7CNew+York&region=Italy")

		// Assert
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, []models.Region{
			{Country: "US", Province: "New York"},
			{Country: "Italy"},
		}, stats.gotRegions)

		var rows []models.SummaryRow
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
		assert.Equal(t, stats.summaryRows, rows)
	})

	t.Run("defaults to all regions", func(t *testing.T) {
		stats := &fakeCaseStats{regions: []models.Region{{Country: "Chile"}}}
		h := NewRegionHandler(stats)

		rr := serve(h.GetSummaries, "/v1/summary")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, stats.regions, stats.gotRegions)
	})

	t.Run("empty country is a bad request", func(t *testing.T) {
		h := NewRegionHandler(&fakeCaseStats{})

		rr := serve(h.GetSummaries, "/v1/summary?region=%7COntario")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown region is not found", func(t *testing.T) {
		stats := &fakeCaseStats{err: fmt.Errorf("summarize: %w: (Atlantis, )", models.ErrColumnNotFound)}
		h := NewRegionHandler(stats)

		rr := serve(h.GetSummaries, "/v1/summary?region=Atlantis")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Atlantis")
	})

	t.Run("unexpected error is internal", func(t *testing.T) {
		stats := &fakeCaseStats{err: fmt.Errorf("redis down")}
		h := NewRegionHandler(stats)

		rr := serve(h.GetSummaries, "/v1/summary?region=Italy")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "redis down")
	})
}

func TestRegionHandler_GetForecast(t *testing.T) {
	series := &forecast.ForecastSeries{
		Region:  models.Region{Country: "Italy"},
		Horizon: 7,
		Points: []forecast.ForecastPoint{{
			Date:       time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Cases:      models.Num(1),
			RollingAvg: models.Num(1),
			Forecast:   models.Missing(),
		}},
	}

	t.Run("returns the series", func(t *testing.T) {
		stats := &fakeCaseStats{forecastData: series}
		h := NewRegionHandler(stats)

		rr := serve(h.GetForecast, "/v1/forecast?region=Italy")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, models.Region{Country: "Italy"}, stats.gotRegion)
		assert.Contains(t, rr.Body.String(), `"forecast":null`)
	})

	t.Run("requires exactly one region", func(t *testing.T) {
		h := NewRegionHandler(&fakeCaseStats{forecastData: series})

		assert.Equal(t, http.StatusBadRequest, serve(h.GetForecast, "/v1/forecast").Code)
		assert.Equal(t, http.StatusBadRequest, serve(h.GetForecast, "/v1/forecast?region=A&region=B").Code)
	})

	t.Run("empty table is not found", func(t *testing.T) {
		h := NewRegionHandler(&fakeCaseStats{err: models.ErrEmptyTable})

		assert.Equal(t, http.StatusNotFound, serve(h.GetForecast, "/v1/forecast?region=Italy").Code)
	})
}

func TestRegionHandler_Ping(t *testing.T) {
	h := NewRegionHandler(&fakeCaseStats{})

	rr := serve(h.Ping, "/ping")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"pong"}`, rr.Body.String())
}

func TestRegionHandler_GetRegions(t *testing.T) {
	stats := &fakeCaseStats{regions: []models.Region{{Country: "Chile"}, {Country: "US", Province: "Texas"}}}
	h := NewRegionHandler(stats)

	rr := serve(h.GetRegions, "/v1/regions")

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.Region
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, stats.regions, got)
}

func TestChartHandler_GetTopChart(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		statusCode int
		wantN      int
	}{
		{name: "default n", target: "/v1/charts/top?format=json", statusCode: http.StatusOK, wantN: plot.DefaultTopN},
		{name: "explicit n", target: "/v1/charts/top?n=3&format=json", statusCode: http.StatusOK, wantN: 3},
		{name: "non-numeric n", target: "/v1/charts/top?n=abc", statusCode: http.StatusBadRequest},
		{name: "zero n", target: "/v1/charts/top?n=0", statusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &fakeCaseStats{}
			h := NewChartHandler(stats, nil)

			rr := serve(h.GetTopChart, tt.target)

			assert.Equal(t, tt.statusCode, rr.Code)
			if tt.statusCode == http.StatusOK {
				assert.Equal(t, tt.wantN, stats.gotN)
			}
		})
	}
}

func TestChartHandler_Formats(t *testing.T) {
	t.Run("json description", func(t *testing.T) {
		h := NewChartHandler(&fakeCaseStats{}, nil)

		rr := serve(h.GetGlobalChart, "/v1/charts/global?format=json")

		require.Equal(t, http.StatusOK, rr.Code)
		var chart plot.Chart
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chart))
		assert.Equal(t, "Test Chart", chart.Title)
		assert.Equal(t, models.Num(3), chart.Series[0].Points[0].Y)
	})

	t.Run("html page", func(t *testing.T) {
		h := NewChartHandler(&fakeCaseStats{}, nil)

		rr := serve(h.GetGlobalChart, "/v1/charts/global")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), "Test Chart")
	})

	t.Run("missing global column", func(t *testing.T) {
		h := NewChartHandler(&fakeCaseStats{err: fmt.Errorf("global chart: %w", models.ErrColumnNotFound)}, nil)

		assert.Equal(t, http.StatusNotFound, serve(h.GetGlobalChart, "/v1/charts/global").Code)
	})
}

func TestChartHandler_GetDailyChart(t *testing.T) {
	stats := &fakeCaseStats{regions: []models.Region{{Country: "Chile"}}}
	h := NewChartHandler(stats, nil)

	rr := serve(h.GetDailyChart, "/v1/charts/daily?format=json")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, stats.regions, stats.gotRegions)

	rr = serve(h.GetDailyChart, "/v1/charts/daily?format=json&region=Italy")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []models.Region{{Country: "Italy"}}, stats.gotRegions)
}

func TestChartHandler_GetForecastChart(t *testing.T) {
	stats := &fakeCaseStats{}
	h := NewChartHandler(stats, nil)

	rr := serve(h.GetForecastChart, "/v1/charts/forecast?format=json&region=US%7Cnan")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.Region{Country: "US", Province: "nan"}, stats.gotRegion)

	assert.Equal(t, http.StatusBadRequest, serve(h.GetForecastChart, "/v1/charts/forecast").Code)
}

func TestChartHandler_GetDashboard(t *testing.T) {
	t.Run("configured regions", func(t *testing.T) {
		stats := &fakeCaseStats{regions: []models.Region{{Country: "Chile"}}}
		dashboardRegions := []models.Region{{Country: "Italy"}, {Country: "US", Province: "nan"}}
		h := NewChartHandler(stats, dashboardRegions)

		rr := serve(h.GetDashboard, "/v1/charts/dashboard?format=json")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, dashboardRegions, stats.gotRegions)
		assert.Equal(t, plot.DefaultTopN, stats.gotN)
		var charts []plot.Chart
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &charts))
		assert.Len(t, charts, 3)
	})

	t.Run("defaults to all regions", func(t *testing.T) {
		stats := &fakeCaseStats{regions: []models.Region{{Country: "Chile"}}}
		h := NewChartHandler(stats, nil)

		rr := serve(h.GetDashboard, "/v1/charts/dashboard")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, stats.regions, stats.gotRegions)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), DASHBOARD_TITLE)
	})

	t.Run("service error", func(t *testing.T) {
		h := NewChartHandler(&fakeCaseStats{err: models.ErrEmptyTable}, []models.Region{{Country: "Italy"}})

		assert.Equal(t, http.StatusNotFound, serve(h.GetDashboard, "/v1/charts/dashboard").Code)
	})
}
