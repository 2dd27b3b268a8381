package plot

import (
	"covid-stats/models"
	"covid-stats/models/forecast"

	"github.com/samber/lo"
)

const (
	forecastTitlePrefix = "7-Day Rolling Avg & Forecast for "
	rollingSeriesName   = "7d_avg"
	forecastSeriesName  = "Forecast"
	rollingColor        = "orange"
	forecastColor       = "red"
	forecastBandOpacity = 0.15
	forecastChartHeight = 420
	forecastBandRows    = 7
)

// ForecastChart draws the rolling average of a forecast series. When any
// row carries a forecast value it adds a dashed forecast line and shades
// the last seven rows.
func ForecastChart(series *forecast.ForecastSeries, region models.Region) *Chart {
	dates := lo.Map(series.Points, func(p forecast.ForecastPoint, _ int) string {
		return p.Date.Format(models.DateLayout)
	})

	chart := &Chart{
		Type:       ChartLine,
		Title:      forecastTitlePrefix + region.Label(),
		XAxis:      Axis{Title: dateAxis},
		YAxis:      Axis{Title: casesAxis},
		Categories: dates,
		Height:     forecastChartHeight,
		ShowLegend: true,
	}

	rolling := Series{Name: rollingSeriesName, Color: rollingColor, Dash: DashSolid, Width: 2}
	for i, p := range series.Points {
		rolling.Points = append(rolling.Points, Point{X: dates[i], Y: p.RollingAvg})
	}
	chart.Series = append(chart.Series, rolling)

	if !series.HasForecast() {
		return chart
	}

	line := Series{Name: forecastSeriesName, Color: forecastColor, Dash: DashDash, Width: 3}
	for i, p := range series.Points {
		line.Points = append(line.Points, Point{X: dates[i], Y: p.Forecast})
	}
	chart.Series = append(chart.Series, line)

	start := len(dates) - forecastBandRows
	if start < 0 {
		start = 0
	}
	chart.Bands = append(chart.Bands, Band{
		Start:   dates[start],
		End:     dates[len(dates)-1],
		Color:   forecastColor,
		Opacity: forecastBandOpacity,
	})
	return chart
}
