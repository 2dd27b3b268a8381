package services

import (
	"fmt"
	"math"
	"strings"

	"covid-stats/models"
	"covid-stats/models/forecast"

	"github.com/samber/lo"
)

const (
	// RollingWindowDays is the trailing window of the rolling average.
	RollingWindowDays = 7
	// ForecastHorizonDays is the number of synthetic rows appended by Forecast.
	ForecastHorizonDays = 7
)

// FormatRegion returns the display name of a (country, province) pair.
func FormatRegion(country, province string) string {
	return models.FormatRegionLabel(country, province)
}

// RollingMean computes a trailing mean over window rows ending at each row.
// Only present cells count toward the mean; a row with fewer than
// minPeriods present cells in its window is missing.
func RollingMean(cells []models.Cell, window, minPeriods int) []models.Cell {
	out := make([]models.Cell, len(cells))
	if window <= 0 {
		return out
	}
	if minPeriods < 1 {
		minPeriods = 1
	}
	for i := range cells {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var sum float64
		var n int
		for _, c := range cells[start : i+1] {
			if c.Valid {
				sum += c.Value
				n++
			}
		}
		if n >= minPeriods {
			out[i] = models.Num(sum / float64(n))
		}
	}
	return out
}

// Summarize computes one summary row per requested region, in request order.
// It fails with models.ErrColumnNotFound if any region has no column.
func Summarize(table *models.Table, regions []models.Region) ([]models.SummaryRow, error) {
	rows := make([]models.SummaryRow, 0, len(regions))
	for _, region := range regions {
		col, err := table.Column(region)
		if err != nil {
			return nil, fmt.Errorf("summarize: %w", err)
		}
		rows = append(rows, summarizeColumn(table, region, col))
	}
	return rows, nil
}

func summarizeColumn(table *models.Table, region models.Region, col []models.Cell) models.SummaryRow {
	row := models.SummaryRow{
		Region:   region.Label(),
		PeakDate: models.PeakDateNotAvailable,
	}

	total := lo.SumBy(col, func(c models.Cell) float64 { return c.Or(0) })
	row.TotalCases = truncate(total)

	peakIdx := -1
	for i, c := range col {
		if c.Valid && (peakIdx < 0 || c.Value > col[peakIdx].Value) {
			peakIdx = i
		}
	}
	if peakIdx >= 0 && col[peakIdx].Value > 0 {
		row.PeakCases = truncate(col[peakIdx].Value)
		row.PeakDate = table.Date(peakIdx).Format(models.DateLayout)
	}

	if len(col) > 0 {
		rolling := RollingMean(col, RollingWindowDays, 1)
		row.Last7dAvg = truncate(rolling[len(rolling)-1].Or(0))
	}
	// naive projection: carry the last rolling average forward
	row.ProjectedNext7d = row.Last7dAvg
	return row
}

func truncate(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Trunc(v))
}

// AddGlobalTotal sets the GlobalCases column to the per-row sum of every
// other column, missing counted as 0, and returns the same table.
// A previous GlobalCases column is replaced, never summed, so repeated
// calls give the same result.
func AddGlobalTotal(table *models.Table) *models.Table {
	sums := make([]float64, table.Len())
	for _, region := range valueRegions(table) {
		col, _ := table.Column(region)
		for i, c := range col {
			sums[i] += c.Or(0)
		}
	}
	global := lo.Map(sums, func(v float64, _ int) models.Cell { return models.Num(v) })
	// length always matches the date column
	_ = table.SetColumn(models.GlobalCasesRegion, global)
	return table
}

// RegionTotals returns the sum of every value column, GlobalCases excluded.
func RegionTotals(table *models.Table) map[models.Region]models.Cell {
	totals := make(map[models.Region]models.Cell)
	for _, region := range valueRegions(table) {
		col, _ := table.Column(region)
		totals[region] = models.Num(lo.SumBy(col, func(c models.Cell) float64 { return c.Or(0) }))
	}
	return totals
}

func valueRegions(table *models.Table) []models.Region {
	return lo.Filter(table.Regions(), func(r models.Region, _ int) bool {
		return r != models.GlobalCasesRegion
	})
}

// ResolveForecastColumn picks the column Forecast reads for region. A
// missing or "nan" province prefers (country, "nan") over (country, "").
func ResolveForecastColumn(table *models.Table, region models.Region) (models.Region, error) {
	candidates := []models.Region{region}
	if region.Province == "" || strings.EqualFold(region.Province, models.MissingProvinceMarker) {
		candidates = []models.Region{
			{Country: region.Country, Province: models.MissingProvinceMarker},
			{Country: region.Country, Province: ""},
		}
	}
	for _, c := range candidates {
		if table.HasColumn(c) {
			return c, nil
		}
	}
	return models.Region{}, fmt.Errorf("%w: %s", models.ErrColumnNotFound, candidates[len(candidates)-1])
}

// Forecast builds the rolling-average series of one region extended with
// ForecastHorizonDays constant rows holding the last rolling average.
func Forecast(table *models.Table, region models.Region) (*forecast.ForecastSeries, error) {
	resolved, err := ResolveForecastColumn(table, region)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("forecast %s: %w", resolved, models.ErrEmptyTable)
	}
	col, err := table.Column(resolved)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	rolling := RollingMean(col, RollingWindowDays, 1)
	series := &forecast.ForecastSeries{
		Region:  resolved,
		Horizon: ForecastHorizonDays,
		Points:  make([]forecast.ForecastPoint, 0, len(col)+ForecastHorizonDays),
	}
	for i, c := range col {
		series.Points = append(series.Points, forecast.ForecastPoint{
			Date:       table.Date(i),
			Cases:      c,
			RollingAvg: rolling[i],
			Forecast:   models.Missing(),
		})
	}

	lastDate := table.Date(table.Len() - 1)
	lastAvg := rolling[len(rolling)-1]
	for day := 1; day <= ForecastHorizonDays; day++ {
		series.Points = append(series.Points, forecast.ForecastPoint{
			Date:       lastDate.AddDate(0, 0, day),
			Cases:      models.Missing(),
			RollingAvg: lastAvg,
			Forecast:   lastAvg,
		})
	}
	return series, nil
}
