package plot

import (
	"fmt"

	"covid-stats/models"
)

const (
	globalTitle       = "Global COVID-19 Confirmed Cases Over Time"
	globalColor       = "#1f77b4"
	confirmedAxis     = "Confirmed Cases"
	globalChartHeight = 500
)

// GlobalLineChart draws the GlobalCases column over time. Column keys are
// flattened first, so the column is found under its plain or flattened
// name. Rows with a missing date or value are dropped.
func GlobalLineChart(table *models.Table) (*Chart, error) {
	flat := table.Flatten()
	values, ok := flat.Lookup(models.GlobalCasesColumn, models.GlobalCasesColumn+"_")
	if !ok {
		return nil, fmt.Errorf("global chart: %w: %s", models.ErrColumnNotFound, models.GlobalCasesColumn)
	}

	series := Series{Name: models.GlobalCasesColumn, Color: globalColor, Dash: DashSolid}
	categories := make([]string, 0, len(flat.Dates))
	for i, d := range flat.Dates {
		if d.IsZero() || !values[i].Valid {
			continue
		}
		x := d.Format(models.DateLayout)
		categories = append(categories, x)
		series.Points = append(series.Points, Point{X: x, Y: values[i]})
	}

	return &Chart{
		Type:       ChartLine,
		Title:      globalTitle,
		XAxis:      Axis{Title: dateAxis},
		YAxis:      Axis{Title: confirmedAxis},
		Categories: categories,
		Series:     []Series{series},
		Height:     globalChartHeight,
	}, nil
}
