package plot

import (
	"fmt"
	"time"

	"covid-stats/models"
)

const (
	dailyTitle       = "Daily COVID-19 Confirmed Cases"
	dailyChartHeight = 500
	casesAxis        = "Cases"
	dateAxis         = "Date"
)

// LongRow is one (date, region label, cases) triple of a long-form table.
type LongRow struct {
	Date   time.Time   `json:"date"`
	Region string      `json:"region"`
	Cases  models.Cell `json:"cases"`
}

// Melt reshapes the requested region columns into long form, region by
// region, each in date order.
func Melt(table *models.Table, regions []models.Region) ([]LongRow, error) {
	rows := make([]LongRow, 0, len(regions)*table.Len())
	for _, region := range regions {
		col, err := table.Column(region)
		if err != nil {
			return nil, fmt.Errorf("melt: %w", err)
		}
		label := region.Label()
		for i, c := range col {
			rows = append(rows, LongRow{Date: table.Date(i), Region: label, Cases: c})
		}
	}
	return rows, nil
}

// DailyLineChart draws one line per region label over the date column.
// Regions sharing a label, or requested twice, yield a single line holding
// the later column.
func DailyLineChart(table *models.Table, regions []models.Region) (*Chart, error) {
	for _, r := range regions {
		if !table.HasColumn(r) {
			return nil, fmt.Errorf("daily chart: %w: %s", models.ErrColumnNotFound, r)
		}
	}
	rows, err := Melt(table, latestPerLabel(regions))
	if err != nil {
		return nil, err
	}

	chart := &Chart{
		Type:        ChartLine,
		Title:       dailyTitle,
		XAxis:       Axis{Title: dateAxis},
		YAxis:       Axis{Title: casesAxis},
		Categories:  formatDates(table.Dates()),
		Series:      []Series{},
		Height:      dailyChartHeight,
		ShowLegend:  true,
		LegendTitle: regionAxis,
	}

	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Region]
		if !ok {
			i = len(chart.Series)
			index[row.Region] = i
			chart.Series = append(chart.Series, Series{
				Name:  row.Region,
				Color: colorFor(i),
				Dash:  DashSolid,
			})
		}
		chart.Series[i].Points = append(chart.Series[i].Points, Point{
			X: row.Date.Format(models.DateLayout),
			Y: row.Cases,
		})
	}
	return chart, nil
}

// latestPerLabel keeps one region per label, in order of first appearance,
// holding the last region requested under that label.
func latestPerLabel(regions []models.Region) []models.Region {
	out := make([]models.Region, 0, len(regions))
	pos := make(map[string]int, len(regions))
	for _, r := range regions {
		label := r.Label()
		if i, ok := pos[label]; ok {
			out[i] = r
			continue
		}
		pos[label] = len(out)
		out = append(out, r)
	}
	return out
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(models.DateLayout)
	}
	return out
}
