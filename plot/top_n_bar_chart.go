package plot

import (
	"fmt"
	"math"
	"sort"

	"covid-stats/models"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	topNTitleFormat = "Top %d Regions by Total Cases"
	noDataTitle     = "No valid data to display"
	totalCasesAxis  = "Total Cases"
	regionAxis      = "Region"
	topNChartHeight = 420
	topNTickAngle   = -30
	topNSeriesName  = "Total"
)

var labelPrinter = message.NewPrinter(language.English)

type rankedTotal struct {
	label string
	total float64
}

// TopNBarChart ranks regions by total, highest first, and keeps the top n
// (DefaultTopN when n <= 0). Missing totals are dropped. An input with no
// usable totals yields a placeholder chart.
func TopNBarChart(totals map[models.Region]models.Cell, n int) *Chart {
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := make([]rankedTotal, 0, len(totals))
	for region, total := range totals {
		if !total.Valid {
			continue
		}
		ranked = append(ranked, rankedTotal{label: region.Label(), total: total.Value})
	}
	if len(ranked) == 0 {
		return &Chart{
			Type:        ChartBar,
			Title:       noDataTitle,
			Categories:  []string{},
			Series:      []Series{},
			Placeholder: true,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].total != ranked[j].total {
			return ranked[i].total > ranked[j].total
		}
		return ranked[i].label < ranked[j].label
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	points := lo.Map(ranked, func(r rankedTotal, _ int) Point {
		return Point{X: r.label, Y: models.Num(r.total), Label: FormatThousands(r.total)}
	})

	return &Chart{
		Type:       ChartBar,
		Title:      fmt.Sprintf(topNTitleFormat, n),
		XAxis:      Axis{Title: regionAxis, TickAngle: topNTickAngle},
		YAxis:      Axis{Title: totalCasesAxis},
		Categories: lo.Map(ranked, func(r rankedTotal, _ int) string { return r.label }),
		Series: []Series{{
			Name:   topNSeriesName,
			Color:  colorFor(0),
			Points: points,
		}},
		Height: topNChartHeight,
	}
}

// FormatThousands formats v with comma thousands separators. Whole numbers
// print without decimals.
func FormatThousands(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return labelPrinter.Sprintf("%d", int64(v))
	}
	return labelPrinter.Sprintf("%.2f", v)
}
