package util

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"covid-stats/models"
	"covid-stats/plot"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const chartWidth = "900px"

// missingPoint is how echarts expects a gap in a series.
const missingPoint = "-"

type renderer interface {
	Render(w io.Writer) error
}

// RenderChart writes a chart description as a standalone HTML page.
func RenderChart(c *plot.Chart, w io.Writer) error {
	r, err := toEcharts(c)
	if err != nil {
		return err
	}
	if err := r.Render(w); err != nil {
		return fmt.Errorf("failed to render chart %q: %w", c.Title, err)
	}
	return nil
}

// RenderChartsPage writes several chart descriptions into one HTML page.
func RenderChartsPage(title string, w io.Writer, cs ...*plot.Chart) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, c := range cs {
		switch c.Type {
		case plot.ChartBar:
			page.AddCharts(newBar(c))
		case plot.ChartLine:
			page.AddCharts(newLine(c))
		default:
			return fmt.Errorf("unsupported chart type %q", c.Type)
		}
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render page %q: %w", title, err)
	}
	return nil
}

func toEcharts(c *plot.Chart) (renderer, error) {
	switch c.Type {
	case plot.ChartBar:
		return newBar(c), nil
	case plot.ChartLine:
		return newLine(c), nil
	default:
		return nil, fmt.Errorf("unsupported chart type %q", c.Type)
	}
}

func globalOptions(c *plot.Chart) []charts.GlobalOpts {
	height := "500px"
	if c.Height > 0 {
		height = strconv.Itoa(c.Height) + "px"
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     chartWidth,
			Height:    height,
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XAxis.Title}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YAxis.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(c.ShowLegend)}),
	}
}

func newBar(c *plot.Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(c)...)
	bar.SetXAxis(c.Categories)

	for _, s := range c.Series {
		data := make([]opts.BarData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.BarData{Name: p.Label, Value: pointValue(p.Y)})
		}
		bar.AddSeries(s.Name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "top",
				Formatter: "{b}",
			}),
		)
	}
	return bar
}

func newLine(c *plot.Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(c)...)
	line.SetXAxis(c.Categories)

	for i, s := range c.Series {
		data := alignToCategories(c.Categories, s.Points)
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: s.Color,
				Width: float32(lineWidth(s.Width)),
				Type:  dashType(s.Dash),
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		}
		// bands are drawn behind the first series
		if i == 0 {
			ymax := maxValue(c.Series)
			for _, b := range c.Bands {
				seriesOpts = append(seriesOpts,
					charts.WithMarkAreaNameCoordItemOpts(opts.MarkAreaNameCoordItem{
						Coordinate0: []interface{}{b.Start, 0},
						Coordinate1: []interface{}{b.End, ymax},
					}),
					charts.WithMarkAreaStyleOpts(opts.MarkAreaStyle{
						ItemStyle: &opts.ItemStyle{Color: BandColor(b.Color, b.Opacity)},
					}),
				)
			}
		}
		line.AddSeries(s.Name, data, seriesOpts...)
	}
	return line
}

// alignToCategories places series points on the category axis, leaving
// gaps for categories the series does not cover.
func alignToCategories(categories []string, points []plot.Point) []opts.LineData {
	byX := make(map[string]models.Cell, len(points))
	for _, p := range points {
		byX[p.X] = p.Y
	}
	data := make([]opts.LineData, len(categories))
	for i, x := range categories {
		cell, ok := byX[x]
		if !ok {
			data[i] = opts.LineData{Value: missingPoint}
			continue
		}
		data[i] = opts.LineData{Value: pointValue(cell)}
	}
	return data
}

func pointValue(c models.Cell) interface{} {
	if !c.Valid {
		return missingPoint
	}
	return c.Value
}

func maxValue(series []plot.Series) float64 {
	var ymax float64
	for _, s := range series {
		for _, p := range s.Points {
			if p.Y.Valid && p.Y.Value > ymax {
				ymax = p.Y.Value
			}
		}
	}
	return ymax
}

func lineWidth(w int) int {
	if w <= 0 {
		return 2
	}
	return w
}

func dashType(dash string) string {
	if dash == plot.DashDash {
		return "dashed"
	}
	return "solid"
}

var namedColors = map[string][3]int{
	"red":    {255, 0, 0},
	"orange": {255, 165, 0},
	"blue":   {0, 0, 255},
	"green":  {0, 128, 0},
	"gray":   {128, 128, 128},
}

// BandColor converts a named or #rrggbb color plus opacity to an rgba() string.
// Unknown colors are returned unchanged.
func BandColor(color string, opacity float64) string {
	rgb, ok := namedColors[strings.ToLower(color)]
	if !ok {
		hex := strings.TrimPrefix(color, "#")
		if len(hex) != 6 || hex == color {
			return color
		}
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
			if err != nil {
				return color
			}
			rgb[i] = int(v)
		}
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", rgb[0], rgb[1], rgb[2], strconv.FormatFloat(opacity, 'f', -1, 64))
}
