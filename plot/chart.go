// Package plot builds declarative chart descriptions from case tables,
// summaries and forecast series. It does not draw anything: a renderer
// such as util.RenderChart turns a Chart into HTML.
package plot

import "covid-stats/models"

// ChartType names the kind of chart a Chart describes.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// Line dash styles.
const (
	DashSolid = "solid"
	DashDash  = "dash"
)

// DefaultTopN is the number of bars TopNBarChart keeps when n <= 0.
const DefaultTopN = 10

// Default color palette for multi-series charts.
var defaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Chart is a render-agnostic chart description.
type Chart struct {
	Type        ChartType `json:"type"`
	Title       string    `json:"title"`
	XAxis       Axis      `json:"x_axis"`
	YAxis       Axis      `json:"y_axis"`
	Categories  []string  `json:"categories"`
	Series      []Series  `json:"series"`
	Bands       []Band    `json:"bands,omitempty"`
	Height      int       `json:"height,omitempty"`
	ShowLegend  bool      `json:"show_legend"`
	LegendTitle string    `json:"legend_title,omitempty"`
	Placeholder bool      `json:"placeholder"`
}

// Axis describes one chart axis.
type Axis struct {
	Title     string `json:"title,omitempty"`
	TickAngle int    `json:"tick_angle,omitempty"`
}

// Series is one named sequence of points drawn in a single style.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Dash   string  `json:"dash,omitempty"`
	Width  int     `json:"width,omitempty"`
	Points []Point `json:"points"`
}

// Point is one value of a series. X matches an entry of Chart.Categories.
type Point struct {
	X     string      `json:"x"`
	Y     models.Cell `json:"y"`
	Label string      `json:"label,omitempty"`
}

// Band is a shaded range along the category axis.
type Band struct {
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// IsEmpty reports whether the chart has no data points at all.
func (c *Chart) IsEmpty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

func colorFor(i int) string {
	return defaultColors[i%len(defaultColors)]
}
