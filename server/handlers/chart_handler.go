package handlers

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"covid-stats/models"
	"covid-stats/plot"
	"covid-stats/util"
)

// ChartHandler serves chart descriptions as rendered HTML pages, or as JSON
// with format=json.
type ChartHandler struct {
	stats            CaseStats
	dashboardRegions []models.Region
}

// NewChartHandler builds a ChartHandler. dashboardRegions are the regions
// drawn in the dashboard daily chart; empty means every region.
func NewChartHandler(stats CaseStats, dashboardRegions []models.Region) *ChartHandler {
	return &ChartHandler{stats: stats, dashboardRegions: dashboardRegions}
}

// GetTopChart handles GET /v1/charts/top?n={int}.
func (h *ChartHandler) GetTopChart(w http.ResponseWriter, r *http.Request) {
	n := plot.DefaultTopN
	if s := r.URL.Query().Get(TOP_N_QUERY_ARG); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			http.Error(w, "Invalid argument "+TOP_N_QUERY_ARG, http.StatusBadRequest)
			return
		}
		n = v
	}

	chart, err := h.stats.TopChart(n)
	h.writeChart(w, r, chart, err)
}

// GetDailyChart handles GET /v1/charts/daily. Without region args every
// region is plotted.
func (h *ChartHandler) GetDailyChart(w http.ResponseWriter, r *http.Request) {
	regions, err := parseRegions(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid argument "+REGION_QUERY_ARG, http.StatusBadRequest)
		return
	}
	if len(regions) == 0 {
		regions, err = h.stats.Regions()
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	chart, err := h.stats.DailyChart(regions)
	h.writeChart(w, r, chart, err)
}

// GetGlobalChart handles GET /v1/charts/global.
func (h *ChartHandler) GetGlobalChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.stats.GlobalChart()
	h.writeChart(w, r, chart, err)
}

// GetForecastChart handles GET /v1/charts/forecast?region=Country[|Province].
func (h *ChartHandler) GetForecastChart(w http.ResponseWriter, r *http.Request) {
	region, err := parseSingleRegion(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid argument "+REGION_QUERY_ARG, http.StatusBadRequest)
		return
	}

	chart, err := h.stats.ForecastChart(region)
	h.writeChart(w, r, chart, err)
}

// GetDashboard handles GET /v1/charts/dashboard: the top regions, global
// and daily charts on one page, or as a JSON array with format=json.
func (h *ChartHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	regions := h.dashboardRegions
	if len(regions) == 0 {
		var err error
		if regions, err = h.stats.Regions(); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	top, err := h.stats.TopChart(plot.DefaultTopN)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	global, err := h.stats.GlobalChart()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	daily, err := h.stats.DailyChart(regions)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	charts := []*plot.Chart{top, global, daily}

	if r.URL.Query().Get(FORMAT_QUERY_ARG) == FORMAT_JSON {
		writeJSON(w, http.StatusOK, charts)
		return
	}

	var buf bytes.Buffer
	if err := util.RenderChartsPage(DASHBOARD_TITLE, &buf, charts...); err != nil {
		log.Println("Error rendering dashboard:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (h *ChartHandler) writeChart(w http.ResponseWriter, r *http.Request, chart *plot.Chart, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if r.URL.Query().Get(FORMAT_QUERY_ARG) == FORMAT_JSON {
		writeJSON(w, http.StatusOK, chart)
		return
	}

	var buf bytes.Buffer
	if err := util.RenderChart(chart, &buf); err != nil {
		log.Println("Error rendering chart:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		log.Println("Error writing chart:", err)
	}
}
