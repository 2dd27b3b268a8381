package handlers

import (
	"log"
	"net/http"
)

type RegionHandler struct {
	stats CaseStats
}

func NewRegionHandler(stats CaseStats) *RegionHandler {
	return &RegionHandler{stats: stats}
}

// GetSummaries handles GET /v1/summary. Without region args every region
// of the table is summarized.
func (h *RegionHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	// 1) Parse query args
	regions, err := parseRegions(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid argument "+REGION_QUERY_ARG, http.StatusBadRequest)
		return
	}

	// 2) Default to all regions
	if len(regions) == 0 {
		regions, err = h.stats.Regions()
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	// 3) Summarize and write JSON
	rows, err := h.stats.Summaries(regions)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetForecast handles GET /v1/forecast?region=Country[|Province].
func (h *RegionHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	region, err := parseSingleRegion(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid argument "+REGION_QUERY_ARG, http.StatusBadRequest)
		return
	}

	series, err := h.stats.Forecast(region)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// GetRegions handles GET /v1/regions.
func (h *RegionHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.stats.Regions()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regions)
}

// Ping handles GET /ping
func (h *RegionHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
