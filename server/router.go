package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegionHandler serves the JSON summary and forecast routes.
type RegionHandler interface {
	GetSummaries(w http.ResponseWriter, r *http.Request)
	GetForecast(w http.ResponseWriter, r *http.Request)
	GetRegions(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// ChartHandler serves the chart routes.
type ChartHandler interface {
	GetTopChart(w http.ResponseWriter, r *http.Request)
	GetDailyChart(w http.ResponseWriter, r *http.Request)
	GetGlobalChart(w http.ResponseWriter, r *http.Request)
	GetForecastChart(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	regionHandler RegionHandler
	chartHandler  ChartHandler
	router        *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	regionHandler RegionHandler,
	chartHandler ChartHandler,
	router *mux.Router) *Router {
	return &Router{
		regionHandler: regionHandler,
		chartHandler:  chartHandler,
		router:        router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.regionHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// expects ?region={country[|province]}, repeatable
	r.router.HandleFunc("/v1/summary", r.regionHandler.GetSummaries).Methods("GET")
	r.router.HandleFunc("/v1/forecast", r.regionHandler.GetForecast).Methods("GET")
	r.router.HandleFunc("/v1/regions", r.regionHandler.GetRegions).Methods("GET")

	// chart routes render HTML, or JSON with ?format=json
	r.router.HandleFunc("/v1/charts/top", r.chartHandler.GetTopChart).Methods("GET")
	r.router.HandleFunc("/v1/charts/daily", r.chartHandler.GetDailyChart).Methods("GET")
	r.router.HandleFunc("/v1/charts/global", r.chartHandler.GetGlobalChart).Methods("GET")
	r.router.HandleFunc("/v1/charts/forecast", r.chartHandler.GetForecastChart).Methods("GET")
	r.router.HandleFunc("/v1/charts/dashboard", r.chartHandler.GetDashboard).Methods("GET")
}
