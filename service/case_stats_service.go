package services

import (
	"covid-stats/config"
	"covid-stats/dao/redis"
	"covid-stats/db"
	"covid-stats/models"
	"covid-stats/models/forecast"
	"covid-stats/observability"
	"covid-stats/plot"
	"covid-stats/util"
	"errors"
	"fmt"
	"log"
)

// CaseStatsService serves summaries, forecasts and charts over the current
// case table, reading through the Redis cache.
type CaseStatsService struct {
	caseDao   *redis.RedisCaseDAO
	tablePath string
	metrics   *observability.Metrics
}

// NewCaseStatsService constructs a new CaseStatsService. tablePath is the
// JSON fixture used when no table is cached yet.
func NewCaseStatsService(
	caseDao *redis.RedisCaseDAO,
	tablePath string,
	metrics *observability.Metrics) *CaseStatsService {

	return &CaseStatsService{
		caseDao:   caseDao,
		tablePath: tablePath,
		metrics:   metrics,
	}
}

// CurrentTable returns the cached case table, loading and caching the
// fixture on a cache miss. The GlobalCases column is always present.
func (cs *CaseStatsService) CurrentTable() (*models.Table, error) {
	table, err := cs.caseDao.GetTable(config.CASE_TABLE_NAME)
	if err == nil {
		cs.metrics.CacheLookups.WithLabelValues("table", "hit").Inc()
		return table, nil
	}
	if !errors.Is(err, db.ErrKeyNotFound) {
		return nil, err
	}
	cs.metrics.CacheLookups.WithLabelValues("table", "miss").Inc()

	log.Printf("[CaseStatsService] No cached case table, loading %s", cs.tablePath)
	table, err = util.ReadCaseTableFromJSON(cs.tablePath)
	if err != nil {
		return nil, err
	}
	AddGlobalTotal(table)
	cs.metrics.TableRegions.Set(float64(len(valueRegions(table))))
	if err := cs.caseDao.SetTable(config.CASE_TABLE_NAME, table); err != nil {
		log.Printf("[CaseStatsService] Failed to cache case table: %v", err)
	}
	return table, nil
}

// Regions lists the value columns of the current table, GlobalCases excluded.
func (cs *CaseStatsService) Regions() ([]models.Region, error) {
	table, err := cs.CurrentTable()
	if err != nil {
		return nil, err
	}
	return valueRegions(table), nil
}

// Summaries returns one summary row per region, from cache when every
// requested region is cached, computed otherwise.
func (cs *CaseStatsService) Summaries(regions []models.Region) ([]models.SummaryRow, error) {
	if rows, ok := cs.cachedSummaries(regions); ok {
		return rows, nil
	}

	table, err := cs.CurrentTable()
	if err != nil {
		return nil, err
	}
	rows, err := Summarize(table, regions)
	if err != nil {
		cs.countLookupError(err)
		return nil, err
	}
	cs.metrics.SummariesComputed.Add(float64(len(rows)))

	for i, r := range regions {
		if err := cs.caseDao.SetSummary(r, rows[i]); err != nil {
			log.Printf("[CaseStatsService] Failed to cache summary for %s: %v", r, err)
		}
	}
	return rows, nil
}

func (cs *CaseStatsService) cachedSummaries(regions []models.Region) ([]models.SummaryRow, bool) {
	if len(regions) == 0 {
		return nil, false
	}
	rows := make([]models.SummaryRow, 0, len(regions))
	for _, r := range regions {
		row, err := cs.caseDao.GetSummary(r)
		if err != nil {
			cs.metrics.CacheLookups.WithLabelValues("summary", "miss").Inc()
			return nil, false
		}
		rows = append(rows, *row)
	}
	cs.metrics.CacheLookups.WithLabelValues("summary", "hit").Add(float64(len(rows)))
	return rows, true
}

// Forecast returns the forecast series of a region. The cache is keyed by
// the column the series is read from, so "US" and "US|nan" share one entry.
func (cs *CaseStatsService) Forecast(region models.Region) (*forecast.ForecastSeries, error) {
	table, err := cs.CurrentTable()
	if err != nil {
		return nil, err
	}
	resolved, err := ResolveForecastColumn(table, region)
	if err != nil {
		cs.countLookupError(err)
		return nil, fmt.Errorf("forecast: %w", err)
	}

	if s, err := cs.caseDao.GetForecast(resolved); err == nil {
		cs.metrics.CacheLookups.WithLabelValues("forecast", "hit").Inc()
		return s, nil
	}
	cs.metrics.CacheLookups.WithLabelValues("forecast", "miss").Inc()

	s, err := Forecast(table, resolved)
	if err != nil {
		cs.countLookupError(err)
		return nil, err
	}
	cs.metrics.ForecastsComputed.Inc()
	if err := cs.caseDao.SetForecast(resolved, s); err != nil {
		log.Printf("[CaseStatsService] Failed to cache forecast for %s: %v", resolved, err)
	}
	return s, nil
}

// TopChart builds the top-n bar chart over region totals.
func (cs *CaseStatsService) TopChart(n int) (*plot.Chart, error) {
	table, err := cs.CurrentTable()
	if err != nil {
		return nil, err
	}
	cs.metrics.ChartsBuilt.WithLabelValues("top").Inc()
	return plot.TopNBarChart(RegionTotals(table), n), nil
}

// DailyChart builds the multi-region daily cases line chart.
func (cs *CaseStatsService) DailyChart(regions []models.Region) (*plot.Chart, error) {
	table, err := cs.CurrentTable()
	if err != nil {
		return nil, err
	}
	chart, err := plot.DailyLineChart(table, regions)
	if err != nil {
		cs.countLookupError(err)
		return nil, err
	}
	cs.metrics.ChartsBuilt.WithLabelValues("daily").Inc()
	return chart, nil
}

// GlobalChart builds the global cases line chart.
func (cs *CaseStatsService) GlobalChart() (*plot.Chart, error) {
	table, err := cs.CurrentTable()
	if err != nil {
		return nil, err
	}
	chart, err := plot.GlobalLineChart(table)
	if err != nil {
		return nil, fmt.Errorf("global chart: %w", err)
	}
	cs.metrics.ChartsBuilt.WithLabelValues("global").Inc()
	return chart, nil
}

// ForecastChart builds the rolling average and forecast chart of a region.
func (cs *CaseStatsService) ForecastChart(region models.Region) (*plot.Chart, error) {
	s, err := cs.Forecast(region)
	if err != nil {
		return nil, err
	}
	cs.metrics.ChartsBuilt.WithLabelValues("forecast").Inc()
	return plot.ForecastChart(s, region), nil
}

func (cs *CaseStatsService) countLookupError(err error) {
	if errors.Is(err, models.ErrColumnNotFound) {
		cs.metrics.LookupErrors.Inc()
		log.Printf("[CaseStatsService] Lookup failed: %v", err)
	}
}
