package services

import (
	"context"
	"covid-stats/config"
	"covid-stats/dao/redis"
	"covid-stats/models"
	"covid-stats/observability"
	"covid-stats/util"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
)

// SummaryRefresherService periodically reloads the case table and
// recomputes the cached summaries and forecasts of every region.
type SummaryRefresherService struct {
	caseDao   *redis.RedisCaseDAO
	tablePath string
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// NewSummaryRefresherService constructs a new refresher with dependencies.
// A nil clock means the real clock.
func NewSummaryRefresherService(
	caseDao *redis.RedisCaseDAO,
	tablePath string,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) *SummaryRefresherService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SummaryRefresherService{
		caseDao:   caseDao,
		tablePath: tablePath,
		metrics:   metrics,
		clock:     clock,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
// The loop stops when ctx is cancelled.
func (sr *SummaryRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go sr.startPeriodicJob(ctx, interval)
}

func (sr *SummaryRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := sr.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[SummaryRefresherService] Periodic job stopped.")
			return
		case <-ticker.Chan():
			log.Println("[SummaryRefresherService] Running periodic summary refresher job.")
			if err := sr.RefreshSummaries(); err != nil {
				log.Printf("[SummaryRefresherService] RefreshSummaries returned error: %v", err)
			} else {
				log.Println("[SummaryRefresherService] RefreshSummaries completed successfully.")
			}
		}
	}
}

// RefreshSummaries runs the three steps: reload table, recompute and cache,
// drop stale cache entries.
func (sr *SummaryRefresherService) RefreshSummaries() error {
	start := sr.clock.Now()

	// 1) Reload the table and cache it with its global total
	table, err := sr.reloadTable()
	if err != nil {
		sr.metrics.RefreshRuns.WithLabelValues("error").Inc()
		return err
	}

	// 2) Recompute summaries and forecasts for every region
	regions := valueRegions(table)
	if err := sr.recompute(table, regions); err != nil {
		sr.metrics.RefreshRuns.WithLabelValues("error").Inc()
		return err
	}

	// 3) Remove cache entries of regions that left the table
	sr.dropStale(regions)

	sr.metrics.RefreshRuns.WithLabelValues("success").Inc()
	sr.metrics.RefreshDuration.Observe(sr.clock.Since(start).Seconds())
	return nil
}

func (sr *SummaryRefresherService) reloadTable() (*models.Table, error) {
	log.Printf("[SummaryRefresherService] Loading case table from %s", sr.tablePath)
	table, err := util.ReadCaseTableFromJSON(sr.tablePath)
	if err != nil {
		return nil, err
	}
	AddGlobalTotal(table)
	sr.metrics.TableRegions.Set(float64(len(valueRegions(table))))
	if err := sr.caseDao.SetTable(config.CASE_TABLE_NAME, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (sr *SummaryRefresherService) recompute(table *models.Table, regions []models.Region) error {
	rows, err := Summarize(table, regions)
	if err != nil {
		return err
	}
	sr.metrics.SummariesComputed.Add(float64(len(rows)))

	log.Printf("[SummaryRefresherService] Caching summaries and forecasts for %d regions", len(regions))
	for i, region := range regions {
		if err := sr.caseDao.SetSummary(region, rows[i]); err != nil {
			log.Printf("[SummaryRefresherService] SetSummary failed for %s: %v", region, err)
			continue
		}
		if table.Len() == 0 {
			continue
		}
		s, err := Forecast(table, region)
		if err != nil {
			log.Printf("[SummaryRefresherService] Forecast failed for %s: %v", region, err)
			continue
		}
		sr.metrics.ForecastsComputed.Inc()
		if err := sr.caseDao.SetForecast(region, s); err != nil {
			log.Printf("[SummaryRefresherService] SetForecast failed for %s: %v", region, err)
		}
	}
	return nil
}

func (sr *SummaryRefresherService) dropStale(regions []models.Region) {
	current := make(map[models.Region]struct{}, len(regions))
	for _, r := range regions {
		current[r] = struct{}{}
	}

	cached, err := sr.caseDao.ListCachedSummaryRegions()
	if err != nil {
		log.Printf("[SummaryRefresherService] Error listing cached summaries: %v", err)
		return
	}
	for _, r := range cached {
		if _, ok := current[r]; ok {
			continue
		}
		log.Printf("[SummaryRefresherService] Region %s left the table, removing cache", r)
		if err := sr.caseDao.DeleteSummary(r); err != nil {
			log.Printf("[SummaryRefresherService] Failed to delete stale summary for %s: %v", r, err)
		}
	}
}
