package redis

import (
	"covid-stats/db"
	"covid-stats/models"
	"covid-stats/models/forecast"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const CASE_TABLE_KEY_FORMAT = "case_table_v1:%s"
const SUMMARY_KEY_FORMAT = "summary_v1:%s"
const FORECAST_KEY_FORMAT = "forecast_v1:%s"

// RedisCaseDAO caches case tables and their derived summaries and forecasts.
type RedisCaseDAO struct {
	client db.RedisClient
}

// NewRedisCaseDAO initializes a RedisCaseDAO with the Redis client.
func NewRedisCaseDAO(client db.RedisClient) *RedisCaseDAO {
	return &RedisCaseDAO{client: client}
}

// RegionKey encodes a region as "country|province".
func RegionKey(r models.Region) string {
	return r.Country + "|" + r.Province
}

func regionFromKey(key string) models.Region {
	country, province, _ := strings.Cut(key, "|")
	return models.Region{Country: country, Province: province}
}

// SetTable stores a case table under a name.
func (dao *RedisCaseDAO) SetTable(name string, t *models.Table) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal case table %s: %w", name, err)
	}
	if err := dao.client.Set(fmt.Sprintf(CASE_TABLE_KEY_FORMAT, name), string(data)); err != nil {
		return fmt.Errorf("failed to set case table in redis: %w", err)
	}
	log.Printf("[RedisCaseDAO] Cached case table %s (%d rows, %d columns)", name, t.Len(), len(t.Regions()))
	return nil
}

// GetTable retrieves a cached case table by name.
func (dao *RedisCaseDAO) GetTable(name string) (*models.Table, error) {
	str, err := dao.client.Get(fmt.Sprintf(CASE_TABLE_KEY_FORMAT, name))
	if err != nil {
		return nil, fmt.Errorf("failed to get case table from redis: %w", err)
	}
	var t models.Table
	if err := json.Unmarshal([]byte(str), &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal case table JSON: %w", err)
	}
	return &t, nil
}

// SetSummary caches the summary row of a region.
func (dao *RedisCaseDAO) SetSummary(region models.Region, row models.SummaryRow) error {
	key := fmt.Sprintf(SUMMARY_KEY_FORMAT, RegionKey(region))
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal summary for %s: %w", region, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set summary in redis: %w", err)
	}
	return nil
}

// GetSummary retrieves the cached summary row of a region.
func (dao *RedisCaseDAO) GetSummary(region models.Region) (*models.SummaryRow, error) {
	key := fmt.Sprintf(SUMMARY_KEY_FORMAT, RegionKey(region))
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary from redis: %w", err)
	}
	var row models.SummaryRow
	if err := json.Unmarshal([]byte(str), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary JSON: %w", err)
	}
	return &row, nil
}

// ListCachedSummaryRegions returns the regions that have a cached summary.
func (dao *RedisCaseDAO) ListCachedSummaryRegions() ([]models.Region, error) {
	prefix := fmt.Sprintf(SUMMARY_KEY_FORMAT, "")
	keys, err := dao.client.Keys(prefix + "*")
	if err != nil {
		return nil, fmt.Errorf("failed to list summary keys: %w", err)
	}
	regions := make([]models.Region, 0, len(keys))
	for _, k := range keys {
		regions = append(regions, regionFromKey(strings.TrimPrefix(k, prefix)))
	}
	return regions, nil
}

// DeleteSummary removes the cached summary and forecast of a region.
func (dao *RedisCaseDAO) DeleteSummary(region models.Region) error {
	rk := RegionKey(region)
	summaryKey := fmt.Sprintf(SUMMARY_KEY_FORMAT, rk)
	forecastKey := fmt.Sprintf(FORECAST_KEY_FORMAT, rk)
	if err := dao.client.Del(summaryKey, forecastKey); err != nil {
		return fmt.Errorf("failed to delete cache for %s: %w", region, err)
	}
	log.Printf("[RedisCaseDAO] Deleted cached summary and forecast for %s", region)
	return nil
}

// SetForecast caches a forecast series under the region it was computed for.
func (dao *RedisCaseDAO) SetForecast(region models.Region, s *forecast.ForecastSeries) error {
	key := fmt.Sprintf(FORECAST_KEY_FORMAT, RegionKey(region))
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast for %s: %w", region, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set forecast in redis: %w", err)
	}
	return nil
}

// GetForecast retrieves the cached forecast series of a region.
func (dao *RedisCaseDAO) GetForecast(region models.Region) (*forecast.ForecastSeries, error) {
	key := fmt.Sprintf(FORECAST_KEY_FORMAT, RegionKey(region))
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast from redis: %w", err)
	}
	var s forecast.ForecastSeries
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forecast JSON: %w", err)
	}
	return &s, nil
}
