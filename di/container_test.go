package di

import (
	"covid-stats/config"
	"covid-stats/db"
	"covid-stats/observability"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_DevUsesInMemoryRedis(t *testing.T) {
	c := newContainer(config.ENV_DEV, observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	require.NotNil(t, c)
	_, ok := c.RedisClient.(*db.MockRedisClient)
	assert.True(t, ok, "expected in-memory redis client outside prod")
	assert.NotNil(t, c.RedisCaseDao)
	assert.NotNil(t, c.CaseStatsService)
	assert.NotNil(t, c.SummaryRefresherService)
	assert.NotNil(t, c.RegionHandler)
	assert.NotNil(t, c.ChartHandler)
	assert.NotNil(t, c.Router)
	assert.NotNil(t, c.CaseStatsHttpServer)
}
