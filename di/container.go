package di

import (
	"context"
	"covid-stats/config"
	"covid-stats/dao/redis"
	"covid-stats/db"
	"covid-stats/models"
	"covid-stats/observability"
	"covid-stats/server"
	"covid-stats/server/handlers"
	services "covid-stats/service"
	"covid-stats/util"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient             db.RedisClient
	RedisCaseDao            *redis.RedisCaseDAO
	Metrics                 *observability.Metrics
	CaseStatsService        *services.CaseStatsService
	SummaryRefresherService *services.SummaryRefresherService
	RegionHandler           *handlers.RegionHandler
	ChartHandler            *handlers.ChartHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	CaseStatsHttpServer     *server.CaseStatsHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	return newContainer(env, observability.NewMetrics(), clockwork.NewRealClock())
}

func newContainer(env string, metrics *observability.Metrics, clock clockwork.Clock) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	// Initialize Redis client - in-memory outside prod
	var redisClient db.RedisClient
	if env != config.ENV_PROD {
		log.Printf("Using in-memory redis client")
		redisClient = db.NewMockRedisClient(ctx)
	} else {
		log.Printf("Using redis at %s", config.RedisAddress())
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddress(),
			Password: config.REDIS_DB_PASSWORD,
			DB:       config.REDIS_DB,
		})
		redisClient = db.NewGoRedisClient(ctx, redisInternalClient)
	}
	if err := redisClient.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Redis Case DAO
	redisCaseDao := redis.NewRedisCaseDAO(redisClient)

	tablePath := config.GetResourcePath(config.CASE_TABLE_RESOURCE)

	// Initialize service layer
	caseStatsService := services.NewCaseStatsService(redisCaseDao, tablePath, metrics)
	summaryRefresherService := services.NewSummaryRefresherService(redisCaseDao, tablePath, metrics, clock)

	// Initialize handlers
	regionHandler := handlers.NewRegionHandler(caseStatsService)
	chartHandler := handlers.NewChartHandler(caseStatsService, loadDashboardRegions())

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(regionHandler, chartHandler, muxRouter)

	// Initialize http server
	caseStatsHttpServer := server.NewCaseStatsHttpServer(
		router,
		muxRouter,
		config.HTTPAddress(),
		config.HTTP_SHUTDOWN_TIMEOUT_SECONDS*time.Second,
	)

	return &Container{
		RedisClient:             redisClient,
		RedisCaseDao:            redisCaseDao,
		Metrics:                 metrics,
		CaseStatsService:        caseStatsService,
		SummaryRefresherService: summaryRefresherService,
		RegionHandler:           regionHandler,
		ChartHandler:            chartHandler,
		MuxRouter:               muxRouter,
		Router:                  router,
		CaseStatsHttpServer:     caseStatsHttpServer,
	}
}

// loadDashboardRegions reads the dashboard region list. Without it the
// dashboard plots every region.
func loadDashboardRegions() []models.Region {
	path := config.GetResourcePath(config.DASHBOARD_REGIONS_RESOURCE)
	regions, err := util.ReadRegionsFromJSON(path)
	if err != nil {
		log.Printf("No dashboard regions loaded, plotting all regions: %v", err)
		return nil
	}
	log.Printf("Loaded %d dashboard regions from %s", len(regions), path)
	return regions
}
