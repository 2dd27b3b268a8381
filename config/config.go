package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// HTTP server config
const HTTP_ADDR = ":8080"
const HTTP_SHUTDOWN_TIMEOUT_SECONDS = 5

// Summary refresher config
const SUMMARY_REFRESHER_SCHEDULE_MINUTES = 60

// Case table config
const CASE_TABLE_NAME = "confirmed"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const CASE_TABLE_RESOURCE = "confirmed_cases_table.json"
const DASHBOARD_REGIONS_RESOURCE = "dashboard_regions.json"

// Environment names
const ENV_PROD = "prod"
const ENV_DEV = "dev"

// EnvOrDefault returns the value of the environment variable key, or def when unset.
func EnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Env returns the application environment, "dev" unless APP_ENV is set.
func Env() string {
	return EnvOrDefault("APP_ENV", ENV_DEV)
}

// RedisAddress returns the Redis address, overridable with REDIS_ADDR.
func RedisAddress() string {
	return EnvOrDefault("REDIS_ADDR", REDIS_DB_ADDRESS)
}

// HTTPAddress returns the listen address, overridable with HTTP_ADDR.
func HTTPAddress() string {
	return EnvOrDefault("HTTP_ADDR", HTTP_ADDR)
}

// RefreshInterval returns the summary refresher period. SUMMARY_REFRESH_MINUTES
// overrides the default; invalid or non-positive values are ignored.
func RefreshInterval() time.Duration {
	minutes := SUMMARY_REFRESHER_SCHEDULE_MINUTES
	if s := os.Getenv("SUMMARY_REFRESH_MINUTES"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			minutes = n
		} else {
			log.Printf("[config] ignoring invalid SUMMARY_REFRESH_MINUTES=%q", s)
		}
	}
	return time.Duration(minutes) * time.Minute
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
