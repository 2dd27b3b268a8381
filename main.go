package main

import (
	"context"
	"covid-stats/config"
	"covid-stats/di"
	"covid-stats/util"
	"log"
	"os"
)

// printStartupSummary logs a short summary of every region once the cache is warm.
func printStartupSummary(container *di.Container) {
	regions, err := container.CaseStatsService.Regions()
	if err != nil {
		log.Printf("[MAIN] Could not list regions: %v", err)
		return
	}
	rows, err := container.CaseStatsService.Summaries(regions)
	if err != nil {
		log.Printf("[MAIN] Could not summarize regions: %v", err)
		return
	}
	util.PrintSummaryRowsPartially(rows)
}

func main() {
	container := di.NewContainer(config.Env())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("[MAIN] Refreshing summaries")
	if err := container.SummaryRefresherService.RefreshSummaries(); err != nil {
		log.Printf("[MAIN] Initial refresh failed: %v", err)
	} else {
		printStartupSummary(container)
	}

	interval := config.RefreshInterval()
	log.Printf("[MAIN] Starting periodic refresh every %s", interval)
	container.SummaryRefresherService.StartPeriodicJob(ctx, interval)

	log.Println("[MAIN] Starting server")
	if err := container.CaseStatsHttpServer.Start(); err != nil {
		log.Printf("[MAIN] Server stopped: %v", err)
		cancel()
		os.Exit(1)
	}
}
