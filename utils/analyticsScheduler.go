package utils

import (
	"fmt"
	"log"

	"academy/config"
	"academy/services"

	"github.com/robfig/cron/v3"
)

// StartAnalyticsScheduler refreshes the cached analytics snapshot on a fixed
// interval. The interval is the documented staleness bound for dashboard
// reads served from the cache.
func StartAnalyticsScheduler(svc *services.Service) *cron.Cron {
	minutes := config.AppConfig.AnalyticsRefreshMinutes
	if minutes <= 0 {
		minutes = 15
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %dm", minutes)
	_, err := c.AddFunc(spec, func() {
		if _, err := svc.RefreshSnapshot(); err != nil {
			log.Printf("analytics snapshot refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("failed to schedule analytics refresh: %v", err)
		return c
	}

	// Warm the cache once at boot so the first dashboard read is not empty.
	go func() {
		if _, err := svc.RefreshSnapshot(); err != nil {
			log.Printf("initial analytics snapshot failed: %v", err)
		}
	}()

	c.Start()
	log.Printf("Analytics scheduler started (every %d minutes)", minutes)
	return c
}
