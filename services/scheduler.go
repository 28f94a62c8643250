// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduledJobs runs the recurring batch work: daily settlement
// and a nightly standings refresh that also settles opportunistically.
// No run-to-run ordering is needed — settlement is re-entrant, and the
// refreshes are idempotent bulk replaces.
func StartScheduledJobs(settler *SettlementService, content *ContentService) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			count, err := settler.SettlePredictions()
			if err != nil {
				log.Printf("[Scheduler] daily settlement failed: %v", err)
				return
			}
			log.Printf("[Scheduler] daily settlement awarded %d prediction(s)", count)
		}),
	)

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			rows, err := content.Source.Standings(ctx)
			if err != nil {
				log.Printf("[Scheduler] standings refresh skipped: %v", err)
				return
			}
			if err := content.replaceStandings(rows); err != nil {
				log.Printf("[Scheduler] standings refresh failed: %v", err)
				return
			}
			log.Printf("[Scheduler] standings refreshed (%d rows)", len(rows))

			if _, err := settler.SettlePredictions(); err != nil {
				log.Printf("[Scheduler] opportunistic settlement failed: %v", err)
			}
		}),
	)
}
