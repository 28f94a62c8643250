// workers/live_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"
)

// PollLiveGame refreshes the canonical live-game record on a fixed
// cadence until the context is cancelled. Each tick is independent; a
// failed sync leaves the previous record in place and the next tick
// tries again.
func PollLiveGame(ctx context.Context, sync func(context.Context) error, interval time.Duration) {
	log.Printf("[LiveSync] polling every %s", interval)

	if err := sync(ctx); err != nil {
		log.Printf("[LiveSync] initial sync failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[LiveSync] polling stopped")
			return
		case <-ticker.C:
			if err := sync(ctx); err != nil {
				log.Printf("[LiveSync] sync failed: %v", err)
			}
		}
	}
}
