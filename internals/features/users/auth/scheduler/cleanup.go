package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	helperAuth "zionhub_backend/internals/helpers/auth"
)

const cleanupInterval = 24 * time.Hour

// StartBlacklistCleanupScheduler purges blacklist rows older than ttl once a
// day until ctx is cancelled.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			runCleanup(ctx, db, ttl, time.Now())

			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] scheduler stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}

func runCleanup(ctx context.Context, db *gorm.DB, ttl time.Duration, now time.Time) {
	log.Println("[CLEANUP] purging token_blacklist...")

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := helperAuth.PurgeExpired(runCtx, db, now.Add(-ttl))
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] purge failed: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d expired tokens removed", n)
	default:
		log.Println("[CLEANUP] nothing to remove")
	}
}
