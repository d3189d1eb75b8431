package scheduler

import (
	"context"
	"log"
	"time"

	authRepo "campus_events_backend/internals/features/users/auth/repository"

	"gorm.io/gorm"
)

const cleanupBatch = 500

// StartSessionCleanupScheduler purges expired sessions every interval until ctx is done.
func StartSessionCleanupScheduler(ctx context.Context, db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			PurgeExpiredSessions(ctx, db, time.Now().UTC())
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] session cleanup stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}

// PurgeExpiredSessions deletes in batches and returns the number removed.
func PurgeExpiredSessions(ctx context.Context, db *gorm.DB, now time.Time) int64 {
	var total int64
	for {
		n, err := authRepo.DeleteExpiredSessions(db.WithContext(ctx), now, cleanupBatch)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[CLEANUP ERROR] delete expired sessions: %v", err)
			}
			return total
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		log.Printf("[CLEANUP] %d expired sessions removed", total)
	}
	return total
}
