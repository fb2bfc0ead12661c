package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/metrics"
)

// SweepSessions deletes chunk-store sessions whose directory modification
// time is older than the retention threshold. A failing session is recorded
// and skipped so one bad entry never halts the sweep of the rest.
func (c *cleanupService) SweepSessions(ctx context.Context, now time.Time) (int, []error) {
	sessions, err := c.chunks.Sessions(ctx)
	if err != nil {
		return 0, []error{err}
	}

	deleted := 0
	var errs []error
	for _, session := range sessions {
		age := now.Sub(session.ModTime)
		if age <= c.retention {
			continue
		}

		if purgeErr := c.chunks.PurgeSession(ctx, session.ID); purgeErr != nil {
			c.logger.Error("failed to purge abandoned session", "session", session.ID, "error", purgeErr)
			errs = append(errs, fmt.Errorf("session %s: %w", session.ID, purgeErr))
			continue
		}

		c.logger.Info("purged abandoned session", "session", session.ID, "age", age)
		metrics.SessionsSwept.Inc()
		deleted++
	}
	return deleted, errs
}
