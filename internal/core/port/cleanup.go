package port

import (
	"context"
	"time"
)

// CleanupService is service that reclaims abandoned upload sessions
type CleanupService interface {
	// SweepSessions deletes chunk-store sessions older than the retention
	// threshold. Per-session failures are collected, never raised: the sweep
	// always visits every session and returns the deleted count.
	SweepSessions(ctx context.Context, now time.Time) (int, []error)
}
