package cleanup

import (
	"log/slog"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
)

type cleanupService struct {
	chunks    port.ChunkStore
	retention time.Duration
	logger    *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(chunks port.ChunkStore, retention time.Duration, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		chunks:    chunks,
		retention: retention,
		logger:    logger,
	}
}
