package upload

import (
	"log/slog"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/config"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
)

type uploadService struct {
	assets     port.AssetRepository
	chunks     port.ChunkStore
	images     port.ImageProcessor
	transcodes port.TranscodeNotifier
	bus        port.EventBus
	mediaCfg   config.MediaConfig
	logger     *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	assets port.AssetRepository,
	chunks port.ChunkStore,
	images port.ImageProcessor,
	transcodes port.TranscodeNotifier,
	bus port.EventBus,
	mediaCfg config.MediaConfig,
	logger *slog.Logger,
) port.UploadService {
	return &uploadService{
		assets:     assets,
		chunks:     chunks,
		images:     images,
		transcodes: transcodes,
		bus:        bus,
		mediaCfg:   mediaCfg,
		logger:     logger,
	}
}
