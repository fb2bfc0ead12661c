package media

import (
	"log/slog"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HandlerV1 is the handler for v1 media pipeline routes
type HandlerV1 struct {
	uploadService    port.UploadService
	transcodeService port.TranscodeService
	cleanupService   port.CleanupService
	bus              port.EventBus
	logger           *slog.Logger
}

// NewMediaHandlerV1 creates HandlerV1
func NewMediaHandlerV1(
	uploadService port.UploadService,
	transcodeService port.TranscodeService,
	cleanupService port.CleanupService,
	bus port.EventBus,
	logger *slog.Logger,
) *HandlerV1 {
	return &HandlerV1{
		uploadService:    uploadService,
		transcodeService: transcodeService,
		cleanupService:   cleanupService,
		bus:              bus,
		logger:           logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/chunk-status", h.ChunkStatusV1)
		r.Post("/chunk", h.UploadChunkV1)
		r.Post("/cleanup", h.CleanupV1)
		r.Post("/transcode/next", h.TranscodeNextV1)
	})

	// long-lived streaming connection, the timeout middleware would cut it
	router.Get("/status-stream", h.StatusStreamV1)

	return router
}
