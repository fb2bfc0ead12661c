package transcode

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/config"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
)

// Service transcodes pending videos one at a time. Uploads signal it through
// Notify; a poll ticker is the backstop for work left pending across a
// restart. Because every dequeue goes through the repository's atomic claim,
// external ProcessNext calls and the worker can run concurrently without
// ever double-processing an asset.
type Service struct {
	assets    port.AssetRepository
	videos    port.VideoTranscoder
	bus       port.EventBus
	mediaCfg  config.MediaConfig
	pollEvery time.Duration
	logger    *slog.Logger

	notify chan struct{}
	wg     sync.WaitGroup
}

// NewService creates a new transcode service
func NewService(
	assets port.AssetRepository,
	videos port.VideoTranscoder,
	bus port.EventBus,
	mediaCfg config.MediaConfig,
	transcodeCfg config.TranscodeConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		assets:    assets,
		videos:    videos,
		bus:       bus,
		mediaCfg:  mediaCfg,
		pollEvery: transcodeCfg.PollInterval,
		logger:    logger,
		notify:    make(chan struct{}, 1),
	}
}

var _ port.TranscodeService = (*Service)(nil)

// Notify signals the worker that new work may be queued. It never blocks:
// a signal that is already pending is enough.
func (s *Service) Notify() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Start launches the single consumer goroutine. It drains the queue on
// startup, then whenever notified, then on every poll tick.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("transcode worker started", "poll_interval", s.pollEvery)

		ticker := time.NewTicker(s.pollEvery)
		defer ticker.Stop()

		s.drain(ctx)
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("transcode worker stopped")
				return
			case <-s.notify:
				s.drain(ctx)
			case <-ticker.C:
				s.drain(ctx)
			}
		}
	}()
}

// Stop waits for the worker to finish after its context was cancelled
func (s *Service) Stop() {
	s.wg.Wait()
}

// drain processes queued videos one at a time until the queue is empty
func (s *Service) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		_, err := s.ProcessNext(ctx)
		if err != nil {
			if !errors.Is(err, domain.ErrNoPendingVideo) {
				s.logger.Error("transcode run failed", "error", err)
			}
			return
		}
	}
}
