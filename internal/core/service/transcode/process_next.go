package transcode

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/metrics"
)

// ProcessNext claims the oldest pending video and transcodes it. Encoding
// failures are recorded in the asset's status and published, never returned:
// the uploader whose request created the row is long gone, so the bus and
// the persisted status are the only observers left.
func (s *Service) ProcessNext(ctx context.Context) (*domain.MediaAsset, error) {
	asset, err := s.assets.ClaimOldestPending(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("transcoding video", "asset_id", asset.ID, "original", asset.OriginalPath)
	s.bus.Publish(domain.StatusChange{AssetID: asset.ID, Status: domain.TranscodingStatusProcessing})

	renditionPath, err := s.videos.Transcode(ctx, asset.OriginalPath, s.mediaCfg.VideosDir())
	if err != nil {
		return s.fail(ctx, asset, err)
	}

	posterPath, err := s.videos.PosterFrame(ctx, renditionPath, s.mediaCfg.ThumbsDir())
	if err != nil {
		return s.fail(ctx, asset, err)
	}

	if err := s.assets.CompleteTranscode(ctx, asset.ID, renditionPath, posterPath); err != nil {
		return nil, err
	}

	asset.DisplayPath = &renditionPath
	asset.ThumbPath = &posterPath
	asset.TranscodingStatus = domain.TranscodingStatusCompleted
	s.bus.Publish(domain.StatusChange{AssetID: asset.ID, Status: domain.TranscodingStatusCompleted})
	metrics.TranscodeResults.WithLabelValues(string(domain.TranscodingStatusCompleted)).Inc()
	s.logger.Info("transcode completed", "asset_id", asset.ID, "rendition", renditionPath)
	return asset, nil
}

func (s *Service) fail(ctx context.Context, asset *domain.MediaAsset, cause error) (*domain.MediaAsset, error) {
	s.logger.Error("transcode failed", "asset_id", asset.ID, "error", cause)

	if err := s.assets.FailTranscode(ctx, asset.ID); err != nil {
		return nil, err
	}
	asset.TranscodingStatus = domain.TranscodingStatusFailed
	s.bus.Publish(domain.StatusChange{AssetID: asset.ID, Status: domain.TranscodingStatusFailed})
	metrics.TranscodeResults.WithLabelValues(string(domain.TranscodingStatusFailed)).Inc()
	return asset, nil
}
