package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/google/uuid"
)

// process branches on asset kind after assembly. Images are fully processed
// here, inside the request that completed the set; videos only get a pending
// record and a worker nudge so the response never waits on a transcode.
func (s *uploadService) process(ctx context.Context, originalPath string, up domain.ChunkUpload) (*domain.MediaAsset, error) {
	switch up.Kind {
	case domain.MediaKindImage:
		return s.processImage(ctx, originalPath, up)
	case domain.MediaKindVideo:
		return s.processVideo(ctx, originalPath)
	default:
		return nil, domain.ErrInvalidMediaKind
	}
}

func (s *uploadService) processImage(ctx context.Context, originalPath string, up domain.ChunkUpload) (*domain.MediaAsset, error) {
	info, err := s.images.Inspect(ctx, originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect image: %w", err)
	}

	captureDate := info.CaptureDate
	if captureDate == nil {
		captureDate = up.ClientModifiedAt
	}

	displayPath, err := s.images.DisplayRendition(ctx, originalPath, s.mediaCfg.DisplayDir())
	if err != nil {
		return nil, err
	}
	thumbPath, err := s.images.Thumbnail(ctx, originalPath, s.mediaCfg.ThumbsDir())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	asset := domain.MediaAsset{
		ID:                uuid.New(),
		Kind:              domain.MediaKindImage,
		OriginalPath:      originalPath,
		DisplayPath:       &displayPath,
		ThumbPath:         &thumbPath,
		RotationDegrees:   info.RotationDegrees,
		CaptureDate:       captureDate,
		UploadedAt:        now,
		UpdatedAt:         now,
		TranscodingStatus: domain.TranscodingStatusCompleted,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *uploadService) processVideo(ctx context.Context, originalPath string) (*domain.MediaAsset, error) {
	now := time.Now().UTC()
	asset := domain.MediaAsset{
		ID:                uuid.New(),
		Kind:              domain.MediaKindVideo,
		OriginalPath:      originalPath,
		UploadedAt:        now,
		UpdatedAt:         now,
		TranscodingStatus: domain.TranscodingStatusPending,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}

	s.bus.Publish(domain.StatusChange{AssetID: asset.ID, Status: domain.TranscodingStatusPending})
	s.transcodes.Notify()
	return &asset, nil
}
