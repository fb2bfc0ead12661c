package port

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/google/uuid"
)

// AssetRepository is an interface to define media asset repository interactions
type AssetRepository interface {
	Create(ctx context.Context, asset domain.MediaAsset) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error)
	// ClaimOldestPending atomically moves the oldest pending video to
	// processing and returns it, so that concurrent claimers can never pick
	// the same row. Returns domain.ErrNoPendingVideo when nothing is queued.
	ClaimOldestPending(ctx context.Context) (*domain.MediaAsset, error)
	// CompleteTranscode records the rendition paths and marks the asset
	// completed. Only a processing asset can complete.
	CompleteTranscode(ctx context.Context, id uuid.UUID, displayPath, thumbPath string) error
	// FailTranscode marks a processing asset failed, leaving it otherwise unchanged
	FailTranscode(ctx context.Context, id uuid.UUID) error
}
