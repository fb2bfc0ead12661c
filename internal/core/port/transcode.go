package port

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
)

// TranscodeService is an interface to define the video transcode worker
type TranscodeService interface {
	// ProcessNext claims and transcodes at most one pending video. It
	// returns the asset it worked on with its final status, or
	// domain.ErrNoPendingVideo when the queue is empty. Safe to invoke
	// concurrently: the claim step is atomic.
	ProcessNext(ctx context.Context) (*domain.MediaAsset, error)
	TranscodeNotifier
}

// TranscodeNotifier signals the worker that new work may be available.
// Notify never blocks, so upload handlers can fire it without waiting.
type TranscodeNotifier interface {
	Notify()
}
