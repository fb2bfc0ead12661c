package transcode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	mediamocks "github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/media"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/repository"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/config"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transcodeFixture struct {
	service *Service
	assets  *repository.MockAssetRepository
	videos  *mediamocks.MockVideoTranscoder
	bus     *recordingBus
}

// recordingBus captures published events in order
type recordingBus struct {
	events []domain.StatusChange
}

func (b *recordingBus) Publish(event domain.StatusChange) {
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe() (<-chan domain.StatusChange, func()) {
	ch := make(chan domain.StatusChange)
	return ch, func() {}
}

func newTranscodeFixture(t *testing.T) *transcodeFixture {
	t.Helper()
	f := &transcodeFixture{
		assets: repository.NewMockAssetRepository(),
		videos: mediamocks.NewMockVideoTranscoder(),
		bus:    &recordingBus{},
	}
	f.service = NewService(
		f.assets,
		f.videos,
		f.bus,
		config.MediaConfig{Root: t.TempDir()},
		config.TranscodeConfig{PollInterval: time.Minute},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func pendingVideo() *domain.MediaAsset {
	now := time.Now().UTC()
	return &domain.MediaAsset{
		ID:                uuid.New(),
		Kind:              domain.MediaKindVideo,
		OriginalPath:      "/media/originals/clip.mov",
		UploadedAt:        now,
		UpdatedAt:         now,
		TranscodingStatus: domain.TranscodingStatusProcessing,
	}
}

func TestProcessNext_NothingPending(t *testing.T) {
	// Arrange
	f := newTranscodeFixture(t)
	f.assets.On("ClaimOldestPending", mock.Anything).Return(nil, domain.ErrNoPendingVideo)

	// Act
	_, err := f.service.ProcessNext(context.Background())

	// Assert
	require.ErrorIs(t, err, domain.ErrNoPendingVideo)
	assert.Empty(t, f.bus.events)
}

func TestProcessNext_Success(t *testing.T) {
	// Arrange
	f := newTranscodeFixture(t)
	asset := pendingVideo()

	f.assets.On("ClaimOldestPending", mock.Anything).Return(asset, nil)
	f.videos.On("Transcode", mock.Anything, asset.OriginalPath, mock.Anything).
		Return("/media/video-renditions/clip.mp4", nil)
	f.videos.On("PosterFrame", mock.Anything, "/media/video-renditions/clip.mp4", mock.Anything).
		Return("/media/thumbs/clip.jpg", nil)
	f.assets.On("CompleteTranscode", mock.Anything, asset.ID, "/media/video-renditions/clip.mp4", "/media/thumbs/clip.jpg").
		Return(nil)

	// Act
	result, err := f.service.ProcessNext(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.TranscodingStatusCompleted, result.TranscodingStatus)
	require.NotNil(t, result.DisplayPath)
	assert.Equal(t, "/media/video-renditions/clip.mp4", *result.DisplayPath)
	require.NotNil(t, result.ThumbPath)
	assert.Equal(t, "/media/thumbs/clip.jpg", *result.ThumbPath)

	// a processing event then a completed event, in that order
	require.Len(t, f.bus.events, 2)
	assert.Equal(t, domain.StatusChange{AssetID: asset.ID, Status: domain.TranscodingStatusProcessing}, f.bus.events[0])
	assert.Equal(t, domain.StatusChange{AssetID: asset.ID, Status: domain.TranscodingStatusCompleted}, f.bus.events[1])
	f.assets.AssertExpectations(t)
}

func TestProcessNext_EncodeFailureIsRecordedNotReturned(t *testing.T) {
	// Arrange
	f := newTranscodeFixture(t)
	asset := pendingVideo()

	f.assets.On("ClaimOldestPending", mock.Anything).Return(asset, nil)
	f.videos.On("Transcode", mock.Anything, asset.OriginalPath, mock.Anything).
		Return("", errors.New("ffmpeg exited with code 1"))
	f.assets.On("FailTranscode", mock.Anything, asset.ID).Return(nil)

	// Act
	result, err := f.service.ProcessNext(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.TranscodingStatusFailed, result.TranscodingStatus)

	require.Len(t, f.bus.events, 2)
	assert.Equal(t, domain.TranscodingStatusProcessing, f.bus.events[0].Status)
	assert.Equal(t, domain.TranscodingStatusFailed, f.bus.events[1].Status)
	f.assets.AssertNotCalled(t, "CompleteTranscode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessNext_PosterFailureMarksFailed(t *testing.T) {
	// Arrange
	f := newTranscodeFixture(t)
	asset := pendingVideo()

	f.assets.On("ClaimOldestPending", mock.Anything).Return(asset, nil)
	f.videos.On("Transcode", mock.Anything, asset.OriginalPath, mock.Anything).
		Return("/media/video-renditions/clip.mp4", nil)
	f.videos.On("PosterFrame", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("ffmpeg exited with code 1"))
	f.assets.On("FailTranscode", mock.Anything, asset.ID).Return(nil)

	// Act
	result, err := f.service.ProcessNext(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.TranscodingStatusFailed, result.TranscodingStatus)
}

func TestWorker_NotifyDrainsQueue(t *testing.T) {
	// Arrange
	f := newTranscodeFixture(t)
	first := pendingVideo()
	second := pendingVideo()

	processed := make(chan struct{}, 2)
	f.assets.On("ClaimOldestPending", mock.Anything).Return(first, nil).Once()
	f.assets.On("ClaimOldestPending", mock.Anything).Return(second, nil).Once()
	f.assets.On("ClaimOldestPending", mock.Anything).Return(nil, domain.ErrNoPendingVideo)
	f.videos.On("Transcode", mock.Anything, mock.Anything, mock.Anything).Return("/r.mp4", nil)
	f.videos.On("PosterFrame", mock.Anything, mock.Anything, mock.Anything).Return("/t.jpg", nil)
	f.assets.On("CompleteTranscode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { processed <- struct{}{} }).
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	f.service.Start(ctx)

	// Act
	f.service.Notify()

	// Assert: the worker drains everything queued
	for i := 0; i < 2; i++ {
		select {
		case <-processed:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for worker to drain queue")
		}
	}

	cancel()
	f.service.Stop()
}
