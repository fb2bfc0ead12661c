package media_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/eventbus"
	chihandlers "github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/handlers/http/chi"
	mediav1 "github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/handlers/http/chi/v1/media"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/service/cleanup"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/service/transcode"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/service/upload"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTranscodeRouter(transcodeService *transcode.MockTranscodeService) http2.Handler {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := mediav1.NewMediaHandlerV1(
		upload.NewMockUploadService(),
		transcodeService,
		cleanup.NewMockCleanupService(),
		eventbus.NewMockEventBus(),
		discardLogger,
	)
	return chihandlers.NewRouter(discardLogger, handler, "")
}

func TestTranscodeNextV1(t *testing.T) {

	t.Run("success - one video processed", func(t *testing.T) {
		// Arrange
		asset := &domain.MediaAsset{
			ID:                uuid.New(),
			Kind:              domain.MediaKindVideo,
			OriginalPath:      "/media/originals/clip.mov",
			UploadedAt:        time.Now(),
			UpdatedAt:         time.Now(),
			TranscodingStatus: domain.TranscodingStatusCompleted,
		}
		mockService := transcode.NewMockTranscodeService()
		mockService.On("ProcessNext", mock.Anything).Return(asset, nil)

		h := newTranscodeRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/transcode/next", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var resp mediav1.V1TranscodeNextResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Processed)
		require.NotNil(t, resp.AssetID)
		assert.Equal(t, asset.ID, *resp.AssetID)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("success - empty queue", func(t *testing.T) {
		// Arrange
		mockService := transcode.NewMockTranscodeService()
		mockService.On("ProcessNext", mock.Anything).Return(nil, domain.ErrNoPendingVideo)

		h := newTranscodeRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/transcode/next", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var resp mediav1.V1TranscodeNextResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Processed)
		assert.Nil(t, resp.AssetID)
	})

	t.Run("failure - repository error", func(t *testing.T) {
		// Arrange
		mockService := transcode.NewMockTranscodeService()
		mockService.On("ProcessNext", mock.Anything).Return(nil, errors.New("database locked"))

		h := newTranscodeRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/transcode/next", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusInternalServerError, w.Code)
	})
}
