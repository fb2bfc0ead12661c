package media_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	http2 "net/http"
	"net/http/httptest"
	"testing"

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

const testSessionID = "abcdef0123456789abcdef0123456789"

func newTestRouter(uploadService *upload.MockUploadService) http2.Handler {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := mediav1.NewMediaHandlerV1(
		uploadService,
		transcode.NewMockTranscodeService(),
		cleanup.NewMockCleanupService(),
		eventbus.NewMockEventBus(),
		discardLogger,
	)
	return chihandlers.NewRouter(discardLogger, handler, "")
}

func chunkRequest(t *testing.T, fields map[string]string, chunkData string) *http2.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, form.WriteField(name, value))
	}
	if chunkData != "" {
		part, err := form.CreateFormFile("chunk", "0")
		require.NoError(t, err)
		_, err = part.Write([]byte(chunkData))
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/chunk", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func validChunkFields() map[string]string {
	return map[string]string{
		"sessionId":   testSessionID,
		"chunkIndex":  "0",
		"totalChunks": "3",
		"filename":    "IMG_0001.jpg",
		"kind":        "image",
	}
}

func TestUploadChunkV1(t *testing.T) {

	t.Run("success - partial receipt", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("AcceptChunk", mock.Anything, mock.AnythingOfType("domain.ChunkUpload")).
			Return(&domain.ChunkReceipt{Complete: false, ChunksReceived: 1, TotalChunks: 3}, nil)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, validChunkFields(), "chunk bytes"))

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var resp mediav1.V1UploadChunkResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.False(t, resp.Complete)
		assert.Equal(t, 1, resp.ChunksReceived)
		assert.Equal(t, 3, resp.TotalChunks)
		assert.Nil(t, resp.AssetID)
		mockService.AssertExpectations(t)
	})

	t.Run("success - completing chunk returns asset id", func(t *testing.T) {
		// Arrange
		assetID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("AcceptChunk", mock.Anything, mock.AnythingOfType("domain.ChunkUpload")).
			Return(&domain.ChunkReceipt{Complete: true, ChunksReceived: 3, TotalChunks: 3, AssetID: &assetID}, nil)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, validChunkFields(), "chunk bytes"))

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var resp mediav1.V1UploadChunkResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Complete)
		require.NotNil(t, resp.AssetID)
		assert.Equal(t, assetID, *resp.AssetID)
	})

	t.Run("failure - missing chunk file", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, validChunkFields(), ""))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "AcceptChunk", mock.Anything, mock.Anything)
	})

	t.Run("failure - unknown kind", func(t *testing.T) {
		// Arrange
		fields := validChunkFields()
		fields["kind"] = "audio"

		mockService := upload.NewMockUploadService()
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, fields, "chunk bytes"))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("failure - non-integer chunkIndex", func(t *testing.T) {
		// Arrange
		fields := validChunkFields()
		fields["chunkIndex"] = "first"

		mockService := upload.NewMockUploadService()
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, fields, "chunk bytes"))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("failure - malformed clientModifiedAt", func(t *testing.T) {
		// Arrange
		fields := validChunkFields()
		fields["clientModifiedAt"] = "yesterday"

		mockService := upload.NewMockUploadService()
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, fields, "chunk bytes"))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("failure - service rejects session id", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("AcceptChunk", mock.Anything, mock.AnythingOfType("domain.ChunkUpload")).
			Return(nil, domain.ErrInvalidSessionID)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, validChunkFields(), "chunk bytes"))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("failure - storage error", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("AcceptChunk", mock.Anything, mock.AnythingOfType("domain.ChunkUpload")).
			Return(nil, context.DeadlineExceeded)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, chunkRequest(t, validChunkFields(), "chunk bytes"))

		// Assert
		assert.Equal(t, http2.StatusInternalServerError, w.Code)
	})
}
