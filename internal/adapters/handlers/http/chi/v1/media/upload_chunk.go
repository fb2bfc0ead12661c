package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/google/uuid"
)

// maxChunkMemory bounds how much of a multipart body is buffered in memory
// before spilling to disk
const maxChunkMemory = 1 << 20

type V1UploadChunkResponse struct {
	Success        bool       `json:"success"`
	Complete       bool       `json:"complete"`
	ChunksReceived int        `json:"chunksReceived,omitempty"`
	TotalChunks    int        `json:"totalChunks,omitempty"`
	AssetID        *uuid.UUID `json:"assetId,omitempty"`
}

// UploadChunkV1 accepts one chunk of a session. The chunk that completes the
// declared set blocks on assembly and (for images) processing, so
// complete:true in the response means the asset record exists.
func (h *HandlerV1) UploadChunkV1(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxChunkMemory); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	sessionID := r.FormValue("sessionId")
	filename := r.FormValue("filename")
	kind := domain.ParseMediaKind(r.FormValue("kind"))
	if sessionID == "" || filename == "" {
		http.Error(w, "sessionId and filename are required", http.StatusBadRequest)
		return
	}
	if kind == domain.MediaKindUnknown {
		http.Error(w, "kind must be image or video", http.StatusBadRequest)
		return
	}

	chunkIndex, err := strconv.Atoi(r.FormValue("chunkIndex"))
	if err != nil {
		http.Error(w, "chunkIndex must be an integer", http.StatusBadRequest)
		return
	}
	totalChunks, err := strconv.Atoi(r.FormValue("totalChunks"))
	if err != nil {
		http.Error(w, "totalChunks must be an integer", http.StatusBadRequest)
		return
	}

	var clientModifiedAt *time.Time
	if raw := r.FormValue("clientModifiedAt"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			http.Error(w, "clientModifiedAt must be RFC3339", http.StatusBadRequest)
			return
		}
		clientModifiedAt = &parsed
	}

	chunk, _, err := r.FormFile("chunk")
	if err != nil {
		http.Error(w, "chunk file is required", http.StatusBadRequest)
		return
	}
	defer chunk.Close()

	receipt, err := h.uploadService.AcceptChunk(r.Context(), domain.ChunkUpload{
		SessionID:        sessionID,
		Index:            chunkIndex,
		TotalChunks:      totalChunks,
		Filename:         filename,
		Kind:             kind,
		ClientModifiedAt: clientModifiedAt,
		Data:             chunk,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidSessionID),
		errors.Is(err, domain.ErrInvalidMediaKind),
		errors.Is(err, domain.ErrChunkIndexOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error accepting chunk", "session", sessionID, "index", chunkIndex, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		resp := V1UploadChunkResponse{
			Success:        true,
			Complete:       receipt.Complete,
			ChunksReceived: receipt.ChunksReceived,
			TotalChunks:    receipt.TotalChunks,
			AssetID:        receipt.AssetID,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
