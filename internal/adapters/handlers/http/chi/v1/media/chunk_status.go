package media

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
)

type V1ChunkStatusResponse struct {
	UploadedIndices []int `json:"uploadedIndices"`
}

// ChunkStatusV1 reports which chunk indices the server already holds for a
// session. An unknown session is not an error: it yields an empty list so a
// fresh upload and a resume go through the same client path.
func (h *HandlerV1) ChunkStatusV1(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	indices, err := h.uploadService.ListReceivedChunks(r.Context(), sessionID)
	switch {
	case errors.Is(err, domain.ErrInvalidSessionID):
		http.Error(w, "invalid sessionId", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error listing received chunks", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		resp := V1ChunkStatusResponse{UploadedIndices: indices}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
