package media

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/google/uuid"
)

type V1TranscodeNextResponse struct {
	Processed bool       `json:"processed"`
	AssetID   *uuid.UUID `json:"assetId,omitempty"`
	Status    string     `json:"status,omitempty"`
}

// TranscodeNextV1 invokes the transcode worker once. Safe to call from a
// scheduler or repeatedly by hand: the claim step is atomic and an empty
// queue is a normal outcome.
func (h *HandlerV1) TranscodeNextV1(w http.ResponseWriter, r *http.Request) {
	asset, err := h.transcodeService.ProcessNext(r.Context())

	var resp V1TranscodeNextResponse
	switch {
	case errors.Is(err, domain.ErrNoPendingVideo):
		resp = V1TranscodeNextResponse{Processed: false}
	case err != nil:
		h.logger.Error("error processing next video", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		resp = V1TranscodeNextResponse{
			Processed: true,
			AssetID:   &asset.ID,
			Status:    string(asset.TranscodingStatus),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
