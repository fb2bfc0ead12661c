package media

import (
	"encoding/json"
	"net/http"
	"time"
)

type V1CleanupResponse struct {
	Deleted int      `json:"deleted"`
	Errors  []string `json:"errors"`
}

// CleanupV1 runs the abandoned-session sweeper on demand
func (h *HandlerV1) CleanupV1(w http.ResponseWriter, r *http.Request) {
	deleted, errs := h.cleanupService.SweepSessions(r.Context(), time.Now())

	resp := V1CleanupResponse{
		Deleted: deleted,
		Errors:  make([]string, 0, len(errs)),
	}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
