package upload

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
)

// ListReceivedChunks reports which chunk indices are already stored for a
// session, so a resuming client can skip them
func (s *uploadService) ListReceivedChunks(ctx context.Context, sessionID string) ([]int, error) {
	if !domain.ValidSessionID(sessionID) {
		return nil, domain.ErrInvalidSessionID
	}
	return s.chunks.ListIndices(ctx, sessionID)
}
