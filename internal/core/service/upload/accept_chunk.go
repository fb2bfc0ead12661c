package upload

import (
	"context"
	"errors"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/metrics"
)

// AcceptChunk stores one chunk. When it is the chunk that completes the
// declared set, assembly and media processing run before this returns, so a
// successful complete receipt always refers to a durable asset record.
func (s *uploadService) AcceptChunk(ctx context.Context, up domain.ChunkUpload) (*domain.ChunkReceipt, error) {
	if up.Kind != domain.MediaKindImage && up.Kind != domain.MediaKindVideo {
		return nil, domain.ErrInvalidMediaKind
	}
	if !domain.ValidSessionID(up.SessionID) {
		return nil, domain.ErrInvalidSessionID
	}
	if up.TotalChunks < 1 || up.Index < 0 || up.Index >= up.TotalChunks {
		return nil, domain.ErrChunkIndexOutOfRange
	}

	err := s.chunks.WriteChunk(ctx, up.SessionID, up.Index, up.Data)
	switch {
	case errors.Is(err, domain.ErrChunkExists):
		// a resumed client re-sent an index we already have; keep the
		// existing blob and fall through to the completeness check
		s.logger.Debug("duplicate chunk ignored", "session", up.SessionID, "index", up.Index)
	case err != nil:
		return nil, err
	default:
		metrics.ChunksAccepted.Inc()
	}

	count, err := s.chunks.Count(ctx, up.SessionID)
	if err != nil {
		return nil, err
	}
	if count < up.TotalChunks {
		return &domain.ChunkReceipt{
			Complete:       false,
			ChunksReceived: count,
			TotalChunks:    up.TotalChunks,
		}, nil
	}

	originalPath, err := s.assemble(ctx, up.SessionID, up.TotalChunks, up.Filename)
	if err != nil {
		// the session is left intact: the same upload can be retried, or
		// the sweeper reclaims it eventually
		return nil, err
	}

	asset, err := s.process(ctx, originalPath, up)
	if err != nil {
		return nil, err
	}

	return &domain.ChunkReceipt{
		Complete:       true,
		ChunksReceived: count,
		TotalChunks:    up.TotalChunks,
		AssetID:        &asset.ID,
	}, nil
}
