package port

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
)

// UploadService is an interface to define chunked upload ingestion
type UploadService interface {
	// ListReceivedChunks reports which chunk indices the store already has
	ListReceivedChunks(ctx context.Context, sessionID string) ([]int, error)
	// AcceptChunk stores one chunk. The chunk that completes the declared
	// set triggers assembly and media processing before returning.
	AcceptChunk(ctx context.Context, upload domain.ChunkUpload) (*domain.ChunkReceipt, error)
}
