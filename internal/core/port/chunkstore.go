package port

import (
	"context"
	"io"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
)

// ChunkStore is an interface to interact with per-session chunk storage
type ChunkStore interface {
	// ListIndices returns the sorted chunk indices already present for a
	// session. A session whose directory does not exist yields an empty list.
	ListIndices(ctx context.Context, sessionID string) ([]int, error)
	// WriteChunk stores one chunk blob named by index, creating the session
	// directory if absent. Chunks are write-once: an existing index returns
	// domain.ErrChunkExists and is left untouched.
	WriteChunk(ctx context.Context, sessionID string, index int, r io.Reader) error
	Count(ctx context.Context, sessionID string) (int, error)
	OpenChunk(ctx context.Context, sessionID string, index int) (io.ReadCloser, error)
	RemoveChunk(ctx context.Context, sessionID string, index int) error
	// RemoveSession removes a session directory that is expected to be empty
	RemoveSession(ctx context.Context, sessionID string) error
	// PurgeSession removes a session directory and everything in it
	PurgeSession(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]domain.SessionInfo, error)
}
