package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// ChunkUpload carries one incoming chunk and the client-declared shape of
// the upload it belongs to
type ChunkUpload struct {
	SessionID        string
	Index            int
	TotalChunks      int
	Filename         string
	Kind             MediaKind
	ClientModifiedAt *time.Time
	Data             io.Reader
}

// ChunkReceipt is the result of accepting one chunk. Complete is true on the
// chunk that finished the set, in which case AssetID names the created record.
type ChunkReceipt struct {
	Complete       bool
	ChunksReceived int
	TotalChunks    int
	AssetID        *uuid.UUID
}

// SessionInfo describes one on-disk upload session as seen by the sweeper
type SessionInfo struct {
	ID      string
	ModTime time.Time
}
