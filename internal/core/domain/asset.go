package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaKind represents the kind of an uploaded media asset
type MediaKind string

const (
	MediaKindImage   MediaKind = "image"
	MediaKindVideo   MediaKind = "video"
	MediaKindUnknown MediaKind = "unknown"
)

// ParseMediaKind parses a client-supplied kind string
func ParseMediaKind(s string) MediaKind {
	switch s {
	case "image":
		return MediaKindImage
	case "video":
		return MediaKindVideo
	default:
		return MediaKindUnknown
	}
}

// TranscodingStatus represents the processing state of a media asset
type TranscodingStatus string

const (
	TranscodingStatusPending    TranscodingStatus = "pending"
	TranscodingStatusProcessing TranscodingStatus = "processing"
	TranscodingStatusCompleted  TranscodingStatus = "completed"
	TranscodingStatusFailed     TranscodingStatus = "failed"
)

// CanTransitionTo reports whether the status machine allows moving to next.
// Statuses only ever move forward: pending -> processing -> completed|failed.
func (s TranscodingStatus) CanTransitionTo(next TranscodingStatus) bool {
	switch s {
	case TranscodingStatusPending:
		return next == TranscodingStatusProcessing
	case TranscodingStatusProcessing:
		return next == TranscodingStatusCompleted || next == TranscodingStatusFailed
	default:
		return false
	}
}

// MediaAsset represents a single uploaded photo or video and its renditions
type MediaAsset struct {
	ID                uuid.UUID
	Kind              MediaKind
	OriginalPath      string
	DisplayPath       *string
	ThumbPath         *string
	RotationDegrees   int
	CaptureDate       *time.Time
	UploadedAt        time.Time
	UpdatedAt         time.Time
	TranscodingStatus TranscodingStatus
}
