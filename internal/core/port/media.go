package port

import (
	"context"
	"time"
)

// ImageInfo is the best-effort metadata extracted from an image original
type ImageInfo struct {
	CaptureDate     *time.Time
	RotationDegrees int
}

// ImageProcessor is an interface to define image rendition generation
type ImageProcessor interface {
	// Inspect extracts embedded capture metadata. A file without usable
	// metadata yields a zero-value info, not an error.
	Inspect(ctx context.Context, path string) (*ImageInfo, error)
	// DisplayRendition produces a web-displayable copy under destDir, or
	// returns the original path unchanged when the source format already is
	DisplayRendition(ctx context.Context, originalPath, destDir string) (string, error)
	// Thumbnail renders a fixed-width thumbnail under destDir
	Thumbnail(ctx context.Context, originalPath, destDir string) (string, error)
}

// VideoTranscoder is an interface to define video rendition generation
type VideoTranscoder interface {
	// Transcode renders a broadly web-compatible encoding under destDir
	Transcode(ctx context.Context, originalPath, destDir string) (string, error)
	// PosterFrame renders a thumbnail from a transcoded video under destDir
	PosterFrame(ctx context.Context, videoPath, destDir string) (string, error)
}

// CommandRunner runs an external command and returns its combined output
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
