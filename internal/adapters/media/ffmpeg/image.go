package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
	"github.com/rwcarlsen/goexif/exif"
)

// thumbWidth is the fixed width of generated thumbnails
const thumbWidth = 480

// displayableExts are source formats browsers render natively; originals in
// these formats are reused as their own display rendition
var displayableExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ImageProcessor derives capture metadata and renditions from image
// originals, shelling out to ffmpeg for any pixel work
type ImageProcessor struct {
	ffmpegPath string
	runner     port.CommandRunner
	logger     *slog.Logger
}

func NewImageProcessor(ffmpegPath string, runner port.CommandRunner, logger *slog.Logger) *ImageProcessor {
	return &ImageProcessor{
		ffmpegPath: ffmpegPath,
		runner:     runner,
		logger:     logger,
	}
}

var _ port.ImageProcessor = (*ImageProcessor)(nil)

// Inspect extracts the EXIF capture date and orientation. Files without
// EXIF data are not an error: the caller falls back to client-reported times.
func (p *ImageProcessor) Inspect(ctx context.Context, path string) (*port.ImageInfo, error) {
	info := &port.ImageInfo{}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		p.logger.Debug("no exif data", "path", path, "error", err)
		return info, nil
	}

	if captured, dateErr := x.DateTime(); dateErr == nil {
		info.CaptureDate = &captured
	}

	if tag, tagErr := x.Get(exif.Orientation); tagErr == nil {
		if orientation, intErr := tag.Int(0); intErr == nil {
			info.RotationDegrees = orientationToDegrees(orientation)
		}
	}
	return info, nil
}

// orientationToDegrees maps the EXIF orientation values that are plain
// rotations. Mirrored orientations are treated as their rotation component.
func orientationToDegrees(orientation int) int {
	switch orientation {
	case 3, 4:
		return 180
	case 6, 5:
		return 90
	case 8, 7:
		return 270
	default:
		return 0
	}
}

// DisplayRendition returns the original when its format is already
// web-displayable, otherwise renders a high-quality JPEG conversion
func (p *ImageProcessor) DisplayRendition(ctx context.Context, originalPath, destDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalPath))
	if displayableExts[ext] {
		return originalPath, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create display dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(originalPath), ext)
	outPath := filepath.Join(destDir, base+".jpg")

	args := []string{
		"-y",
		"-i", originalPath,
		"-q:v", "2",
		outPath,
	}
	if _, err := p.runner.Run(ctx, p.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("failed to render display copy: %w", err)
	}
	return outPath, nil
}

// Thumbnail renders a fixed-width thumbnail
func (p *ImageProcessor) Thumbnail(ctx context.Context, originalPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create thumb dir: %w", err)
	}

	ext := filepath.Ext(originalPath)
	base := strings.TrimSuffix(filepath.Base(originalPath), ext)
	outPath := filepath.Join(destDir, base+"_thumb.jpg")

	args := []string{
		"-y",
		"-i", originalPath,
		"-vf", fmt.Sprintf("scale=%d:-2", thumbWidth),
		"-q:v", "3",
		outPath,
	}
	if _, err := p.runner.Run(ctx, p.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("failed to render thumbnail: %w", err)
	}
	return outPath, nil
}
