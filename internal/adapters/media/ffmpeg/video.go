package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
)

// VideoTranscoder renders web-playable video renditions and poster frames
// with ffmpeg
type VideoTranscoder struct {
	ffmpegPath string
	runner     port.CommandRunner
	logger     *slog.Logger
}

func NewVideoTranscoder(ffmpegPath string, runner port.CommandRunner, logger *slog.Logger) *VideoTranscoder {
	return &VideoTranscoder{
		ffmpegPath: ffmpegPath,
		runner:     runner,
		logger:     logger,
	}
}

var _ port.VideoTranscoder = (*VideoTranscoder)(nil)

// Transcode renders an H.264/AAC MP4 that plays in any current browser
func (t *VideoTranscoder) Transcode(ctx context.Context, originalPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create rendition dir: %w", err)
	}

	ext := filepath.Ext(originalPath)
	base := strings.TrimSuffix(filepath.Base(originalPath), ext)
	outPath := filepath.Join(destDir, base+".mp4")

	args := []string{
		"-y",
		"-i", originalPath,
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-c:a", "aac",
		"-b:a", "128k",
		outPath,
	}
	if _, err := t.runner.Run(ctx, t.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("failed to transcode video: %w", err)
	}
	return outPath, nil
}

// PosterFrame grabs a thumbnail from the transcoded output
func (t *VideoTranscoder) PosterFrame(ctx context.Context, videoPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create thumb dir: %w", err)
	}

	ext := filepath.Ext(videoPath)
	base := strings.TrimSuffix(filepath.Base(videoPath), ext)
	outPath := filepath.Join(destDir, base+"_poster.jpg")

	args := []string{
		"-y",
		"-ss", "00:00:01",
		"-i", videoPath,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:-2", thumbWidth),
		"-q:v", "3",
		outPath,
	}
	if _, err := t.runner.Run(ctx, t.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("failed to render poster frame: %w", err)
	}
	return outPath, nil
}
