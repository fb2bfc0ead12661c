package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/metrics"
)

// assemble concatenates chunks 0..total-1 in order into the originals
// directory under a timestamp-qualified, sanitized filename. The write goes
// through a .part file renamed into place, so a crash mid-assembly never
// leaves a referenceable half-written original.
func (s *uploadService) assemble(ctx context.Context, sessionID string, total int, filename string) (string, error) {
	destDir := s.mediaCfg.OriginalsDir()
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create originals dir: %w", err)
	}

	destName := time.Now().UTC().Format("20060102-150405") + "_" + domain.SanitizeFilename(filename)
	destPath := filepath.Join(destDir, destName)
	partPath := destPath + ".part"

	out, err := os.Create(partPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination: %w", err)
	}

	abort := func(cause error) (string, error) {
		out.Close()
		if rmErr := os.Remove(partPath); rmErr != nil {
			s.logger.Error("failed to remove partial assembly", "path", partPath, "error", rmErr)
		}
		return "", cause
	}

	for index := 0; index < total; index++ {
		chunk, openErr := s.chunks.OpenChunk(ctx, sessionID, index)
		if openErr != nil {
			return abort(fmt.Errorf("failed to open chunk %d: %w", index, openErr))
		}
		_, copyErr := io.Copy(out, chunk)
		chunk.Close()
		if copyErr != nil {
			return abort(fmt.Errorf("failed to append chunk %d: %w", index, copyErr))
		}
	}

	if err := out.Sync(); err != nil {
		return abort(fmt.Errorf("failed to sync destination: %w", err))
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close destination: %w", err)
	}
	if err := os.Rename(partPath, destPath); err != nil {
		return "", fmt.Errorf("failed to finalize destination: %w", err)
	}

	// chunks are removed only after the destination is durable
	for index := 0; index < total; index++ {
		if rmErr := s.chunks.RemoveChunk(ctx, sessionID, index); rmErr != nil {
			s.logger.Warn("failed to remove chunk after assembly", "session", sessionID, "index", index, "error", rmErr)
		}
	}
	if rmErr := s.chunks.RemoveSession(ctx, sessionID); rmErr != nil {
		// best-effort, the sweeper is the backstop
		s.logger.Debug("failed to remove session dir", "session", sessionID, "error", rmErr)
	}

	metrics.AssembliesCompleted.Inc()
	s.logger.Info("session assembled", "session", sessionID, "chunks", total, "path", destPath)
	return destPath, nil
}
