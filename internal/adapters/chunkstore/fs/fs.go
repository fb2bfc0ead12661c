package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
)

// Store is a filesystem-backed chunk store: one directory per upload
// session, chunk blobs named by their index
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates a Store rooted at root, creating the directory if absent
func NewStore(root string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chunk store root: %w", err)
	}
	return &Store{root: root, logger: logger}, nil
}

var _ port.ChunkStore = (*Store)(nil)

func (s *Store) sessionDir(sessionID string) (string, error) {
	if !domain.ValidSessionID(sessionID) {
		return "", domain.ErrInvalidSessionID
	}
	return filepath.Join(s.root, sessionID), nil
}

// ListIndices returns the sorted chunk indices present for a session
func (s *Store) ListIndices(ctx context.Context, sessionID string) ([]int, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session dir: %w", err)
	}

	indices := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		index, convErr := strconv.Atoi(entry.Name())
		if convErr != nil {
			continue
		}
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices, nil
}

// WriteChunk stores one chunk blob. Chunks are write-once: an already
// present index returns domain.ErrChunkExists without touching the blob.
func (s *Store) WriteChunk(ctx context.Context, sessionID string, index int, r io.Reader) error {
	if index < 0 {
		return domain.ErrChunkIndexOutOfRange
	}
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	path := filepath.Join(dir, strconv.Itoa(index))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return domain.ErrChunkExists
		}
		return fmt.Errorf("failed to create chunk file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		// a half-written blob must not count toward the declared total
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Error("failed to remove partial chunk", "session", sessionID, "index", index, "error", rmErr)
		}
		return fmt.Errorf("failed to write chunk: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chunk file: %w", err)
	}
	return nil
}

// Count returns the number of chunk blobs present for a session
func (s *Store) Count(ctx context.Context, sessionID string) (int, error) {
	indices, err := s.ListIndices(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(indices), nil
}

// OpenChunk opens one chunk blob for reading
func (s *Store) OpenChunk(ctx context.Context, sessionID string, index int) (io.ReadCloser, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, strconv.Itoa(index)))
	if os.IsNotExist(err) {
		return nil, domain.ErrChunkMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk: %w", err)
	}
	return f, nil
}

// RemoveChunk deletes one chunk blob
func (s *Store) RemoveChunk(ctx context.Context, sessionID string, index int) error {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, strconv.Itoa(index))); err != nil {
		return fmt.Errorf("failed to remove chunk: %w", err)
	}
	return nil
}

// RemoveSession removes a session directory that is expected to be empty
func (s *Store) RemoveSession(ctx context.Context, sessionID string) error {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return err
	}
	return os.Remove(dir)
}

// PurgeSession removes a session directory and all chunks inside it
func (s *Store) PurgeSession(ctx context.Context, sessionID string) error {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

// Sessions enumerates all session directories with their modification times
func (s *Store) Sessions(ctx context.Context) ([]domain.SessionInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk store root: %w", err)
	}

	sessions := make([]domain.SessionInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			s.logger.Warn("failed to stat session dir", "session", entry.Name(), "error", infoErr)
			continue
		}
		sessions = append(sessions, domain.SessionInfo{
			ID:      entry.Name(),
			ModTime: info.ModTime(),
		})
	}
	return sessions, nil
}
