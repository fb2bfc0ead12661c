package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultChunkSize is the fixed chunk size of the upload protocol
	DefaultChunkSize = 5 << 20
	// DefaultMaxAttempts bounds per-chunk send attempts before the whole
	// upload fails fatally
	DefaultMaxAttempts = 10

	defaultInitialBackoff = time.Second
)

// State describes what the coordinator is doing, for progress reporting
type State string

const (
	StateUploading State = "uploading"
	StateWaiting   State = "waiting"
	StateRetrying  State = "retrying"
	StateFailed    State = "failed"
	StateDone      State = "done"
)

// Progress is one progress report during an upload
type Progress struct {
	Filename       string
	State          State
	ChunksUploaded int
	TotalChunks    int
	Attempt        int
	Err            error
}

// Config configures a Coordinator
type Config struct {
	// BaseURL is the media API prefix, e.g. http://host:8080/api/v1/media
	BaseURL        string
	Kind           domain.MediaKind
	ChunkSize      int64
	MaxAttempts    int
	InitialBackoff time.Duration
	HTTPClient     *http.Client
	WakeLock       WakeLock
	Connectivity   ConnectivityWaiter
	OnProgress     func(Progress)
	Logger         *slog.Logger
}

// Coordinator drives resumable chunked uploads against the media API. It
// uploads files strictly one at a time, with one chunk in flight, to bound
// bandwidth and CPU on constrained devices.
type Coordinator struct {
	cfg Config
}

// NewCoordinator creates a Coordinator, filling config defaults
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if cfg.WakeLock == nil {
		cfg.WakeLock = NewNopWakeLock()
	}
	if cfg.Connectivity == nil {
		cfg.Connectivity = AlwaysOnline{}
	}
	if cfg.OnProgress == nil {
		cfg.OnProgress = func(Progress) {}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Coordinator{cfg: cfg}
}

// UploadAll uploads the given files sequentially, holding the wake lock for
// the whole batch. The first fatal upload error stops the batch.
func (c *Coordinator) UploadAll(ctx context.Context, paths []string) error {
	if err := c.cfg.WakeLock.Acquire(); err != nil {
		c.cfg.Logger.Warn("failed to acquire wake lock", "error", err)
	}
	defer c.cfg.WakeLock.Release()

	for _, path := range paths {
		if err := c.UploadFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// UploadFile uploads one file, resuming any chunks the server already has
func (c *Coordinator) UploadFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	filename := filepath.Base(path)
	sessionID := domain.DeriveSessionID(filename, info.Size(), info.ModTime())

	totalChunks := int((info.Size() + c.cfg.ChunkSize - 1) / c.cfg.ChunkSize)
	if totalChunks < 1 {
		totalChunks = 1
	}

	have, err := c.fetchUploadedIndices(ctx, sessionID)
	if err != nil {
		return err
	}

	uploaded := len(have)
	for index := 0; index < totalChunks; index++ {
		// never re-send an index the server already holds
		if have[index] {
			continue
		}

		data, readErr := readChunk(f, int64(index)*c.cfg.ChunkSize, c.cfg.ChunkSize)
		if readErr != nil {
			return fmt.Errorf("failed to read chunk %d: %w", index, readErr)
		}

		if sendErr := c.sendChunkWithRetry(ctx, sessionID, filename, info.ModTime(), index, totalChunks, data); sendErr != nil {
			c.report(Progress{Filename: filename, State: StateFailed, ChunksUploaded: uploaded, TotalChunks: totalChunks, Err: sendErr})
			return sendErr
		}

		uploaded++
		c.report(Progress{Filename: filename, State: StateUploading, ChunksUploaded: uploaded, TotalChunks: totalChunks})
	}

	c.report(Progress{Filename: filename, State: StateDone, ChunksUploaded: uploaded, TotalChunks: totalChunks})
	return nil
}

func readChunk(f *os.File, offset, size int64) ([]byte, error) {
	buf := make([]byte, size)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// sendChunkWithRetry retries one chunk with exponential backoff starting at
// the configured initial interval and doubling every attempt. When the host
// is offline it blocks until connectivity returns instead of spending an
// attempt. After MaxAttempts failures the whole upload fails fatally.
func (c *Coordinator) sendChunkWithRetry(ctx context.Context, sessionID, filename string, modified time.Time, index, totalChunks int, data []byte) error {
	attempt := 0

	operation := func() error {
		if !c.cfg.Connectivity.Online() {
			c.report(Progress{Filename: filename, State: StateWaiting, TotalChunks: totalChunks})
			if waitErr := c.cfg.Connectivity.WaitOnline(ctx); waitErr != nil {
				return backoff.Permanent(waitErr)
			}
		}
		// re-acquire a silently revoked wake lock while work remains
		if !c.cfg.WakeLock.Held() {
			if lockErr := c.cfg.WakeLock.Acquire(); lockErr != nil {
				c.cfg.Logger.Warn("failed to re-acquire wake lock", "error", lockErr)
			}
		}

		attempt++
		return c.sendChunk(ctx, sessionID, filename, modified, index, totalChunks, data)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.InitialBackoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = 10 * time.Minute
	policy.MaxElapsedTime = 0

	notify := func(err error, next time.Duration) {
		c.cfg.Logger.Warn("chunk send failed, will retry", "session", sessionID, "index", index, "attempt", attempt, "backoff", next, "error", err)
		c.report(Progress{Filename: filename, State: StateRetrying, TotalChunks: totalChunks, Attempt: attempt, Err: err})
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.cfg.MaxAttempts-1)), ctx), notify)
	if err != nil {
		return fmt.Errorf("chunk %d: %w after %d attempts: %w", index, domain.ErrRetriesExhausted, attempt, err)
	}
	return nil
}

type chunkResponse struct {
	Success        bool   `json:"success"`
	Complete       bool   `json:"complete"`
	ChunksReceived int    `json:"chunksReceived"`
	TotalChunks    int    `json:"totalChunks"`
	AssetID        string `json:"assetId"`
}

func (c *Coordinator) sendChunk(ctx context.Context, sessionID, filename string, modified time.Time, index, totalChunks int, data []byte) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	fields := map[string]string{
		"sessionId":        sessionID,
		"chunkIndex":       fmt.Sprintf("%d", index),
		"totalChunks":      fmt.Sprintf("%d", totalChunks),
		"filename":         filename,
		"kind":             string(c.cfg.Kind),
		"clientModifiedAt": modified.UTC().Format(time.RFC3339),
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field: %w", err)
		}
	}

	part, err := form.CreateFormFile("chunk", fmt.Sprintf("%d", index))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write chunk data: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chunk", &body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("chunk request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("chunk rejected: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var parsed chunkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode chunk response: %w", err)
	}
	if !parsed.Success {
		return fmt.Errorf("server reported unsuccessful chunk")
	}
	return nil
}

type statusResponse struct {
	UploadedIndices []int `json:"uploadedIndices"`
}

// fetchUploadedIndices asks the server which indices it already holds
func (c *Coordinator) fetchUploadedIndices(ctx context.Context, sessionID string) (map[int]bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/chunk-status?sessionId="+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status request rejected: status %d", resp.StatusCode)
	}

	var parsed statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	have := make(map[int]bool, len(parsed.UploadedIndices))
	for _, index := range parsed.UploadedIndices {
		have[index] = true
	}
	return have, nil
}

func (c *Coordinator) report(p Progress) {
	c.cfg.OnProgress(p)
}
