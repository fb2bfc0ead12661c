package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
	"github.com/google/uuid"
)

// SQLQuerier abstracts *sql.DB and *sql.Tx
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlAssetRepository struct {
	db SQLQuerier
}

// NewSqlAssetRepository creates sqlAssetRepository that implements port.AssetRepository
func NewSqlAssetRepository(db SQLQuerier) port.AssetRepository {
	return &sqlAssetRepository{db: db}
}

const assetColumns = `id, kind, original_path, display_path, thumb_path,
       rotation_degrees, capture_date, uploaded_at, updated_at, transcoding_status`

// Create inserts a new media asset row
func (s *sqlAssetRepository) Create(ctx context.Context, asset domain.MediaAsset) error {
	query := `INSERT INTO media_assets (id, kind, original_path, display_path, thumb_path,
                  rotation_degrees, capture_date, uploaded_at, updated_at, transcoding_status)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		asset.ID.String(),
		string(asset.Kind),
		asset.OriginalPath,
		asset.DisplayPath,
		asset.ThumbPath,
		asset.RotationDegrees,
		asset.CaptureDate,
		asset.UploadedAt,
		asset.UpdatedAt,
		string(asset.TranscodingStatus),
	)
	if err != nil {
		return fmt.Errorf("error inserting media asset: %w", err)
	}
	return nil
}

// FindByID finds an asset by id
func (s *sqlAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM media_assets WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id.String())
	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// ClaimOldestPending atomically flips the oldest pending video to processing
// and returns it. The conditional UPDATE is what makes concurrent claimers
// safe: only one of them can move a given row out of pending.
func (s *sqlAssetRepository) ClaimOldestPending(ctx context.Context) (*domain.MediaAsset, error) {
	query := `UPDATE media_assets
              SET transcoding_status = 'processing', updated_at = ?
              WHERE id = (
                  SELECT id FROM media_assets
                  WHERE kind = 'video' AND transcoding_status = 'pending'
                  ORDER BY uploaded_at, id
                  LIMIT 1
              )
              AND transcoding_status = 'pending'
              RETURNING ` + assetColumns

	row := s.db.QueryRowContext(ctx, query, time.Now().UTC())
	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoPendingVideo
		}
		return nil, fmt.Errorf("error claiming pending video: %w", err)
	}
	return asset, nil
}

// CompleteTranscode records rendition paths and marks the asset completed.
// Guarded on the processing state so a finished row can never move again.
func (s *sqlAssetRepository) CompleteTranscode(ctx context.Context, id uuid.UUID, displayPath, thumbPath string) error {
	query := `UPDATE media_assets
              SET transcoding_status = 'completed', display_path = ?, thumb_path = ?, updated_at = ?
              WHERE id = ? AND transcoding_status = 'processing'`

	result, err := s.db.ExecContext(ctx, query, displayPath, thumbPath, time.Now().UTC(), id.String())
	if err != nil {
		return fmt.Errorf("error completing transcode: %w", err)
	}
	return requireRow(result)
}

// FailTranscode marks a processing asset failed, leaving it otherwise unchanged
func (s *sqlAssetRepository) FailTranscode(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE media_assets
              SET transcoding_status = 'failed', updated_at = ?
              WHERE id = ? AND transcoding_status = 'processing'`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id.String())
	if err != nil {
		return fmt.Errorf("error failing transcode: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*domain.MediaAsset, error) {
	var dbAsset dbMediaAsset
	err := row.Scan(
		&dbAsset.ID,
		&dbAsset.Kind,
		&dbAsset.OriginalPath,
		&dbAsset.DisplayPath,
		&dbAsset.ThumbPath,
		&dbAsset.RotationDegrees,
		&dbAsset.CaptureDate,
		&dbAsset.UploadedAt,
		&dbAsset.UpdatedAt,
		&dbAsset.TranscodingStatus,
	)
	if err != nil {
		return nil, err
	}
	return dbAsset.ToDomain()
}

// dbMediaAsset represents a media asset row in DB
type dbMediaAsset struct {
	ID                string
	Kind              string
	OriginalPath      string
	DisplayPath       sql.NullString
	ThumbPath         sql.NullString
	RotationDegrees   int
	CaptureDate       sql.NullTime
	UploadedAt        time.Time
	UpdatedAt         time.Time
	TranscodingStatus string
}

// ToDomain converts to domain.MediaAsset
func (a *dbMediaAsset) ToDomain() (*domain.MediaAsset, error) {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return nil, fmt.Errorf("error parsing asset id: %w", err)
	}

	asset := &domain.MediaAsset{
		ID:                id,
		Kind:              domain.MediaKind(a.Kind),
		OriginalPath:      a.OriginalPath,
		RotationDegrees:   a.RotationDegrees,
		UploadedAt:        a.UploadedAt,
		UpdatedAt:         a.UpdatedAt,
		TranscodingStatus: domain.TranscodingStatus(a.TranscodingStatus),
	}
	if a.DisplayPath.Valid {
		asset.DisplayPath = &a.DisplayPath.String
	}
	if a.ThumbPath.Valid {
		asset.ThumbPath = &a.ThumbPath.String
	}
	if a.CaptureDate.Valid {
		asset.CaptureDate = &a.CaptureDate.Time
	}
	return asset, nil
}
