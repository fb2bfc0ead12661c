package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// schema mirrors migrations/000001_create_media_assets.up.sql for tests that
// run against a throwaway database file
const schema = `
CREATE TABLE media_assets (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL CHECK (kind IN ('image', 'video')),
    original_path TEXT NOT NULL,
    display_path TEXT,
    thumb_path TEXT,
    rotation_degrees INTEGER NOT NULL DEFAULT 0,
    capture_date TIMESTAMP,
    uploaded_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    transcoding_status TEXT NOT NULL CHECK (transcoding_status IN ('pending', 'processing', 'completed', 'failed'))
);
CREATE INDEX idx_media_assets_pending ON media_assets (kind, transcoding_status, uploaded_at);
`

// newTestDB opens an embedded database in the test's temp dir and applies
// the schema. The single open connection matches production configuration.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return db
}
