package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DeriveSessionID computes the deterministic upload-session id for a file.
// It is a pure function of (name, size, last-modified) so that re-selecting
// the same file resumes the same session instead of starting a new one.
func DeriveSessionID(filename string, size int64, modified time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", filename, size, modified.UnixMilli())))
	return hex.EncodeToString(sum[:16])
}

var sessionIDPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)

// ValidSessionID reports whether id has the shape produced by DeriveSessionID.
// Session ids name directories on disk, so anything else is rejected.
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips any path components and replaces characters that
// are unsafe in a destination filename
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "upload"
	}
	return base
}
