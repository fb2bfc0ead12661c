package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSessionID_Deterministic(t *testing.T) {
	// Arrange
	modified := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)

	// Act
	first := DeriveSessionID("IMG_0001.jpg", 1048576, modified)
	second := DeriveSessionID("IMG_0001.jpg", 1048576, modified)

	// Assert
	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
	assert.True(t, ValidSessionID(first))
}

func TestDeriveSessionID_DiffersPerIdentity(t *testing.T) {
	// Arrange
	modified := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	base := DeriveSessionID("IMG_0001.jpg", 1048576, modified)

	// Act & Assert
	assert.NotEqual(t, base, DeriveSessionID("IMG_0002.jpg", 1048576, modified))
	assert.NotEqual(t, base, DeriveSessionID("IMG_0001.jpg", 1048577, modified))
	assert.NotEqual(t, base, DeriveSessionID("IMG_0001.jpg", 1048576, modified.Add(time.Millisecond)))
}

func TestValidSessionID_RejectsMalformedIDs(t *testing.T) {
	cases := []string{
		"",
		"short",
		"../../../etc/passwd",
		"ABCDEF0123456789ABCDEF0123456789", // uppercase hex
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", // non-hex
		"abcdef0123456789abcdef0123456789ff", // too long
		"abcdef0123456789abcdef012345678",    // too short
		"abcdef0123456789/abcdef01234567",    // path separator
	}

	for _, id := range cases {
		assert.False(t, ValidSessionID(id), "expected %q to be rejected", id)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"IMG_0001.jpg", "IMG_0001.jpg"},
		{"../../etc/passwd", "passwd"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"...", "upload"},
		{"", "upload"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}
