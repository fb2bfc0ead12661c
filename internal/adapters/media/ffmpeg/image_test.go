package ffmpeg

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestImageProcessor(runner *media.MockCommandRunner) *ImageProcessor {
	return NewImageProcessor("ffmpeg", runner, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImageProcessor_Inspect_NoExifIsNotAnError(t *testing.T) {
	// Arrange: a file with no EXIF payload at all
	path := filepath.Join(t.TempDir(), "plain.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))
	processor := newTestImageProcessor(media.NewMockCommandRunner())

	// Act
	info, err := processor.Inspect(context.Background(), path)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, info.CaptureDate)
	assert.Equal(t, 0, info.RotationDegrees)
}

func TestImageProcessor_Inspect_MissingFile(t *testing.T) {
	// Arrange
	processor := newTestImageProcessor(media.NewMockCommandRunner())

	// Act
	_, err := processor.Inspect(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))

	// Assert
	require.Error(t, err)
}

func TestOrientationToDegrees(t *testing.T) {
	cases := map[int]int{
		1: 0,
		2: 0,
		3: 180,
		4: 180,
		5: 90,
		6: 90,
		7: 270,
		8: 270,
		0: 0,
	}
	for orientation, want := range cases {
		assert.Equal(t, want, orientationToDegrees(orientation), "orientation %d", orientation)
	}
}

func TestImageProcessor_DisplayRendition_ReusesDisplayableOriginal(t *testing.T) {
	// Arrange
	runner := media.NewMockCommandRunner()
	processor := newTestImageProcessor(runner)

	// Act
	path, err := processor.DisplayRendition(context.Background(), "/media/originals/pic.JPG", t.TempDir())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/media/originals/pic.JPG", path)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageProcessor_DisplayRendition_ConvertsNonDisplayableFormat(t *testing.T) {
	// Arrange
	destDir := t.TempDir()
	runner := media.NewMockCommandRunner()
	runner.On("Run", mock.Anything, "ffmpeg", mock.MatchedBy(func(args []string) bool {
		return assert.ObjectsAreEqual([]string{
			"-y",
			"-i", "/media/originals/pic.heic",
			"-q:v", "2",
			filepath.Join(destDir, "pic.jpg"),
		}, args)
	})).Return([]byte{}, nil)

	processor := newTestImageProcessor(runner)

	// Act
	path, err := processor.DisplayRendition(context.Background(), "/media/originals/pic.heic", destDir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "pic.jpg"), path)
	runner.AssertExpectations(t)
}

func TestImageProcessor_Thumbnail_ScalesToFixedWidth(t *testing.T) {
	// Arrange
	destDir := t.TempDir()
	runner := media.NewMockCommandRunner()
	runner.On("Run", mock.Anything, "ffmpeg", mock.MatchedBy(func(args []string) bool {
		return assert.ObjectsAreEqual([]string{
			"-y",
			"-i", "/media/originals/pic.jpg",
			"-vf", "scale=480:-2",
			"-q:v", "3",
			filepath.Join(destDir, "pic_thumb.jpg"),
		}, args)
	})).Return([]byte{}, nil)

	processor := newTestImageProcessor(runner)

	// Act
	path, err := processor.Thumbnail(context.Background(), "/media/originals/pic.jpg", destDir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "pic_thumb.jpg"), path)
	runner.AssertExpectations(t)
}
