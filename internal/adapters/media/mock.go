package media

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
	"github.com/stretchr/testify/mock"
)

// MockImageProcessor is a mock implementation of port.ImageProcessor
type MockImageProcessor struct {
	mock.Mock
}

func NewMockImageProcessor() *MockImageProcessor {
	return &MockImageProcessor{}
}

func (m *MockImageProcessor) Inspect(ctx context.Context, path string) (*port.ImageInfo, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ImageInfo), args.Error(1)
}

func (m *MockImageProcessor) DisplayRendition(ctx context.Context, originalPath, destDir string) (string, error) {
	args := m.Called(ctx, originalPath, destDir)
	return args.String(0), args.Error(1)
}

func (m *MockImageProcessor) Thumbnail(ctx context.Context, originalPath, destDir string) (string, error) {
	args := m.Called(ctx, originalPath, destDir)
	return args.String(0), args.Error(1)
}

// MockVideoTranscoder is a mock implementation of port.VideoTranscoder
type MockVideoTranscoder struct {
	mock.Mock
}

func NewMockVideoTranscoder() *MockVideoTranscoder {
	return &MockVideoTranscoder{}
}

func (m *MockVideoTranscoder) Transcode(ctx context.Context, originalPath, destDir string) (string, error) {
	args := m.Called(ctx, originalPath, destDir)
	return args.String(0), args.Error(1)
}

func (m *MockVideoTranscoder) PosterFrame(ctx context.Context, videoPath, destDir string) (string, error) {
	args := m.Called(ctx, videoPath, destDir)
	return args.String(0), args.Error(1)
}

// MockCommandRunner is a mock implementation of port.CommandRunner
type MockCommandRunner struct {
	mock.Mock
}

func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

func (m *MockCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}
