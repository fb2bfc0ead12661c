package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
)

// CommandRunner executes external commands with combined output capture
type CommandRunner struct{}

func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

var _ port.CommandRunner = (*CommandRunner)(nil)

func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s failed: %w: %s", name, err, truncate(out, 512))
	}
	return out, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
