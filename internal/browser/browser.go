package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Opener hands a URL to an external program and blocks until it exits.
type Opener interface {
	Open(ctx context.Context, command string, target string) error
}

// ProcessOpener is an Opener implemented via os/exec.
type ProcessOpener struct{}

func NewProcessOpener() *ProcessOpener { return &ProcessOpener{} }

// DefaultCommand is the platform's "open this URL" launcher.
func DefaultCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32 url.dll,FileProtocolHandler"
	default:
		return "xdg-open"
	}
}

// Open runs command with target appended as the last argument. command may
// carry its own arguments ("firefox --new-tab"); empty means DefaultCommand.
func (o *ProcessOpener) Open(ctx context.Context, command string, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("target is required")
	}

	command = strings.TrimSpace(command)
	if command == "" {
		command = DefaultCommand()
	}

	parts := strings.Fields(command)
	name := parts[0]
	args := append(parts[1:], target)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run browser %q: %w", command, err)
	}
	return nil
}
