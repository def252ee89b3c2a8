package hekate

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands such as mount and reboot.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// LogRunner only logs the commands it is asked to run.
type LogRunner struct {
	Logger *slog.Logger
}

func (r LogRunner) Run(_ context.Context, name string, args ...string) error {
	if r.Logger != nil {
		r.Logger.Info("dry run", "command", name, "args", args)
	}
	return nil
}
