package hekate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	DefaultSysfsDir       = "/sys/devices/r2p"
	DefaultRebootBinary   = "/usr/bin/tkmm-reboot"
	DefaultShutdownBinary = "/usr/bin/tkmm-shutdown"
)

// RebooterOptions configures a Rebooter. Zero values use the system paths.
type RebooterOptions struct {
	SysfsDir       string
	RebootBinary   string
	ShutdownBinary string
	Runner         CommandRunner
	Logger         *slog.Logger
	DryRun         bool
}

// Rebooter writes r2p parameters and reboots or powers off the device.
type Rebooter struct {
	sysfsDir       string
	rebootBinary   string
	shutdownBinary string
	runner         CommandRunner
	logger         *slog.Logger
	dryRun         bool
}

func NewRebooter(opts RebooterOptions) *Rebooter {
	r := &Rebooter{
		sysfsDir:       opts.SysfsDir,
		rebootBinary:   opts.RebootBinary,
		shutdownBinary: opts.ShutdownBinary,
		runner:         opts.Runner,
		logger:         opts.Logger,
		dryRun:         opts.DryRun,
	}
	if r.sysfsDir == "" {
		r.sysfsDir = DefaultSysfsDir
	}
	if r.rebootBinary == "" {
		r.rebootBinary = DefaultRebootBinary
	}
	if r.shutdownBinary == "" {
		r.shutdownBinary = DefaultShutdownBinary
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.runner == nil {
		r.runner = ExecRunner{}
	}
	if r.dryRun {
		r.runner = LogRunner{Logger: r.logger}
	}
	return r
}

// Reboot writes action and parameters to the r2p interface and reboots.
func (r *Rebooter) Reboot(ctx context.Context, args RebootArgs) error {
	r.logger.Info("reboot requested",
		"action", args.Action,
		"param1", args.Param1,
		"param2", args.Param2,
		"dry_run", r.dryRun)

	if !r.dryRun {
		values := []struct{ name, value string }{
			{"action", args.Action},
			{"param1", args.Param1},
			{"param2", args.Param2},
		}
		for _, v := range values {
			path := filepath.Join(r.sysfsDir, v.name)
			if err := os.WriteFile(path, []byte(v.value), 0644); err != nil {
				return fmt.Errorf("writing r2p %s: %w", v.name, err)
			}
		}
	}

	name, cmdArgs := r.command(r.rebootBinary, "reboot")
	if err := r.runner.Run(ctx, name, cmdArgs...); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}
	return nil
}

// Shutdown powers the device off.
func (r *Rebooter) Shutdown(ctx context.Context) error {
	r.logger.Info("shutdown requested", "dry_run", r.dryRun)

	name, cmdArgs := r.command(r.shutdownBinary, "shutdown -P now")
	if err := r.runner.Run(ctx, name, cmdArgs...); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Execute runs the action bound to an entry.
func (r *Rebooter) Execute(ctx context.Context, entry Entry) error {
	if entry.Kind == KindShutdown {
		return r.Shutdown(ctx)
	}

	args, ok := entry.RebootArgs()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEntry, entry.Kind)
	}
	return r.Reboot(ctx, args)
}

// The tkmm helpers take precedence over the generic shell commands.
func (r *Rebooter) command(binary, shell string) (string, []string) {
	if _, err := os.Stat(binary); err == nil {
		return binary, nil
	}
	return "sh", []string{"-c", shell}
}
