// Package commands is the r2c command line.
package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/switchroot-kiosk/r2c/pkg/commands/options"
	"github.com/switchroot-kiosk/r2c/pkg/r2c"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/app"
)

var (
	ro = &options.RootOptions{}
)

func New() *cobra.Command {
	ro = &options.RootOptions{}

	cmd := &cobra.Command{
		Use:   "r2c",
		Short: options.Wrap80("Reboot to any hekate boot entry, UMS target or power action from a touch friendly menu."),
		Long: options.Wrap80("r2c mounts the hekate boot disk, lists its launch and configuration entries " +
			"next to the USB mass storage targets and system actions, and reboots into the chosen one " +
			"through the r2p interface. Without a subcommand the full screen menu is started."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKiosk(cmd)
		},
	}

	options.AddRootArgs(cmd, ro)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRun(topLevel)
	addTUI(topLevel)
	addList(topLevel)
	addReboot(topLevel)
	addShutdown(topLevel)
	addVersion(topLevel)
}

// setup loads the configuration and prepares logging. quiet keeps records off
// the terminal, for frontends that own it.
func setup(quiet bool) (*app.App, error) {
	cfg, err := ro.Load()
	if err != nil {
		return nil, err
	}

	if quiet {
		r2c.SetLogOutput(io.Discard)
	}
	if cfg.LogPath != "" {
		r2c.SetLogPath(cfg.LogPath)
	}
	r2c.SetRawLogLevel(cfg.LogLevel)

	return app.New(cfg, app.Options{Logger: r2c.GetLogger()})
}
