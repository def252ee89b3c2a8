// Package options defines shared flag helpers for the r2c commands.
package options

import (
	"github.com/spf13/cobra"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/config"
)

// RootOptions are the flags every command understands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	DryRun     bool
}

// AddRootArgs registers the persistent flags on the top level command.
func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "",
		Wrap80("Path to r2c.toml. Defaults to $"+config.PathEnv+", then ~/.config/r2c, /etc/r2c and the working directory."))
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
	cmd.PersistentFlags().BoolVar(&o.DryRun, "dry-run", false,
		"Log reboot and shutdown commands instead of running them.")
}

// Load reads the configuration and applies the flag overrides.
func (o *RootOptions) Load() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.DryRun {
		cfg.DryRun = true
	}
	return cfg, nil
}
