// Package config loads r2c settings from r2c.toml and R2C_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/menu"
)

// EnvPrefix prefixes every environment override, e.g. R2C_LOG_LEVEL.
const EnvPrefix = "R2C"

// PathEnv names a config file that replaces the search path.
const PathEnv = "R2C_CONFIG"

// DefaultPowerLongPress is how long the power button must be held to shut down.
const DefaultPowerLongPress = 2 * time.Second

// Config holds application configuration.
type Config struct {
	BootDisk   string `mapstructure:"boot_disk"`
	MountPoint string `mapstructure:"mount_point"`
	SysfsDir   string `mapstructure:"sysfs_dir"`

	LogPath  string `mapstructure:"log_path"`
	LogLevel string `mapstructure:"log_level"`
	Language string `mapstructure:"language"`

	FiveColumns  string `mapstructure:"five_columns"`
	InvertScroll bool   `mapstructure:"invert_scroll"`

	ScrollThreshold float64       `mapstructure:"scroll_threshold"`
	ScrollWindow    time.Duration `mapstructure:"scroll_window"`
	DragThreshold   float64       `mapstructure:"drag_threshold"`

	ConfirmPowerActions bool   `mapstructure:"confirm_power_actions"`
	FontPath            string `mapstructure:"font_path"`

	PowerButtonDevice string        `mapstructure:"power_button_device"`
	PowerLongPress    time.Duration `mapstructure:"power_long_press"`

	DevMode bool `mapstructure:"dev_mode"`
	DryRun  bool `mapstructure:"dry_run"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("boot_disk", "")
	v.SetDefault("mount_point", hekate.DefaultMountPoint)
	v.SetDefault("sysfs_dir", hekate.DefaultSysfsDir)
	v.SetDefault("log_path", "")
	v.SetDefault("log_level", "error")
	v.SetDefault("language", "en")
	v.SetDefault("five_columns", "auto")
	v.SetDefault("invert_scroll", false)
	v.SetDefault("scroll_threshold", carousel.DefaultScrollThreshold)
	v.SetDefault("scroll_window", carousel.DefaultScrollWindow)
	v.SetDefault("drag_threshold", carousel.DefaultDragThreshold)
	v.SetDefault("confirm_power_actions", true)
	v.SetDefault("font_path", "")
	v.SetDefault("power_button_device", "")
	v.SetDefault("power_long_press", DefaultPowerLongPress)
	v.SetDefault("dev_mode", false)
	v.SetDefault("dry_run", false)
}

// Load reads configuration. An explicit path must exist; otherwise R2C_CONFIG,
// then r2c.toml in ~/.config/r2c, /etc/r2c and the working directory are
// tried, and a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnv)
		explicit = path != ""
	}

	if explicit {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return Config{}, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName("r2c")
		if dir, err := homedir.Expand("~/.config/r2c"); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath("/etc/r2c")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = v.ConfigFileUsed()

	if err := c.expandPaths(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.BootDisk, &c.MountPoint, &c.SysfsDir, &c.LogPath, &c.FontPath} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = filepath.Clean(expanded)
	}
	return nil
}

// Validate rejects values the frontends cannot use.
func (c Config) Validate() error {
	if _, err := menu.ParseColumnsMode(c.FiveColumns); err != nil {
		return err
	}
	if c.ScrollThreshold < 0 || c.DragThreshold < 0 {
		return fmt.Errorf("thresholds must not be negative")
	}
	if c.ScrollWindow < 0 || c.PowerLongPress < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

// ColumnsMode returns the parsed five_columns value.
func (c Config) ColumnsMode() menu.ColumnsMode {
	m, _ := menu.ParseColumnsMode(c.FiveColumns)
	return m
}

// Aggregator returns the gesture thresholds for the carousel.
func (c Config) Aggregator() carousel.AggregatorSettings {
	return carousel.AggregatorSettings{
		ScrollThreshold: c.ScrollThreshold,
		ScrollWindow:    c.ScrollWindow,
		DragThreshold:   c.DragThreshold,
	}
}

// BootDiskOptions returns the boot disk discovery settings.
func (c Config) BootDiskOptions() hekate.BootDiskOptions {
	return hekate.BootDiskOptions{
		Override:   c.BootDisk,
		MountPoint: c.MountPoint,
	}
}

// RebooterOptions returns the reboot settings.
func (c Config) RebooterOptions() hekate.RebooterOptions {
	return hekate.RebooterOptions{
		SysfsDir: c.SysfsDir,
		DryRun:   c.DryRun,
	}
}
