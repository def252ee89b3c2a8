package options

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	require.Equal(t, "", Wrap("   ", 10))
	require.Equal(t, "one two\nthree", Wrap("one two three", 8))
	require.Equal(t, "supercalifragilistic\nx", Wrap("supercalifragilistic x", 8))

	for _, line := range strings.Split(Wrap80(strings.Repeat("word ", 40)), "\n") {
		require.LessOrEqual(t, len(line), 80)
	}
}

func TestRootOptionsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r2c.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "info"`), 0o644))

	o := &RootOptions{}
	cmd := &cobra.Command{Use: "r2c"}
	AddRootArgs(cmd, o)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--log-level", "debug", "--dry-run"}))

	cfg, err := o.Load()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.DryRun)
	require.Equal(t, path, cfg.File)
}

func TestRootOptionsKeepsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r2c.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"warn\"\ndry_run = true\n"), 0o644))

	o := &RootOptions{ConfigPath: path}
	cfg, err := o.Load()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
	require.True(t, cfg.DryRun)
}
