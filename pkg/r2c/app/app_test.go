package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/config"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/menu"
)

type recordingRunner struct {
	commands []string
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.commands = append(r.commands, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func bootDisk(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bootloader", "hekate_ipl.ini"), "[config]\n[Android]\n[Ubuntu]\n[Lakka]\n")
	writeFile(t, filepath.Join(root, "bootloader", "ini", "more.ini"), "[Ubuntu safe]\n")
	writeFile(t, filepath.Join(root, "bootloader", "nyx.ini"), "[config]\nthemecolor=0\nentries5col=1\n")
	return root
}

func testConfig(t *testing.T, root string) config.Config {
	t.Helper()
	return config.Config{
		BootDisk:            root,
		SysfsDir:            t.TempDir(),
		Language:            "en",
		FiveColumns:         "auto",
		ConfirmPowerActions: true,
		ScrollThreshold:     carousel.DefaultScrollThreshold,
		ScrollWindow:        carousel.DefaultScrollWindow,
		DragThreshold:       carousel.DefaultDragThreshold,
	}
}

func newApp(t *testing.T, cfg config.Config) (*App, *recordingRunner) {
	t.Helper()
	runner := &recordingRunner{}
	a, err := New(cfg, Options{Logger: logging.Discard(), Runner: runner})
	require.NoError(t, err)
	a.IconSize = 16
	return a, runner
}

func TestLoad(t *testing.T) {
	root := bootDisk(t)
	a, runner := newApp(t, testConfig(t, root))

	var reported []float64
	m, err := a.Load(context.Background(), func(v float64) { reported = append(reported, v) })
	require.NoError(t, err)

	require.Equal(t, root, m.Root)
	require.True(t, m.FiveColumns)
	require.Equal(t, 0, m.Nyx.ThemeHue)
	require.Len(t, m.Pages, 4)
	require.Len(t, m.Pages[menu.PageLaunch].Options, 3)
	require.Len(t, m.Pages[menu.PageConfigs].Options, 1)
	require.True(t, m.Pages[menu.PageLaunch].UseFiveColumns)

	require.Equal(t, []float64{0.4, 0.6, 1}, reported)
	require.NotNil(t, IconFor(m.Pages[menu.PageLaunch].Options[0]))
	require.Empty(t, runner.commands)

	require.NoError(t, a.Close(context.Background()))
	require.Empty(t, runner.commands)
}

func TestLoadColumnsOverride(t *testing.T) {
	cfg := testConfig(t, bootDisk(t))
	cfg.FiveColumns = "off"
	a, _ := newApp(t, cfg)

	m, err := a.Load(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, m.FiveColumns)
}

func TestLoadWithoutBootDisk(t *testing.T) {
	base := t.TempDir()
	cfg := testConfig(t, "")
	runner := &recordingRunner{}

	a, err := New(cfg, Options{
		Logger: logging.Discard(),
		Runner: runner,
		Disk: hekate.BootDiskOptions{
			FlashPath:   filepath.Join(base, "flash"),
			CmdlinePath: filepath.Join(base, "missing-cmdline"),
		},
	})
	require.NoError(t, err)
	a.IconSize = 0

	m, err := a.Load(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "flash"), m.Root)
	require.Empty(t, m.Pages[menu.PageLaunch].Options)
	require.Len(t, m.Pages[menu.PageUMS].Options, 7)
	require.Nil(t, IconFor(m.Pages[menu.PageSystem].Options[0]))
}

func TestLoadCancelled(t *testing.T) {
	a, _ := newApp(t, testConfig(t, bootDisk(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Load(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNeedsConfirm(t *testing.T) {
	cfg := testConfig(t, bootDisk(t))
	a, _ := newApp(t, cfg)

	m, err := a.Load(context.Background(), nil)
	require.NoError(t, err)

	require.False(t, a.NeedsConfirm(m.Pages[menu.PageLaunch].Options[0]))
	require.False(t, a.NeedsConfirm(m.Pages[menu.PageUMS].Options[0]))
	for _, o := range m.Pages[menu.PageSystem].Options {
		require.True(t, a.NeedsConfirm(o), o.Name)
	}
	require.False(t, a.NeedsConfirm(carousel.Option{Name: "foreign"}))

	cfg.ConfirmPowerActions = false
	quiet, _ := newApp(t, cfg)
	require.False(t, quiet.NeedsConfirm(m.Pages[menu.PageSystem].Options[2]))
}

func TestExecute(t *testing.T) {
	cfg := testConfig(t, bootDisk(t))
	a, runner := newApp(t, cfg)

	m, err := a.Load(context.Background(), nil)
	require.NoError(t, err)

	ubuntu := m.Pages[menu.PageLaunch].Options[1]
	require.Equal(t, "Ubuntu", ubuntu.Name)
	require.NoError(t, a.Execute(context.Background(), ubuntu))

	action, err := os.ReadFile(filepath.Join(cfg.SysfsDir, "action"))
	require.NoError(t, err)
	require.Equal(t, "self", string(action))
	param1, err := os.ReadFile(filepath.Join(cfg.SysfsDir, "param1"))
	require.NoError(t, err)
	require.Equal(t, "2", string(param1))
	require.Len(t, runner.commands, 1)

	err = a.Execute(context.Background(), carousel.Option{Name: "foreign"})
	require.ErrorIs(t, err, hekate.ErrUnsupportedEntry)
}

func TestCarouselSettings(t *testing.T) {
	cfg := testConfig(t, bootDisk(t))
	cfg.InvertScroll = true
	a, _ := newApp(t, cfg)

	s := a.CarouselSettings(true)
	require.True(t, s.Immediate)
	require.True(t, s.InvertScroll)
	require.Equal(t, cfg.Aggregator(), s.Aggregator)

	m, err := a.Load(context.Background(), nil)
	require.NoError(t, err)
	c := m.NewCarousel(s)
	require.Equal(t, 4, c.Len())
	require.Equal(t, -1, c.SelectedIndex())
}

func TestNewUnknownLanguageFallsBack(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Language = "xx"
	a, err := New(cfg, Options{Logger: logging.Discard()})
	require.NoError(t, err)
	require.Equal(t, "Launch", a.Translator().T("page_launch"))
}
