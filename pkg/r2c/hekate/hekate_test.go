package hekate

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moby/sys/mountinfo"
	"github.com/stretchr/testify/require"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// mountTable serves mounts from a mountinfo formatted table.
func mountTable(table string) func(mountinfo.FilterFunc) ([]*mountinfo.Info, error) {
	return func(filter mountinfo.FilterFunc) ([]*mountinfo.Info, error) {
		return mountinfo.GetMountsFromReader(strings.NewReader(table), filter)
	}
}

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls []call
	hook  func(name string, args []string) error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.hook != nil {
		return f.hook(name, args)
	}
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const hekateIPL = `[config]
autoboot=0
autoboot_list=0
bootwait=3

{-------- Stock -------}
[Stock]
fss0=atmosphere/package3
icon=bootloader/res/icon_switch.bmp
stock=1

# Linux
{-------- Linux -------}
[Ubuntu]
l4t=1
boot_prefixes = switchroot/ubuntu/
icon = switchroot/ubuntu/icon_ubuntu_hue.bmp

[Android 11]
ICON=switchroot/android/icon_android_hue.bmp
{}
`

func TestParseSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hekate_ipl.ini")
	writeFile(t, path, hekateIPL)

	sections := ParseSections(path, logging.Discard())

	require.Equal(t, []Section{
		{Name: "Stock", Icon: "bootloader/res/icon_switch.bmp"},
		{Name: "Ubuntu", Icon: "switchroot/ubuntu/icon_ubuntu_hue.bmp"},
		{Name: "Android 11", Icon: "switchroot/android/icon_android_hue.bmp"},
	}, sections)
}

func TestParseSectionsMissingFile(t *testing.T) {
	require.Empty(t, ParseSections(filepath.Join(t.TempDir(), "nope.ini"), logging.Discard()))
}

func TestConfigProperty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hekate_ipl.ini")
	writeFile(t, path, hekateIPL)

	v, ok := ConfigProperty(path, "BootWait", logging.Discard())
	require.True(t, ok)
	require.Equal(t, "3", v)

	_, ok = ConfigProperty(path, "stock", logging.Discard())
	require.False(t, ok, "keys outside config are not config properties")
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		hue  float64
		want color.RGBA
	}{
		{0, color.RGBA{R: 255, A: 255}},
		{120, color.RGBA{G: 255, A: 255}},
		{167, color.RGBA{G: 255, B: 200, A: 255}},
		{200, color.RGBA{G: 170, B: 255, A: 255}},
		{300, color.RGBA{R: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, HSVToRGB(tt.hue, 100, 100), "hue %v", tt.hue)
	}

	require.Equal(t, color.RGBA{R: 127, G: 127, B: 127, A: 255}, HSVToRGB(42, 0, 50))
}

func TestLoadNyx(t *testing.T) {
	root := t.TempDir()

	nyx := LoadNyx(root, logging.Discard())
	require.Equal(t, DefaultThemeHue, nyx.ThemeHue)
	require.False(t, nyx.FiveColumns)

	writeFile(t, filepath.Join(root, "bootloader", "nyx.ini"), "[config]\nthemecolor=200\nentries5col=1\n")
	nyx = LoadNyx(root, logging.Discard())
	require.Equal(t, 200, nyx.ThemeHue)
	require.Equal(t, color.RGBA{G: 170, B: 255, A: 255}, nyx.ThemeColor)
	require.True(t, nyx.FiveColumns)

	writeFile(t, filepath.Join(root, "bootloader", "nyx.ini"), "[config]\nthemecolor=400\n")
	nyx = LoadNyx(root, logging.Discard())
	require.Equal(t, DefaultThemeHue, nyx.ThemeHue)
}

func TestLoaderEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bootloader", "hekate_ipl.ini"), hekateIPL)
	writeFile(t, filepath.Join(root, "bootloader", "ini", "b.ini"), "[B one]\n[B two]\nicon=b.bmp\n")
	writeFile(t, filepath.Join(root, "bootloader", "ini", "A.ini"), "[config]\n[A one]\n")
	writeFile(t, filepath.Join(root, "bootloader", "ini", "notes.txt"), "[Ignored]\n")

	l := NewLoader(root, logging.Discard())

	launch := l.LaunchEntries()
	require.Len(t, launch, 3)
	for i, e := range launch {
		require.Equal(t, KindLaunch, e.Kind)
		require.Equal(t, i+1, e.Index)
		require.Equal(t, GlyphRocket, e.Glyph)
	}

	config := l.ConfigEntries()
	require.Equal(t, []Entry{
		{Kind: KindConfig, Name: "A one", Index: 1, Glyph: GlyphCog},
		{Kind: KindConfig, Name: "B one", Index: 2, Glyph: GlyphCog},
		{Kind: KindConfig, Name: "B two", Index: 3, Icon: "b.bmp", Glyph: GlyphCog},
	}, config)

	empty := NewLoader(t.TempDir(), logging.Discard())
	require.Empty(t, empty.LaunchEntries())
	require.Empty(t, empty.ConfigEntries())
}

func TestFixedEntries(t *testing.T) {
	ums := UMSEntries()
	require.Len(t, ums, 7)
	require.Equal(t, "SD Card", ums[0].Name)
	require.Equal(t, 0, ums[0].Index)
	require.Equal(t, "emuMMC GPP", ums[6].Name)
	require.Equal(t, 6, ums[6].Index)

	system := SystemEntries()
	require.Len(t, system, 3)
	for _, e := range system {
		require.True(t, e.Kind.IsPower())
	}
}

func TestRebootArgs(t *testing.T) {
	tests := []struct {
		entry Entry
		want  RebootArgs
		ok    bool
	}{
		{Entry{Kind: KindLaunch, Index: 2}, RebootArgs{"self", "2", "0"}, true},
		{Entry{Kind: KindConfig, Index: 5}, RebootArgs{"self", "5", "1"}, true},
		{Entry{Kind: KindUMS, Index: 0}, RebootArgs{"ums", "0", "0"}, true},
		{Entry{Kind: KindBootloader}, RebootArgs{"bootloader", "0", "0"}, true},
		{Entry{Kind: KindReboot}, RebootArgs{"normal", "0", "0"}, true},
		{Entry{Kind: KindShutdown}, RebootArgs{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.entry.Kind.String(), func(t *testing.T) {
			got, ok := tt.entry.RebootArgs()
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func readTrimmed(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}

func TestRebooterWritesSysfs(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}

	r := NewRebooter(RebooterOptions{
		SysfsDir:       dir,
		RebootBinary:   filepath.Join(dir, "missing-reboot"),
		ShutdownBinary: filepath.Join(dir, "missing-shutdown"),
		Runner:         runner,
		Logger:         logging.Discard(),
	})

	require.NoError(t, r.Execute(context.Background(), Entry{Kind: KindConfig, Index: 4}))

	require.Equal(t, "self", readTrimmed(t, filepath.Join(dir, "action")))
	require.Equal(t, "4", readTrimmed(t, filepath.Join(dir, "param1")))
	require.Equal(t, "1", readTrimmed(t, filepath.Join(dir, "param2")))
	require.Equal(t, []call{{name: "sh", args: []string{"-c", "reboot"}}}, runner.calls)

	runner.calls = nil
	require.NoError(t, r.Execute(context.Background(), Entry{Kind: KindShutdown}))
	require.Equal(t, []call{{name: "sh", args: []string{"-c", "shutdown -P now"}}}, runner.calls)
}

func TestRebooterPrefersTkmm(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "tkmm-reboot")
	writeFile(t, binary, "#!/bin/sh\n")
	runner := &fakeRunner{}

	r := NewRebooter(RebooterOptions{SysfsDir: dir, RebootBinary: binary, Runner: runner, Logger: logging.Discard()})

	require.NoError(t, r.Reboot(context.Background(), RebootArgs{"normal", "0", "0"}))
	require.Len(t, runner.calls, 1)
	require.Equal(t, binary, runner.calls[0].name)
	require.Empty(t, runner.calls[0].args)
}

func TestRebooterDryRun(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}

	r := NewRebooter(RebooterOptions{SysfsDir: dir, Runner: runner, DryRun: true, Logger: logging.Discard()})

	require.NoError(t, r.Execute(context.Background(), Entry{Kind: KindLaunch, Index: 1}))
	require.Empty(t, runner.calls)
	require.NoFileExists(t, filepath.Join(dir, "action"))
}

func TestRebooterSysfsFailure(t *testing.T) {
	runner := &fakeRunner{}
	r := NewRebooter(RebooterOptions{
		SysfsDir: filepath.Join(t.TempDir(), "missing"),
		Runner:   runner,
		Logger:   logging.Discard(),
	})

	err := r.Execute(context.Background(), Entry{Kind: KindReboot})
	require.Error(t, err)
	require.Empty(t, runner.calls, "no reboot without r2p parameters")
}

func TestParseBootParams(t *testing.T) {
	require.Equal(t, BootParams{SwrDir: "switchroot/ubuntu", MMC: "0", Partition: "1"}, ParseBootParams("console=tty0 quiet"))
	require.Equal(t,
		BootParams{SwrDir: "switchroot/fedora", MMC: "1", Partition: "2"},
		ParseBootParams("console=tty0 swr_dir=switchroot/fedora boot_m=1 boot_p=2\n"))
	require.Equal(t, "1", ParseBootParams("xboot_p=9").Partition)
}

func TestDevicePath(t *testing.T) {
	dev := t.TempDir()

	require.Equal(t, filepath.Join(dev, "mmcblk0p2"), DevicePath(dev, BootParams{MMC: "1", Partition: "2"}))

	writeFile(t, filepath.Join(dev, "mmcblk1"), "")
	require.Equal(t, filepath.Join(dev, "mmcblk1p2"), DevicePath(dev, BootParams{MMC: "1", Partition: "2"}))
	require.Equal(t, filepath.Join(dev, "mmcblk0p1"), DevicePath(dev, BootParams{MMC: "0", Partition: "1"}))
}

func TestResolveBootDiskOverride(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bootloader"), 0755))
	runner := &fakeRunner{}

	disk, err := ResolveBootDisk(context.Background(), BootDiskOptions{
		Override: root,
		Runner:   runner,
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	require.Equal(t, root, disk.Path)
	require.False(t, disk.Mounted)
	require.Empty(t, runner.calls)

	require.NoError(t, disk.Cleanup(context.Background()))
	require.Empty(t, runner.calls)
}

func TestResolveBootDiskMounts(t *testing.T) {
	base := t.TempDir()
	dev := filepath.Join(base, "dev")
	mountPoint := filepath.Join(base, "mnt")
	writeFile(t, filepath.Join(base, "cmdline"), "boot_m=0 boot_p=1")
	writeFile(t, filepath.Join(dev, "mmcblk0p1"), "")

	runner := &fakeRunner{hook: func(name string, args []string) error {
		if name == "mount" {
			return os.MkdirAll(filepath.Join(args[1], "bootloader"), 0755)
		}
		return nil
	}}

	disk, err := ResolveBootDisk(context.Background(), BootDiskOptions{
		FlashPath:   filepath.Join(base, "flash"),
		MountPoint:  mountPoint,
		CmdlinePath: filepath.Join(base, "cmdline"),
		DevDir:      dev,
		Runner:      runner,
		Logger:      logging.Discard(),
		MountTable:  mountTable("15 35 0:3 / /proc rw,nosuid shared:5 - proc proc rw\n"),
	})
	require.NoError(t, err)
	require.Equal(t, mountPoint, disk.Path)
	require.Equal(t, filepath.Join(dev, "mmcblk0p1"), disk.Device)
	require.True(t, disk.Mounted)
	require.Equal(t, []call{{name: "mount", args: []string{filepath.Join(dev, "mmcblk0p1"), mountPoint}}}, runner.calls)

	require.NoError(t, disk.Cleanup(context.Background()))
	require.False(t, disk.Mounted)
	require.Equal(t, call{name: "umount", args: []string{mountPoint}}, runner.calls[1])

	require.NoError(t, disk.Cleanup(context.Background()))
	require.Len(t, runner.calls, 2)
}

func TestResolveBootDiskReusesMount(t *testing.T) {
	base := t.TempDir()
	dev := filepath.Join(base, "dev")
	existing := filepath.Join(base, "boot disk")
	require.NoError(t, os.MkdirAll(filepath.Join(existing, "bootloader"), 0755))
	writeFile(t, filepath.Join(base, "cmdline"), "")
	writeFile(t, filepath.Join(dev, "mmcblk0p1"), "")
	table := "15 35 0:3 / /proc rw shared:5 - proc proc rw\n" +
		"40 35 179:1 / " + strings.ReplaceAll(existing, " ", `\040`) + " rw,relatime - vfat " +
		filepath.Join(dev, "mmcblk0p1") + " rw\n"

	runner := &fakeRunner{}
	disk, err := ResolveBootDisk(context.Background(), BootDiskOptions{
		FlashPath:   filepath.Join(base, "flash"),
		CmdlinePath: filepath.Join(base, "cmdline"),
		DevDir:      dev,
		Runner:      runner,
		Logger:      logging.Discard(),
		MountTable:  mountTable(table),
	})
	require.NoError(t, err)
	require.Equal(t, existing, disk.Path)
	require.False(t, disk.Mounted)
	require.Empty(t, runner.calls)
}

func TestResolveBootDiskMountTableError(t *testing.T) {
	base := t.TempDir()
	dev := filepath.Join(base, "dev")
	mountPoint := filepath.Join(base, "mnt")
	writeFile(t, filepath.Join(base, "cmdline"), "")
	writeFile(t, filepath.Join(dev, "mmcblk0p1"), "")

	runner := &fakeRunner{hook: func(name string, args []string) error {
		return os.MkdirAll(filepath.Join(args[1], "bootloader"), 0755)
	}}
	disk, err := ResolveBootDisk(context.Background(), BootDiskOptions{
		FlashPath:   filepath.Join(base, "flash"),
		MountPoint:  mountPoint,
		CmdlinePath: filepath.Join(base, "cmdline"),
		DevDir:      dev,
		Runner:      runner,
		Logger:      logging.Discard(),
		MountTable: func(mountinfo.FilterFunc) ([]*mountinfo.Info, error) {
			return nil, os.ErrPermission
		},
	})
	require.NoError(t, err)
	require.True(t, disk.Mounted)
	require.Len(t, runner.calls, 1)
}

func TestFindMountPointFirstMatch(t *testing.T) {
	table := mountTable(
		"20 1 179:1 / /a rw - vfat /dev/mmcblk0p1 rw\n" +
			"21 1 179:1 / /b rw - vfat /dev/mmcblk0p1 rw\n")

	path, ok, err := findMountPoint(table, "/dev/mmcblk0p1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/a", path)

	_, ok, err = findMountPoint(table, "/dev/mmcblk1p1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveBootDiskFallback(t *testing.T) {
	base := t.TempDir()
	flash := filepath.Join(base, "flash")

	disk, err := ResolveBootDisk(context.Background(), BootDiskOptions{
		FlashPath:   flash,
		CmdlinePath: filepath.Join(base, "missing-cmdline"),
		Runner:      &fakeRunner{},
		Logger:      logging.Discard(),
	})
	require.ErrorIs(t, err, ErrNoBootDisk)
	require.Equal(t, flash, disk.Path)
	require.Equal(t, filepath.Join(flash, "bootloader", "nyx.ini"), disk.Join("bootloader", "nyx.ini"))
}
