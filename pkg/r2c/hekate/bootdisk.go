package hekate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/mountinfo"
)

const (
	DefaultFlashPath   = "/flash"
	DefaultMountPoint  = "/opt/switchroot/boot_disk"
	DefaultCmdlinePath = "/proc/cmdline"
	DefaultDevDir      = "/dev"

	defaultSwrDir    = "switchroot/ubuntu"
	defaultBootMMC   = "0"
	defaultBootPart  = "1"
	bootloaderSubdir = "bootloader"
)

// BootDiskOptions controls how the boot disk is located. Zero values use the
// Switchroot defaults.
type BootDiskOptions struct {
	// Override is used as-is when it contains a bootloader directory.
	Override    string
	FlashPath   string
	MountPoint  string
	CmdlinePath string
	DevDir      string
	Runner      CommandRunner
	Logger      *slog.Logger

	// MountTable lists the mounts kept by filter. Defaults to the mount
	// table of this process.
	MountTable func(filter mountinfo.FilterFunc) ([]*mountinfo.Info, error)
}

func (o *BootDiskOptions) applyDefaults() {
	if o.FlashPath == "" {
		o.FlashPath = DefaultFlashPath
	}
	if o.MountPoint == "" {
		o.MountPoint = DefaultMountPoint
	}
	if o.CmdlinePath == "" {
		o.CmdlinePath = DefaultCmdlinePath
	}
	if o.MountTable == nil {
		o.MountTable = mountinfo.GetMounts
	}
	if o.DevDir == "" {
		o.DevDir = DefaultDevDir
	}
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// BootDisk is the root directory holding the hekate bootloader folder.
type BootDisk struct {
	Path    string
	Device  string
	Mounted bool // true only when ResolveBootDisk mounted it

	runner CommandRunner
	logger *slog.Logger
}

// BootParams are the boot disk hints passed by hekate on the kernel command line.
type BootParams struct {
	SwrDir    string
	MMC       string
	Partition string
}

// ResolveBootDisk finds the directory that holds bootloader/. It prefers an
// already available path, then an existing mount of the boot partition, then
// mounts the partition itself, and finally falls back to the flash path. The
// returned disk is never nil; the error wraps ErrNoBootDisk when even the
// fallback has no bootloader directory.
func ResolveBootDisk(ctx context.Context, opts BootDiskOptions) (*BootDisk, error) {
	opts.applyDefaults()
	logger := opts.Logger

	disk := &BootDisk{runner: opts.Runner, logger: logger}

	for _, candidate := range []string{opts.Override, opts.FlashPath} {
		if candidate != "" && hasBootloader(candidate) {
			logger.Info("bootloader files already accessible", "path", candidate)
			disk.Path = candidate
			return disk, nil
		}
	}

	path, device, mounted, err := mountBootPartition(ctx, opts)
	if err != nil {
		logger.Warn("failed to mount boot disk, using fallback path", "fallback", opts.FlashPath, "error", err)
		disk.Path = opts.FlashPath
		return disk, fmt.Errorf("%w: %v", ErrNoBootDisk, err)
	}

	disk.Path = path
	disk.Device = device
	disk.Mounted = mounted

	if !hasBootloader(path) {
		return disk, fmt.Errorf("%w: no %s directory in %s", ErrNoBootDisk, bootloaderSubdir, path)
	}

	return disk, nil
}

func mountBootPartition(ctx context.Context, opts BootDiskOptions) (path, device string, mounted bool, err error) {
	cmdline, err := os.ReadFile(opts.CmdlinePath)
	if err != nil {
		return "", "", false, fmt.Errorf("reading kernel command line: %w", err)
	}

	params := ParseBootParams(string(cmdline))
	device = DevicePath(opts.DevDir, params)

	if _, err := os.Stat(device); err != nil {
		return "", "", false, fmt.Errorf("boot device %s: %w", device, err)
	}

	existing, ok, err := findMountPoint(opts.MountTable, device)
	if err != nil {
		opts.Logger.Warn("could not read mount table", "error", err)
	}
	if ok {
		opts.Logger.Info("boot disk already mounted", "device", device, "path", existing)
		return existing, device, false, nil
	}

	if err := os.MkdirAll(opts.MountPoint, 0755); err != nil {
		return "", "", false, fmt.Errorf("creating mount point: %w", err)
	}

	opts.Logger.Info("mounting boot disk", "device", device, "path", opts.MountPoint)
	if err := opts.Runner.Run(ctx, "mount", device, opts.MountPoint); err != nil {
		return "", "", false, fmt.Errorf("mounting %s: %w", device, err)
	}

	return opts.MountPoint, device, true, nil
}

// ParseBootParams extracts swr_dir, boot_m and boot_p from a kernel command
// line, applying the hekate defaults for missing values.
func ParseBootParams(cmdline string) BootParams {
	params := BootParams{
		SwrDir:    defaultSwrDir,
		MMC:       defaultBootMMC,
		Partition: defaultBootPart,
	}

	for _, field := range strings.Fields(cmdline) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || value == "" {
			continue
		}
		switch key {
		case "swr_dir":
			params.SwrDir = value
		case "boot_m":
			params.MMC = value
		case "boot_p":
			params.Partition = value
		}
	}

	return params
}

// DevicePath returns the block device of the boot partition. mmcblk1 is used
// only when requested and present.
func DevicePath(devDir string, params BootParams) string {
	mmc := "mmcblk0"
	if params.MMC == "1" {
		if _, err := os.Stat(filepath.Join(devDir, "mmcblk1")); err == nil {
			mmc = "mmcblk1"
		}
	}
	return filepath.Join(devDir, fmt.Sprintf("%sp%s", mmc, params.Partition))
}

// findMountPoint returns where device is mounted, using the first entry.
func findMountPoint(table func(mountinfo.FilterFunc) ([]*mountinfo.Info, error), device string) (string, bool, error) {
	mounts, err := table(sourceFilter(device))
	if err != nil {
		return "", false, err
	}
	if len(mounts) == 0 {
		return "", false, nil
	}
	return mounts[0].Mountpoint, true, nil
}

// sourceFilter keeps the first mount of device and stops there.
func sourceFilter(device string) mountinfo.FilterFunc {
	return func(m *mountinfo.Info) (skip, stop bool) {
		if m.Source == device {
			return false, true
		}
		return true, false
	}
}

func hasBootloader(root string) bool {
	info, err := os.Stat(filepath.Join(root, bootloaderSubdir))
	return err == nil && info.IsDir()
}

// Join returns a path below the boot disk root.
func (d *BootDisk) Join(elem ...string) string {
	return filepath.Join(append([]string{d.Path}, elem...)...)
}

// Cleanup unmounts the disk if ResolveBootDisk mounted it.
func (d *BootDisk) Cleanup(ctx context.Context) error {
	if d == nil || !d.Mounted {
		return nil
	}

	if err := d.runner.Run(ctx, "umount", d.Path); err != nil {
		d.logger.Error("failed to unmount boot disk", "path", d.Path, "error", err)
		return fmt.Errorf("unmounting %s: %w", d.Path, err)
	}

	d.logger.Info("boot disk unmounted", "path", d.Path)
	d.Mounted = false
	return nil
}
