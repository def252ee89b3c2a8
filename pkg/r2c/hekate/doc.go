// Package hekate reads the hekate bootloader layout of a Switch boot disk and
// drives the r2p reboot interface.
//
// A typical session resolves the boot disk, reads the nyx theme, loads the
// launch, configuration, UMS and system entries, and finally hands the chosen
// entry to a Rebooter:
//
//	disk, err := hekate.ResolveBootDisk(ctx, hekate.BootDiskOptions{})
//	if err != nil {
//	    logger.Warn("boot disk not found", "error", err)
//	}
//	defer disk.Cleanup(ctx)
//
//	loader := hekate.NewLoader(disk.Path, logger)
//	launch := loader.LaunchEntries()
//
//	rebooter := hekate.NewRebooter(hekate.RebooterOptions{})
//	err = rebooter.Execute(ctx, launch[0])
package hekate
