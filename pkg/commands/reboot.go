package commands

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/switchroot-kiosk/r2c/pkg/r2c"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
)

// rebootActions are the r2p actions hekate understands.
var rebootActions = []string{"self", "normal", "bootloader", "ums"}

func addReboot(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reboot ACTION [PARAM1] [PARAM2]",
		Short: "Reboot through r2p without showing the menu",
		Example: `
r2c reboot self 2 0     # hekate_ipl.ini entry 2
r2c reboot self 1 1     # first entry of bootloader/ini
r2c reboot ums 0        # SD card as USB mass storage
r2c reboot bootloader
`,
		ValidArgs: rebootActions,
		Args:      cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rebootArgs, err := parseRebootArgs(args)
			if err != nil {
				return err
			}

			a, err := setup(false)
			if err != nil {
				return err
			}
			defer r2c.CloseLogger()

			return a.Reboot(cmd.Context(), rebootArgs)
		},
	}

	topLevel.AddCommand(cmd)
}

func parseRebootArgs(args []string) (hekate.RebootArgs, error) {
	if !slices.Contains(rebootActions, args[0]) {
		return hekate.RebootArgs{}, fmt.Errorf("unknown action %q, want one of %v", args[0], rebootActions)
	}

	params := []string{"0", "0"}
	for i, p := range args[1:] {
		if _, err := strconv.ParseUint(p, 10, 8); err != nil {
			return hekate.RebootArgs{}, fmt.Errorf("param%d %q is not a number between 0 and 255", i+1, p)
		}
		params[i] = p
	}

	return hekate.RebootArgs{Action: args[0], Param1: params[0], Param2: params[1]}, nil
}

func addShutdown(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "shutdown",
		Short: "Power the device off",
		Example: `
r2c shutdown
`,
		ValidArgs: []string{},
		Args:      cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(false)
			if err != nil {
				return err
			}
			defer r2c.CloseLogger()

			return a.Shutdown(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
