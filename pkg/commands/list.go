package commands

import (
	"github.com/spf13/cobra"

	"github.com/switchroot-kiosk/r2c/pkg/r2c"
	"github.com/switchroot-kiosk/r2c/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the menu pages and their r2p arguments",
		Example: `
r2c list
R2C_BOOT_DISK=/mnt/sd r2c list
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(false)
			if err != nil {
				return err
			}
			defer r2c.CloseLogger()

			l := list.List{App: a, Out: cmd.OutOrStdout()}
			return l.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
