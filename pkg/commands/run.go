package commands

import (
	"github.com/spf13/cobra"

	"github.com/switchroot-kiosk/r2c/pkg/r2c"
	"github.com/switchroot-kiosk/r2c/pkg/runner/kiosk"
)

func addRun(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the full screen menu",
		Example: `
r2c run
ENVIRONMENT=DEV r2c run --dry-run
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKiosk(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runKiosk(cmd *cobra.Command) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer r2c.CloseLogger()

	k := kiosk.Kiosk{App: a}
	return k.Do(cmd.Context())
}
