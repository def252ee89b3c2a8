package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/switchroot-kiosk/r2c/pkg/r2c"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/i18n"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/menu"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/tui"
)

func addTUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Show the menu in the terminal",
		Example: `
r2c tui
r2c tui --dry-run
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(true)
			if err != nil {
				return err
			}
			defer r2c.CloseLogger()

			ctx := cmd.Context()
			a.IconSize = 0

			m, err := a.Load(ctx, nil)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(ctx) }()

			c := m.NewCarousel(a.CarouselSettings(true))
			tr := a.Translator()

			option, ok, err := tui.Run(ctx, c, tui.Options{
				Translator:   tr,
				Accent:       m.Nyx.ThemeColor,
				NeedsConfirm: a.NeedsConfirm,
			}, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil || !ok {
				return err
			}

			message := tr.TWithData(i18n.Executing, map[string]any{"Name": option.Name})
			if entry, ok := menu.EntryOf(option); ok && entry.Kind == hekate.KindShutdown {
				message = tr.T(i18n.ShuttingDown)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)

			return a.Execute(ctx, option)
		},
	}

	topLevel.AddCommand(cmd)
}
