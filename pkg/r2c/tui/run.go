package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
)

// Run shows the menu in the terminal until an option is chosen. It returns
// false when the user quit instead.
func Run(ctx context.Context, c *carousel.Carousel, opts Options, in io.Reader, out io.Writer) (carousel.Option, bool, error) {
	m := New(c, opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if in != nil {
		programOpts = append(programOpts, tea.WithInput(in))
	}
	if out != nil {
		programOpts = append(programOpts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		return carousel.Option{}, false, fmt.Errorf("run terminal menu: %w", err)
	}

	option, ok := final.(*Model).Chosen()
	return option, ok, nil
}
