package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

const (
	boxContentWidth = 18
	boxWidth        = boxContentWidth + 2 // rounded border
	boxHeight       = 4                   // two lines plus border
	boxGap          = 1
	leftMargin      = 2
	headerRows      = 3 // title, page dots, blank line
)

const (
	colorText    lipgloss.Color = "#ffffff"
	colorSubtext lipgloss.Color = "#8c8c8c"
	colorButton  lipgloss.Color = "#2d2d2d"
)

type styles struct {
	Title    lipgloss.Style
	Dot      lipgloss.Style
	DotOn    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
	Index    lipgloss.Style
	Empty    lipgloss.Style
	Hint     lipgloss.Style
	Prompt   lipgloss.Style
	Choice   lipgloss.Style
	ChoiceOn lipgloss.Style
}

// hexColor turns any colour into a lipgloss true-colour value.
func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

func newStyles(accent lipgloss.Color) styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorButton).
		Foreground(colorText).
		Width(boxContentWidth).
		Align(lipgloss.Center)

	choice := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(colorText).
		Background(colorButton)

	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Dot:      lipgloss.NewStyle().Foreground(colorSubtext),
		DotOn:    lipgloss.NewStyle().Foreground(accent),
		Box:      box,
		Selected: box.BorderForeground(accent).Bold(true),
		Index:    lipgloss.NewStyle().Foreground(colorSubtext),
		Empty:    lipgloss.NewStyle().Foreground(colorSubtext).Italic(true),
		Hint:     lipgloss.NewStyle().Foreground(colorSubtext),
		Prompt:   lipgloss.NewStyle().Bold(true).Foreground(colorText),
		Choice:   choice,
		ChoiceOn: choice.Background(accent).Bold(true),
	}
}
