// Package tui is the terminal frontend of the reboot menu. It drives the same
// carousel as the SDL kiosk with keys, wheel and mouse clicks, without page
// animation.
package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/i18n"
)

// AggregatorSettings are gesture thresholds in terminal cells. One wheel
// notch is one unit, so two notches turn the page.
var AggregatorSettings = carousel.AggregatorSettings{
	ScrollThreshold: carousel.DefaultScrollThreshold,
	ScrollWindow:    carousel.DefaultScrollWindow,
	DragThreshold:   3,
}

// Options configures the model.
type Options struct {
	Translator *i18n.Translator
	Accent     color.Color // nil uses the nyx default teal

	// NeedsConfirm reports whether an activated option asks before it is
	// returned.
	NeedsConfirm func(carousel.Option) bool
}

// Model is a bubbletea model over a carousel. The carousel should be built
// with Settings.Immediate so page changes complete without a renderer.
type Model struct {
	c           *carousel.Carousel
	unsubscribe func()
	tr          *i18n.Translator
	styles      styles
	keys        keyMap
	help        help.Model
	confirm     func(carousel.Option) bool

	width, height int

	pointerDown *carousel.Point
	activated   *carousel.Option
	confirming  bool
	confirmYes  bool

	chosen *carousel.Option
	quit   bool
}

// New subscribes to c until Close. The model reads activations from it, so
// c must not be shared with another frontend at the same time.
func New(c *carousel.Carousel, opts Options) *Model {
	accent := lipgloss.Color("#00e6c4")
	if opts.Accent != nil {
		accent = hexColor(opts.Accent)
	}

	m := &Model{
		c:       c,
		tr:      opts.Translator,
		styles:  newStyles(accent),
		keys:    defaultKeyMap(),
		help:    help.New(),
		confirm: opts.NeedsConfirm,
	}
	m.unsubscribe = c.Subscribe(func(e carousel.Event) {
		if a, ok := e.(carousel.OptionActivated); ok {
			option := a.Option
			m.activated = &option
		}
	})
	return m
}

// Close detaches the model from its carousel. It is safe to call twice.
func (m *Model) Close() {
	m.unsubscribe()
}

// Chosen returns the option the user picked and confirmed.
func (m *Model) Chosen() (carousel.Option, bool) {
	if m.chosen == nil {
		return carousel.Option{}, false
	}
	return *m.chosen, true
}

// Quit reports whether the user left without choosing.
func (m *Model) Quit() bool {
	return m.quit
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		if m.confirming {
			return m, nil
		}
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.c.Handle(carousel.KeyEvent{Key: carousel.KeyUp})
	case key.Matches(msg, m.keys.Down):
		m.c.Handle(carousel.KeyEvent{Key: carousel.KeyDown})
	case key.Matches(msg, m.keys.Left):
		m.c.Handle(carousel.KeyEvent{Key: carousel.KeyLeft})
	case key.Matches(msg, m.keys.Right):
		m.c.Handle(carousel.KeyEvent{Key: carousel.KeyRight})
	case key.Matches(msg, m.keys.Activate):
		m.c.Handle(carousel.KeyEvent{Key: carousel.KeyEnter})
	case key.Matches(msg, m.keys.PrevPage):
		m.c.GoPrevious()
	case key.Matches(msg, m.keys.NextPage):
		m.c.GoNext()
	}
	return m.afterInput()
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := carousel.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.c.Handle(carousel.WheelEvent{DeltaY: 1})
	case msg.Button == tea.MouseButtonWheelDown:
		m.c.Handle(carousel.WheelEvent{DeltaY: -1})
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.pointerDown = &p
		m.c.Handle(carousel.PointerDown{Point: p})
	case msg.Action == tea.MouseActionRelease:
		down := m.pointerDown
		m.pointerDown = nil
		m.c.Handle(carousel.PointerUp{Point: p})
		if down != nil && down.X == p.X && down.Y == p.Y {
			if i := m.cellAt(msg.X, msg.Y); i >= 0 {
				m.c.ActivateAt(i)
			}
		}
	}
	return m.afterInput()
}

// afterInput turns a pending activation into a confirmation prompt or the
// final choice.
func (m *Model) afterInput() (tea.Model, tea.Cmd) {
	m.c.ReleasePress()

	if m.activated == nil {
		return m, nil
	}
	if m.confirm != nil && m.confirm(*m.activated) {
		m.confirming = true
		m.confirmYes = false
		return m, nil
	}
	m.chosen = m.activated
	return m, tea.Quit
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		m.quit = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.confirmYes = !m.confirmYes
	case key.Matches(msg, m.keys.Yes, m.keys.Accept):
		if m.confirmYes || key.Matches(msg, m.keys.Yes) {
			m.chosen = m.activated
			return m, tea.Quit
		}
		m.confirming = false
		m.activated = nil
	case key.Matches(msg, m.keys.Decline):
		m.confirming = false
		m.activated = nil
	}
	return m, nil
}

// cellAt maps a terminal cell to a display index on the current page.
func (m *Model) cellAt(x, y int) int {
	page, ok := m.c.CurrentPage()
	if !ok || page.IsEmpty() {
		return -1
	}

	x -= leftMargin
	y -= headerRows
	if x < 0 || y < 0 {
		return -1
	}
	col, row := x/(boxWidth+boxGap), y/boxHeight
	if x%(boxWidth+boxGap) >= boxWidth || col >= page.Columns || row >= page.Rows {
		return -1
	}
	if i := row*page.Columns + col; i < page.Len() {
		return i
	}
	return -1
}

func (m *Model) View() string {
	if m.confirming && m.activated != nil {
		return m.viewConfirm()
	}

	page, ok := m.c.CurrentPage()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", leftMargin) + m.styles.Title.Render(page.Title) + "\n")
	b.WriteString(strings.Repeat(" ", leftMargin) + m.dots() + "\n\n")

	if page.IsEmpty() {
		b.WriteString(strings.Repeat(" ", leftMargin) + m.styles.Empty.Render(page.EmptyMessage) + "\n")
	} else {
		for row := 0; row <= page.LastRow(); row++ {
			boxes := make([]string, 0, page.Columns*2)
			for col := 0; col < page.ColumnsInRow(row); col++ {
				i := row*page.Columns + col
				if col > 0 {
					boxes = append(boxes, strings.Repeat(" ", boxGap))
				}
				boxes = append(boxes, m.box(page, i))
			}
			line := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
			b.WriteString(lipgloss.NewStyle().MarginLeft(leftMargin).Render(line) + "\n")
		}
	}

	b.WriteString("\n" + strings.Repeat(" ", leftMargin) + m.styles.Hint.Render(m.hint()))
	return b.String()
}

func (m *Model) dots() string {
	dots := make([]string, m.c.Len())
	for i := range dots {
		if i == m.c.CurrentPageIndex() {
			dots[i] = m.styles.DotOn.Render("●")
		} else {
			dots[i] = m.styles.Dot.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (m *Model) box(page *carousel.Page, i int) string {
	option := page.Options[i]
	style := m.styles.Box
	if i == page.SelectedIndex {
		style = m.styles.Selected
	}
	body := truncate(option.Name, boxContentWidth) + "\n" + m.styles.Index.Render(fmt.Sprintf("#%d", option.Index))
	return style.Render(body)
}

func (m *Model) hint() string {
	return m.help.ShortHelpView(translated(m.tr, m.keys.MenuHelp()))
}

func (m *Model) viewConfirm() string {
	prompt := m.tr.TWithData(i18n.ConfirmPrompt, map[string]any{"Name": m.activated.Name})

	yes, no := m.styles.Choice, m.styles.ChoiceOn
	if m.confirmYes {
		yes, no = m.styles.ChoiceOn, m.styles.Choice
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		yes.Render(m.tr.T(i18n.Confirm)), "  ", no.Render(m.tr.T(i18n.Cancel)))

	return lipgloss.NewStyle().Margin(1, leftMargin).Render(
		m.styles.Prompt.Render(prompt) + "\n\n" + buttons + "\n\n" +
			m.help.ShortHelpView(translated(m.tr, m.keys.ConfirmHelp())))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
