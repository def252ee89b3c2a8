package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/i18n"
)

// keyMap is the menu and confirmation prompt bindings. Help descriptions
// are message IDs and are translated when the hint is drawn.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Move     key.Binding // hint only
	Activate key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Quit     key.Binding

	Toggle    key.Binding
	Yes       key.Binding
	Accept    key.Binding
	Decline   key.Binding
	Interrupt key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Move:     key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", i18n.Move)),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", i18n.Select)),
		PrevPage: key.NewBinding(key.WithKeys("pgup", "[")),
		NextPage: key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("pgup/pgdn", i18n.TurnPage)),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", i18n.Quit)),

		Toggle:    key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab")),
		Yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", i18n.Confirm)),
		Accept:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", i18n.Select)),
		Decline:   key.NewBinding(key.WithKeys("n", "esc", "q"), key.WithHelp("n", i18n.Cancel)),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// MenuHelp is the footer of the page view.
func (k keyMap) MenuHelp() []key.Binding {
	return []key.Binding{k.Move, k.Activate, k.NextPage, k.Quit}
}

// ConfirmHelp is the footer of the confirmation prompt.
func (k keyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Yes, k.Accept, k.Decline}
}

// translated copies bindings with their help descriptions resolved by tr.
func translated(tr *i18n.Translator, bindings []key.Binding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(h.Key, tr.T(h.Desc))))
	}
	return out
}
