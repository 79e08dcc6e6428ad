package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are skipped by the
// cursor and never fire their Action.
type MenuItem struct {
	Label       string
	Description string
	Action      func() tea.Cmd
	Disabled    bool
}

// Menu is a vertical list with a cursor driven by the arrow keys or
// j/k. Enter fires the Action of the item under the cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu puts the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(+1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd { return nil }

// move steps the cursor in direction dir to the next enabled item. It
// stays put when there is none.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(+1)
	case "enter":
		if it, ok := m.SelectedItem(); ok && !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

// SelectedItem is the item under the cursor.
func (m Menu) SelectedItem() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	cursorStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(theme.Border)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := make([]string, 0, len(m.Items))
	for i, it := range m.Items {
		prefix, style := "    ", labelStyle
		switch {
		case it.Disabled:
			style = offStyle
		case i == m.Selected:
			prefix, style = "  ▸ ", cursorStyle
		}
		line := style.Render(prefix + it.Label)
		if it.Description != "" {
			line += descStyle.Render("  " + it.Description)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}
