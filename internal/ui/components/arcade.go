package components

import (
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// ContentWidth is the shared inner width of the boxes inside the arcade
// cabinet: the frame minus its border and padding, kept within 20..60.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame draws the double-bordered cabinet around the home screen
// and centers content inside it.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder(), true).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		AlignHorizontal(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}

// ArcadeCard is a padded rounded box of outer width cw.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Width(cw - 2).
		AlignHorizontal(lipgloss.Center).
		Render(content)
}

// ButtonState picks how an arcade button is drawn.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonSelected
	ButtonLocked
)

// ArcadeButton draws a menu entry as a bordered button. The selected
// button is lit in yellow and locked ones are dimmed behind a padlock.
func ArcadeButton(label string, state ButtonState, width int) string {
	base := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		AlignHorizontal(lipgloss.Center).
		Border(lipgloss.RoundedBorder(), true)

	switch state {
	case ButtonSelected:
		return base.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	case ButtonLocked:
		return base.Foreground(theme.TextDim).BorderForeground(theme.Border).Render("🔒 " + label)
	default:
		return base.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
}
