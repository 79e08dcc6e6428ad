// Package layout draws the frame every screen sits in: a header bar with
// the learner's level, the screen body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// The smallest terminal the app will draw into.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("TenseBunny needs a bigger window.\n\nAt least %d x %d, please.\n\nNow: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(text))
}

// HeaderStats is the learner summary shown at the right of the header.
type HeaderStats struct {
	Level  int
	XP     int
	Streak int
}

func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader puts the brand on the left, the screen title in the
// middle and the learner's level, XP and streak on the right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  TenseBunny")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	level := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
		Render(fmt.Sprintf("Lv %d · %d XP", stats.Level, stats.XP))
	streak := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("★ %d day", stats.Streak))
	stat := level + "   " + streak

	// Two columns of the width go to the border.
	inner := max(width-4, 0)
	bw, tw, sw := lipgloss.Width(brand), lipgloss.Width(mid), lipgloss.Width(stat)
	gapL := max((inner-tw)/2-bw, 1)
	gapR := max(inner-bw-gapL-tw-sw, 1)

	return bar(width, brand+strings.Repeat(" ", gapL)+mid+strings.Repeat(" ", gapR)+stat)
}

// RenderFooter lists key hints, bold key first.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description))
	}
	return bar(width, b.String())
}

// RenderFrame stacks header, body and footer, stretching the body to
// fill whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
