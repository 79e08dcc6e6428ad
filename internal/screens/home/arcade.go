package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

const arcadeTitleFull = `╔╦╗┌─┐┌┐┌┌─┐┌─┐  ╔╗ ┬ ┬┌┐┌┌┐┌┬ ┬
 ║ ├┤ │││└─┐├┤   ╠╩╗│ ││││││││└┬┘
 ╩ └─┘┘└┘└─┘└─┘  ╚═╝└─┘┘└┘┘└┘ ┴ `

const arcadeTitleCompact = "T E N S E · B U N N Y"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders level, XP, streak and badge count in a bordered
// box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	xpStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s %s",
			levelStyle.Render(fmt.Sprintf("Lv%d", st.level)),
			xpStyle.Render(fmt.Sprintf("%dxp", st.xp)),
			streakStyle.Render(fmt.Sprintf("★%d", st.streak)),
			badgeStyle.Render(fmt.Sprintf("◆%d", st.badges)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s  %s",
			levelStyle.Render(fmt.Sprintf("LEVEL %d", st.level)),
			xpStyle.Render(fmt.Sprintf("%d/%d XP", st.intoLevel, st.levelSpan)),
			streakStyle.Render(fmt.Sprintf("★ %d DAY", st.streak)),
			badgeStyle.Render(fmt.Sprintf("◆ %d BADGES", st.badges)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu draws each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		state := components.ButtonIdle
		switch {
		case disabled[i]:
			state = components.ButtonLocked
		case i == selected:
			state = components.ButtonSelected
		}
		buttons[i] = components.ArcadeButton(label, state, buttonWidth)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render(" 🔒 " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderAIBanner renders a note when no AI backend is configured.
func renderAIBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an AI API key to chat with GrammarBot (see tensebunny --help)")
}

// renderHint renders a dim one-line note.
func renderHint(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return renderHint(fmt.Sprintf("New version %s available (tensebunny update)", latestVersion), cw)
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
