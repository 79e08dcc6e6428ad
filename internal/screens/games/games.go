// Package games is the mini-game menu.
package games

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/screens/play"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// GamesScreen lists every mini-game with its reward.
type GamesScreen struct {
	svc   *screen.Services
	games []quiz.Mode
	menu  components.Menu
}

var _ screen.Screen = (*GamesScreen)(nil)
var _ screen.KeyHintProvider = (*GamesScreen)(nil)

// New creates the games menu.
func New(svc *screen.Services) *GamesScreen {
	g := &GamesScreen{svc: svc, games: quiz.Games()}

	items := make([]components.MenuItem, len(g.games))
	for i, m := range g.games {
		items[i] = components.MenuItem{
			Label:       fmt.Sprintf("%s  %-18s", m.Icon, m.Title),
			Description: reward(m),
			Action: func() tea.Cmd {
				next := play.New(svc, m)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		}
	}
	g.menu = components.NewMenu(items)
	return g
}

func reward(m quiz.Mode) string {
	if m.Timed {
		return fmt.Sprintf("%d XP / answer · timed", m.XPPerCorrect)
	}
	return fmt.Sprintf("%d XP / answer", m.XPPerCorrect)
}

func (g *GamesScreen) Init() tea.Cmd { return nil }

func (g *GamesScreen) Title() string { return "Games" }

func (g *GamesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GamesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	g.menu, cmd = g.menu.Update(msg)
	return g, cmd
}

func (g *GamesScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("🎮  PICK A GAME"))
	b.WriteString("\n\n")
	b.WriteString(g.menu.View())

	if g.menu.Selected >= 0 && g.menu.Selected < len(g.games) {
		m := g.games[g.menu.Selected]
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(min(width-8, 60)).
			Foreground(theme.TextDim).
			Italic(true).
			Render(m.Description))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
