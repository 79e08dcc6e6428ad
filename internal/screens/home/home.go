package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/screens/chat"
	"github.com/tensebunny/tensebunny/internal/screens/contact"
	"github.com/tensebunny/tensebunny/internal/screens/games"
	"github.com/tensebunny/tensebunny/internal/screens/history"
	"github.com/tensebunny/tensebunny/internal/screens/lessons"
	"github.com/tensebunny/tensebunny/internal/screens/play"
	"github.com/tensebunny/tensebunny/internal/screens/ranking"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
)

// UpdateAvailableMsg tells the home screen a newer release exists.
type UpdateAvailableMsg struct {
	Version string
}

// Menu positions.
const (
	itemPlacement = iota
	itemLessons
	itemGames
	itemFinal
	itemRanking
	itemHistory
	itemTutor
	itemContact
	itemExit
)

var menuLabels = []string{
	"PLACEMENT TEST",
	"LESSONS",
	"GAMES",
	"FINAL EXAM",
	"RANKING",
	"HISTORY",
	"GRAMMARBOT",
	"CONTACT",
	"EXIT",
}

type stats struct {
	level, xp, streak, badges int
	intoLevel, levelSpan      int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc           *screen.Services
	menu          components.Menu
	latestVersion string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(svc *screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	playMode := func(id string) func() screen.Screen {
		return func() screen.Screen {
			mode, _ := quiz.ModeByID(id)
			return play.New(svc, mode)
		}
	}

	actions := []func() tea.Cmd{
		itemPlacement: push(playMode(quiz.ModePreTest)),
		itemLessons:   push(func() screen.Screen { return lessons.New(svc) }),
		itemGames:     push(func() screen.Screen { return games.New(svc) }),
		itemFinal:     push(playMode(quiz.ModePostTest)),
		itemRanking:   push(func() screen.Screen { return ranking.New(svc) }),
		itemHistory:   push(func() screen.Screen { return history.New(svc.Events) }),
		itemTutor:     push(func() screen.Screen { return chat.New(svc, gateway.ChannelTutor) }),
		itemContact:   push(func() screen.Screen { return contact.New(svc) }),
		itemExit:      func() tea.Cmd { return tea.Quit },
	}

	items := make([]components.MenuItem, len(menuLabels))
	for i, label := range menuLabels {
		items[i] = components.MenuItem{Label: label, Action: actions[i]}
	}
	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

// refresh locks the lessons until the placement test has been taken.
func (h *HomeScreen) refresh() {
	h.menu.Items[itemLessons].Disabled = !h.svc.Placed()
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()

	switch msg := msg.(type) {
	case UpdateAvailableMsg:
		h.latestVersion = msg.Version
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "t" {
			return h, h.svc.ToggleTheme()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 40 || width < 100

	cw := components.ContentWidth(width)
	rec := h.svc.Progress.Current()
	placed := h.svc.Placed()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(rec, placed), cw))
	}

	sections = append(sections, renderStatsBar(statsFor(rec), cw, compact))

	disabled := map[int]bool{itemLessons: !placed}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderArcadeMenu(menuLabels, h.menu.Selected, cw, disabled))
	}

	if !placed {
		sections = append(sections, renderHint("Take the placement test to unlock the lessons.", cw))
	}
	if !h.svc.AI.Capabilities().Chat {
		sections = append(sections, renderAIBanner(cw))
	}
	if h.latestVersion != "" {
		sections = append(sections, renderUpdateNote(h.latestVersion, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func statsFor(rec progress.UserProgress) stats {
	into, span := rec.ProgressToNext()
	return stats{
		level:     rec.Level,
		xp:        rec.XP,
		streak:    rec.Streak,
		badges:    len(rec.Badges),
		intoLevel: into,
		levelSpan: span,
	}
}

func mascotFor(rec progress.UserProgress, placed bool) MascotVariant {
	switch {
	case rec.HasBadge(progress.BadgeGraduate):
		return MascotCelebrating
	case !placed:
		return MascotAlert
	default:
		return MascotIdle
	}
}
