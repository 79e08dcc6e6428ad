package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/store"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// PageSize is how many rounds the history shows.
const PageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEventRecord
	Stats    []store.ModeStats
	Err      error
}

// HistoryScreen displays past rounds and totals per mode.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionEventRecord
	stats     []store.ModeStats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. eventRepo may be nil when running
// without a database.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.eventRepo == nil {
		s.loaded = true
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionEvents(ctx, store.QueryOpts{Limit: PageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.StatsByMode(ctx)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions}
		}
		return historyLoadedMsg{Sessions: sessions, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if len(s.sessions) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.eventRepo == nil {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  History is kept only when a database is configured.")
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No rounds yet. Hop into a game!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.stats) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderStats()))
		b.WriteString("\n\n")
	}

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-18s  %s  %2d/%-2d  +%d XP  %s",
			prefix,
			sess.Timestamp.Format("Jan 02 15:04"),
			modeTitle(sess.Mode),
			formatDuration(sess.DurationSecs),
			sess.Score, sess.Total, sess.XP,
			actionLabel(sess.Action))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if sess.Action != "complete" {
			style = style.Foreground(theme.TextDim)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderMissed(sess.Missed)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderStats() string {
	header := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	var rows []string
	rows = append(rows, header.Render(fmt.Sprintf("%-18s  %6s  %8s  %6s", "MODE", "ROUNDS", "ACCURACY", "XP")))
	for _, m := range s.stats {
		var accuracy float64
		if m.Questions > 0 {
			accuracy = float64(m.Correct) / float64(m.Questions) * 100
		}
		rows = append(rows, fmt.Sprintf("%-18s  %6d  %7.0f%%  %6d", modeTitle(m.Mode), m.Sessions, accuracy, m.XP))
	}
	return theme.Card.Render(strings.Join(rows, "\n"))
}

func renderMissed(missed []string) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(missed) == 0 {
		return dim.Render("    Nothing missed")
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).
		Render("    Missed: " + strings.Join(missed, ", "))
}

func modeTitle(id string) string {
	if mode, err := quiz.ModeByID(id); err == nil {
		return mode.Title
	}
	if id == "practice" {
		return "Practice"
	}
	return id
}

func actionLabel(action string) string {
	switch action {
	case "complete":
		return "✓"
	case "abandon":
		return "left early"
	default:
		return action
	}
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
