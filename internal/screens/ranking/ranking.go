// Package ranking is the Achievement Hall: final exam scores, best
// first, and the learner's badges.
package ranking

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/screens/play"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// BoardSize is the number of entries shown.
const BoardSize = 10

type scoresLoadedMsg struct {
	Scores []progress.ScoreEntry
	Err    error
}

// RankingScreen shows the score board.
type RankingScreen struct {
	svc    *screen.Services
	scores []progress.ScoreEntry
	loaded bool
	errMsg string
	start  components.Button
}

var _ screen.Screen = (*RankingScreen)(nil)
var _ screen.KeyHintProvider = (*RankingScreen)(nil)

// New creates the ranking screen.
func New(svc *screen.Services) *RankingScreen {
	r := &RankingScreen{svc: svc}
	r.start = components.NewButton("Take the Final Exam (30 questions)", true, r.startExam)
	return r
}

func (r *RankingScreen) Init() tea.Cmd {
	board := r.svc.Scores
	if board == nil {
		return func() tea.Msg { return scoresLoadedMsg{} }
	}
	return func() tea.Msg {
		scores, err := board.TopScores(context.Background(), BoardSize)
		return scoresLoadedMsg{Scores: scores, Err: err}
	}
}

func (r *RankingScreen) Title() string { return "Achievement Hall" }

func (r *RankingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Final Exam"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RankingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		r.loaded = true
		if msg.Err != nil {
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		r.scores = msg.Scores
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "f" {
			return r, r.startExam()
		}
	}
	var cmd tea.Cmd
	r.start, cmd = r.start.Update(msg)
	return r, cmd
}

func (r *RankingScreen) startExam() tea.Cmd {
	mode, err := quiz.ModeByID(quiz.ModePostTest)
	if err != nil {
		return nil
	}
	next := play.New(r.svc, mode)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// best returns the learner's highest final exam percentage.
func (r *RankingScreen) best(name string) (int, bool) {
	best, found := 0, false
	for _, e := range r.scores {
		if e.Name == name && (!found || e.PostScore > best) {
			best, found = e.PostScore, true
		}
	}
	return best, found
}

func (r *RankingScreen) View(width, height int) string {
	user := progress.Default()
	if r.svc.Progress != nil {
		user = r.svc.Progress.Current()
	}
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("🏆  Achievement Hall"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Well done, %s! Take the Final Exam to see your progress here.", displayName(user.UserName))))
	b.WriteString("\n\n")

	if best, ok := r.best(user.UserName); ok {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("BEST MASTERY SCORE"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d%%", best)))
		b.WriteString("\n\n")
	}

	switch {
	case !r.loaded:
		b.WriteString(theme.Hint.Render("Loading scores..."))
	case r.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load scores: " + r.errMsg))
	case len(r.scores) == 0:
		b.WriteString(theme.Hint.Render("No final exams yet. Be the first!"))
	default:
		b.WriteString(r.renderBoard(user.UserName))
	}
	b.WriteString("\n\n")

	if len(user.Badges) > 0 {
		var badges []string
		for _, id := range user.Badges {
			info := progress.LookupBadge(id)
			badges = append(badges, info.Icon+" "+info.Name)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Your badges"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(strings.Join(badges, "   ")))
		b.WriteString("\n\n")
	}

	b.WriteString(r.start.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (r *RankingScreen) renderBoard(current string) string {
	header := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-4s %-16s %6s %6s %7s %6s  %s", "#", "NAME", "PRE", "POST", "AVG", "GAIN", "DATE")))
	b.WriteString("\n")
	for i, e := range r.scores {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Name == current {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		medal := fmt.Sprintf("%d.", i+1)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		line := fmt.Sprintf("%-4s %-16s %5d%% %5d%% %6.1f%% %+5d  %s",
			medal,
			truncate(displayName(e.Name), 16),
			e.PreScore,
			e.PostScore,
			e.Average,
			e.Improvement(),
			e.Date.Local().Format("2006-01-02"))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func displayName(name string) string {
	if name == "" {
		return "friend"
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
