package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// ResultScreen shows the report of a finished round and links every
// missed topic to its lesson.
type ResultScreen struct {
	svc     *screen.Services
	mode    quiz.Mode
	report  quiz.Report
	earned  []string
	saveErr error
	menu    components.Menu
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// NewResult creates the result screen for a completed report.
func NewResult(svc *screen.Services, mode quiz.Mode, report quiz.Report, earned []string, saveErr error) *ResultScreen {
	r := &ResultScreen{
		svc:     svc,
		mode:    mode,
		report:  report,
		earned:  earned,
		saveErr: saveErr,
	}

	var items []components.MenuItem
	for _, ref := range quiz.Remediate(report) {
		item := components.MenuItem{Label: "📖 Review " + ref.Label}
		if !ref.Found || svc.Lesson == nil {
			item.Disabled = true
			item.Description = "no lesson"
		} else {
			id := ref.Tense.ID
			item.Action = func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: svc.Lesson(id)} }
			}
		}
		items = append(items, item)
	}
	if mode.ID != PracticeMode {
		items = append(items, components.MenuItem{Label: "↻ Play again", Action: r.retry})
	}
	items = append(items, components.MenuItem{Label: "⌂ Back home", Action: func() tea.Cmd {
		return func() tea.Msg { return router.PopToRootMsg{} }
	}})
	r.menu = components.NewMenu(items)
	return r
}

func (r *ResultScreen) Init() tea.Cmd { return nil }

func (r *ResultScreen) Title() string {
	if r.mode.Test {
		return r.mode.Title + " Results"
	}
	return "Round Over"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if r.mode.ID != PracticeMode {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && (kmsg.String() == "r" || kmsg.String() == "R") {
		if r.mode.ID != PracticeMode {
			return r, r.retry()
		}
		return r, nil
	}
	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

func (r *ResultScreen) retry() tea.Cmd {
	next := New(r.svc, r.mode)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (r *ResultScreen) View(width, height int) string {
	rep := r.report
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(r.headline()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%d%%", rep.Percent())))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("%d of %d correct", rep.Score, rep.Total)))
	b.WriteString("\n")
	if rep.Timed {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Answered %d before the clock ran out", rep.Answered)))
		b.WriteString("\n")
	}
	if rep.XP > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
			Render(fmt.Sprintf("+%d XP", rep.XP)))
		b.WriteString("\n")
	}

	bar := components.NewMeter(float64(rep.Score), float64(rep.Total), 30)
	bar.Fill = theme.Primary
	b.WriteString("\n")
	b.WriteString(bar.View())
	b.WriteString("\n")

	if len(r.earned) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("New badges"))
		b.WriteString("\n")
		for _, id := range r.earned {
			info := progress.LookupBadge(id)
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(info.Icon + " " + info.Name))
			b.WriteString("\n")
		}
	}

	if len(rep.Missed) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Topics to review"))
		b.WriteString("\n")
	} else if rep.Total > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Nothing missed. Hop on!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.menu.View())

	if r.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Progress could not be saved: " + r.saveErr.Error()))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (r *ResultScreen) headline() string {
	rep := r.report
	switch {
	case r.mode.ID == quiz.ModePreTest:
		return "🐰 Placement done! Lessons are unlocked."
	case rep.Perfect():
		return "🏆 Perfect score!"
	case rep.Percent() >= 80:
		return "🌟 Great job!"
	case rep.Percent() >= 50:
		return "🥕 Nice effort!"
	default:
		return "🐾 Keep practising!"
	}
}
