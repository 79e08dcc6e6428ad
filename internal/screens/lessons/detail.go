package lessons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/screens/play"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// PracticeSize is the number of questions requested for AI practice.
const PracticeSize = 5

type speechDoneMsg struct {
	Err error
}

type practiceReadyMsg struct {
	Pool catalog.Pool
	Err  error
}

// DetailScreen shows one tense: what it is for, how it is built, and
// example sentences that can be read aloud.
type DetailScreen struct {
	svc    *screen.Services
	tense  catalog.Tense
	found  bool
	cursor int
	status string
	busy   bool
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates the lesson for a tense ID.
func NewDetail(svc *screen.Services, tenseID string) *DetailScreen {
	t, err := catalog.GetTense(tenseID)
	return &DetailScreen{svc: svc, tense: t, found: err == nil}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }

func (d *DetailScreen) Title() string {
	if !d.found {
		return "Lesson"
	}
	return d.tense.Name
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	if !d.found {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Example"},
		{Key: "S", Description: "Listen"},
		{Key: "P", Description: "AI practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case speechDoneMsg:
		d.busy = false
		d.status = screen.SpeechStatus(msg.Err)
		return d, nil

	case practiceReadyMsg:
		d.busy = false
		if msg.Err != nil {
			d.status = practiceStatus(msg.Err)
			return d, nil
		}
		d.status = ""
		next := play.NewPractice(d.svc, d.tense, msg.Pool)
		return d, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if !d.found {
			return d, nil
		}
		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.tense.Examples)-1 {
				d.cursor++
			}
		case "s", "S", "enter":
			return d, d.speak()
		case "p", "P":
			return d, d.practice()
		}
	}
	return d, nil
}

func (d *DetailScreen) speak() tea.Cmd {
	if d.busy || len(d.tense.Examples) == 0 {
		return nil
	}
	d.busy = true
	d.status = "Speaking…"
	ai := d.svc.AI
	sentence := d.tense.Examples[d.cursor].Text
	return func() tea.Msg {
		return speechDoneMsg{Err: ai.SpeakAndPlay(context.Background(), sentence)}
	}
}

func (d *DetailScreen) practice() tea.Cmd {
	if d.busy {
		return nil
	}
	if !d.svc.AI.Capabilities().Practice {
		d.status = practiceStatus(gateway.ErrNoBackend)
		return nil
	}
	d.busy = true
	d.status = "Writing practice questions…"
	ai := d.svc.AI
	id := d.tense.ID
	return func() tea.Msg {
		pool, err := ai.Practice(context.Background(), id, PracticeSize)
		return practiceReadyMsg{Pool: pool, Err: err}
	}
}

func practiceStatus(err error) string {
	if errors.Is(err, gateway.ErrNoBackend) {
		return "AI practice needs an API key. Run `tensebunny llm list` to check."
	}
	return "Could not write practice questions. Try again in a moment."
}

func (d *DetailScreen) View(width, height int) string {
	if !d.found {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("This lesson is not available."))
	}

	t := d.tense
	contentWidth := min(width-8, 72)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + t.Name))
	b.WriteString("\n")
	b.WriteString(dim.Render("  " + catalog.EraDisplayName(t.Era) + " tense"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		PaddingLeft(2).
		Render(t.Description))
	b.WriteString("\n\n")

	b.WriteString(heading.Render("  Formula"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("  " + t.Formula.String()))
	b.WriteString("\n")
	if t.Formula.Note != "" {
		b.WriteString(dim.Render("  " + t.Formula.Note))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(t.SignalWords) > 0 {
		b.WriteString(heading.Render("  Signal words"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			PaddingLeft(2).
			Foreground(theme.Text).
			Render(strings.Join(t.SignalWords, " · ")))
		b.WriteString("\n\n")
	}

	if len(t.Usages) > 0 {
		b.WriteString(heading.Render("  When to use it"))
		b.WriteString("\n")
		for _, u := range t.Usages {
			b.WriteString(lipgloss.NewStyle().Width(contentWidth).Foreground(theme.Text).Render("  • " + u))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(t.Examples) > 0 {
		b.WriteString(heading.Render("  Examples"))
		b.WriteString("\n")
		for i, ex := range t.Examples {
			b.WriteString(d.renderExample(i, ex))
			b.WriteString("\n")
		}
	}

	if d.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  " + d.status))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

// renderExample highlights the verb phrase of an example sentence.
func (d *DetailScreen) renderExample(i int, ex catalog.Example) string {
	selected := i == d.cursor
	cursor := "    "
	text := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		cursor = "  ▸ "
		text = text.Bold(true)
	}
	verb := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	sentence := text.Render(ex.Text)
	if before, after, ok := strings.Cut(ex.Text, ex.Verb); ok && ex.Verb != "" {
		sentence = text.Render(before) + verb.Render(ex.Verb) + text.Render(after)
	}
	line := cursor + sentence
	if ex.Category != "" {
		line += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  (%s)", ex.Category))
	}
	return line
}
