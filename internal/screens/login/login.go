package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// MaxNameLength caps the display name.
const MaxNameLength = 24

const bunny = `  (\_/)
 ( ^.^ )  Hello!
 (")(")`

// LoginScreen asks for the learner's name.
type LoginScreen struct {
	svc   *screen.Services
	input components.TextInput
	next  func() screen.Screen
	err   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen that replaces itself with next() once a
// name has been saved.
func New(svc *screen.Services, next func() screen.Screen) *LoginScreen {
	input := components.NewTextInput("Your name...", MaxNameLength)
	if name := svc.Progress.Current().UserName; name != "" {
		input.Model.SetValue(name)
	}
	return &LoginScreen{svc: svc, input: input, next: next}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Title() string {
	return "Welcome"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Let's go!"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" {
			return l, l.submit()
		}
		l.err = ""
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) submit() tea.Cmd {
	name := l.input.Value()
	if name == "" {
		l.input.Submit(false)
		l.err = "Please tell us your name first."
		return nil
	}
	// A failed write still leaves the name set in memory.
	_, _ = l.svc.Progress.Login(context.Background(), name)
	l.input.Submit(true)

	next := l.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (l *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(bunny))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Welcome to TenseBunny"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("What should we call you?"))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	b.WriteString(components.ArcadeCard(l.input.View(), min(cw, 40)))

	if l.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(l.err))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
