package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/screens/home"
	"github.com/tensebunny/tensebunny/internal/screens/lessons"
	"github.com/tensebunny/tensebunny/internal/screens/login"
	"github.com/tensebunny/tensebunny/internal/screens/welcome"
	"github.com/tensebunny/tensebunny/internal/selfupdate"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// Options configures the TUI.
type Options struct {
	Services *screen.Services

	// Version is the running build. Updates, when set, is asked in the
	// background whether a newer release exists.
	Version string
	Updates *selfupdate.Checker

	// SkipWelcome starts on the login or home screen directly.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	svc     *screen.Services
	home    *home.HomeScreen
	version string
	updates *selfupdate.Checker
	width   int
	height  int
}

// newAppModel builds the screen stack. Home is always the root; the
// welcome and login screens replace themselves on the way there.
func newAppModel(opts Options) AppModel {
	svc := opts.Services
	if svc.Lesson == nil {
		svc.Lesson = func(tenseID string) screen.Screen { return lessons.NewDetail(svc, tenseID) }
	}

	homeScreen := home.New(svc)
	toHome := func() screen.Screen { return homeScreen }
	next := toHome
	if !svc.Progress.LoggedIn() {
		next = func() screen.Screen { return login.New(svc, toHome) }
	}

	first := next
	if !opts.SkipWelcome {
		first = func() screen.Screen { return welcome.New(next) }
	}

	return AppModel{
		router:  router.New(first()),
		svc:     svc,
		home:    homeScreen,
		version: opts.Version,
		updates: opts.Updates,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.checkUpdate())
}

// checkUpdate looks for a newer release. Failures are silent.
func (m AppModel) checkUpdate() tea.Cmd {
	if m.updates == nil || m.version == "" || m.version == "(devel)" {
		return nil
	}
	checker, version := m.updates, m.version
	return func() tea.Msg {
		res, err := checker.Check(context.Background(), &selfupdate.CheckInput{Version: version})
		if err != nil || !res.UpdateAvailable {
			return nil
		}
		return home.UpdateAvailableMsg{Version: res.LatestVersion}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case home.UpdateAvailableMsg:
		// Home may not be on screen yet.
		_, cmd := m.home.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			return m, m.svc.ToggleTheme()
		case "esc":
			if capturesEscape(m.router.Active()) {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func capturesEscape(s screen.Screen) bool {
	c, ok := s.(screen.EscapeCapturer)
	return ok && c.CapturesEscape()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	rec := m.svc.Progress.Current()
	header := layout.RenderHeader(m.router.Trail(" › "), layout.HeaderStats{
		Level:  rec.Level,
		XP:     rec.XP,
		Streak: rec.Streak,
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+T", Description: "Theme"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run applies the saved theme and starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Services.Themes != nil {
		if t, err := opts.Services.Themes.LoadTheme(context.Background()); err == nil {
			theme.Apply(t)
		}
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
