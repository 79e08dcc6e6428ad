// Package welcome is the splash screen: the bunny hops in, the three
// eras of the tense timeline light up one by one, then the banner shows.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

const (
	frame       = 100 * time.Millisecond
	eraStep     = 400 * time.Millisecond
	sparkleFrom = 500 * time.Millisecond
	bannerFrom  = sparkleFrom + 3*eraStep
	animLength  = 4500 * time.Millisecond
)

const bunny = `  ╭───────────╮
  │   (\_/)   │
  │  ( o.o )  │
  │  (> ♥ <)  │
  │   "   "   │
  ╰───────────╯`

// timelineOrder is left to right on the splash, unlike the catalog's
// present-first listing.
var timelineOrder = []catalog.Era{catalog.EraPast, catalog.EraPresent, catalog.EraFuture}

type tickMsg time.Time

// WelcomeScreen animates until a key is pressed, then replaces itself
// with the screen built by next. It never moves on by itself.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frames  int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.elapsed = min(w.elapsed+frame, animLength)
		w.frames++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		s := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
	}
	return w, nil
}

// erasLit is how many timeline eras are showing.
func (w *WelcomeScreen) erasLit() int {
	if w.elapsed < sparkleFrom {
		return 0
	}
	return min(int((w.elapsed-sparkleFrom)/eraStep)+1, len(timelineOrder))
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{w.renderBunny()}
	if n := w.erasLit(); n > 0 {
		parts = append(parts, "", renderTimeline(n))
	}
	if w.elapsed >= bannerFrom {
		parts = append(parts,
			"",
			RenderBanner(width, height),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Let's master English tenses together!"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

// renderBunny draws the mascot, flanked by blinking flowers once the
// intro is under way.
func (w *WelcomeScreen) renderBunny() string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(bunny)
	if w.elapsed < sparkleFrom {
		return art
	}
	flower := []string{"✿", "❀"}[w.frames%2]
	a := lipgloss.NewStyle().Foreground(theme.Accent).Render(flower)
	b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(flower)

	lines := strings.Split(art, "\n")
	for i := 0; i < len(lines); i += 2 {
		l, r := a, b
		if i%4 == 2 {
			l, r = b, a
		}
		lines[i] = l + "  " + lines[i] + "  " + r
	}
	return strings.Join(lines, "\n")
}

// renderTimeline shows the first lit eras of Past ─ Present ─ Future and
// dims the rest.
func renderTimeline(lit int) string {
	on := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	off := lipgloss.NewStyle().Foreground(theme.Border)
	line := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" ── ")

	cells := make([]string, len(timelineOrder))
	for i, e := range timelineOrder {
		style := off
		if i < lit {
			style = on
		}
		cells[i] = style.Render("● " + catalog.EraDisplayName(e))
	}
	return strings.Join(cells, line)
}
