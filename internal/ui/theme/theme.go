package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/progress"
)

// Palette is one complete set of UI colors.
type Palette struct {
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
}

// DarkPalette is the night-time look.
var DarkPalette = Palette{
	Primary:      lipgloss.Color("#EC4899"), // Bunny Pink
	Secondary:    lipgloss.Color("#14B8A6"), // Teal
	Accent:       lipgloss.Color("#F97316"), // Carrot
	Success:      lipgloss.Color("#22C55E"),
	Error:        lipgloss.Color("#F43F5E"),
	Text:         lipgloss.Color("#F8FAFC"),
	TextDim:      lipgloss.Color("#94A3B8"),
	BgDark:       lipgloss.Color("#0F172A"),
	BgCard:       lipgloss.Color("#1E293B"),
	Border:       lipgloss.Color("#334155"),
	ArcadeYellow: lipgloss.Color("#FACC15"),
	ArcadeCyan:   lipgloss.Color("#22D3EE"),
}

// LightPalette is the daytime look.
var LightPalette = Palette{
	Primary:      lipgloss.Color("#DB2777"),
	Secondary:    lipgloss.Color("#0F766E"),
	Accent:       lipgloss.Color("#C2410C"),
	Success:      lipgloss.Color("#15803D"),
	Error:        lipgloss.Color("#BE123C"),
	Text:         lipgloss.Color("#0F172A"),
	TextDim:      lipgloss.Color("#475569"),
	BgDark:       lipgloss.Color("#FFF7ED"),
	BgCard:       lipgloss.Color("#FCE7F3"),
	Border:       lipgloss.Color("#F9A8D4"),
	ArcadeYellow: lipgloss.Color("#CA8A04"),
	ArcadeCyan:   lipgloss.Color("#0891B2"),
}

// Color palette, set by Apply.
var (
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current = progress.ThemeDark

func init() {
	Apply(progress.ThemeDark)
}

// Current returns the theme most recently applied.
func Current() progress.Theme {
	return current
}

// Apply switches every color and style to the given theme. It is only
// called from the UI goroutine.
func Apply(t progress.Theme) {
	p := DarkPalette
	if t == progress.ThemeLight {
		p = LightPalette
	} else {
		t = progress.ThemeDark
	}
	current = t
	use(p)
}

func use(p Palette) {
	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border
	ArcadeYellow = p.ArcadeYellow
	ArcadeCyan = p.ArcadeCyan

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Text).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
