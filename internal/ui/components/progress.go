package components

import (
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// Meter is a one-line bar filled to Ratio (0..1) of Width cells.
type Meter struct {
	Ratio float64
	Width int

	// Fill colors the filled cells. Nil uses theme.Secondary.
	Fill color.Color
}

// NewMeter returns a meter for part out of whole. A zero whole reads as
// empty.
func NewMeter(part, whole float64, width int) Meter {
	r := 0.0
	if whole > 0 {
		r = part / whole
	}
	return Meter{Ratio: r, Width: width}
}

// Filled is the number of filled cells, clamped to the width.
func (m Meter) Filled() int {
	w := max(m.Width, 1)
	return min(max(int(math.Round(m.Ratio*float64(w))), 0), w)
}

func (m Meter) View() string {
	w := max(m.Width, 1)
	n := m.Filled()
	fill := m.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", n)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", w-n))
}
