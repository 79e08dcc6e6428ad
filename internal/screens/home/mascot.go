package home

import (
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// MascotVariant selects which bunny to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default
	MascotCelebrating                      // Gold, star eyes: graduated
	MascotAlert                            // Orange, exclamation: placement pending
)

const mascotIdle = ` (\_/)
 ( •.•)
 / > ✎`

const mascotCelebrating = ` (\_/)
 ( ★.★)
 \(   )/
  ╚═╝`

const mascotAlert = ` (\_/)  !
 ( •o•)
 / > ?`

// RenderMascot returns the bunny art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
