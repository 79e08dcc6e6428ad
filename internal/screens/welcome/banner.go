package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

const bannerArt = `
 ████████╗███████╗███╗   ██╗███████╗███████╗
 ╚══██╔══╝██╔════╝████╗  ██║██╔════╝██╔════╝
    ██║   █████╗  ██╔██╗ ██║███████╗█████╗
    ██║   ██╔══╝  ██║╚██╗██║╚════██║██╔══╝
    ██║   ███████╗██║ ╚████║███████║███████╗
    ╚═╝   ╚══════╝╚═╝  ╚═══╝╚══════╝╚══════╝
 ██████╗ ██╗   ██╗███╗   ██╗███╗   ██╗██╗   ██╗
 ██╔══██╗██║   ██║████╗  ██║████╗  ██║╚██╗ ██╔╝
 ██████╔╝██║   ██║██╔██╗ ██║██╔██╗ ██║ ╚████╔╝
 ██╔══██╗██║   ██║██║╚██╗██║██║╚██╗██║  ╚██╔╝
 ██████╔╝╚██████╔╝██║ ╚████║██║ ╚████║   ██║
 ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝╚═╝  ╚═══╝   ╚═╝`

const bannerCompact = "T E N S E · B U N N Y"

// RenderBanner returns the TENSE BUNNY banner styled in the primary
// color. The compact fallback is used when the block letters would not
// fit.
func RenderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 || height < 28 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
