package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Lessons", HeaderStats{Level: 3, XP: 120, Streak: 4}, 100)

	assert.Contains(t, out, "TenseBunny")
	assert.Contains(t, out, "Lessons")
	assert.Contains(t, out, "Lv 3 · 120 XP")
	assert.Contains(t, out, "★ 4 day")
	assert.Equal(t, 3, lipgloss.Height(out))
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{"enter", "select"}, {"esc", "back"}}, 80)

	assert.Contains(t, out, "enter")
	assert.Contains(t, out, "back")
	assert.Less(t, strings.Index(out, "select"), strings.Index(out, "esc"))
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", HeaderStats{}, 80)
	footer := RenderFooter(nil, 80)

	out := RenderFrame(header, "body", footer, 80, 30)
	assert.Equal(t, 30, lipgloss.Height(out))
	assert.Contains(t, out, "body")
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(40, 10)
	assert.Contains(t, out, "Now: 40 x 10")
}
