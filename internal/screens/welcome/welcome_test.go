package welcome

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/screen/screentest"
)

func newWelcome() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &screentest.Stub{Name: "Home"}
	}), &built
}

func advance(w *WelcomeScreen, frames int) {
	for range frames {
		w.Update(tickMsg(time.Now()))
	}
}

func TestTimelineLightsUpInOrder(t *testing.T) {
	w, _ := newWelcome()
	assert.Equal(t, 0, w.erasLit())
	assert.NotContains(t, w.View(80, 24), "Past")

	advance(w, 5)
	assert.Equal(t, 1, w.erasLit())
	assert.Contains(t, w.View(80, 24), "Past")

	advance(w, 4)
	assert.Equal(t, 2, w.erasLit())

	advance(w, 20)
	assert.Equal(t, 3, w.erasLit())
	v := w.View(80, 24)
	assert.Contains(t, v, "Future")
	assert.Contains(t, v, "master English tenses")
}

func TestTaglineWaitsForTimeline(t *testing.T) {
	w, _ := newWelcome()
	advance(w, int(bannerFrom/frame)-1)
	assert.NotContains(t, w.View(80, 24), "master English tenses")

	advance(w, 1)
	assert.Contains(t, w.View(80, 24), "master English tenses")
}

func TestBannerFitsTerminal(t *testing.T) {
	w, _ := newWelcome()
	advance(w, 20)

	assert.Contains(t, w.View(80, 24), bannerCompact)
	assert.NotContains(t, w.View(120, 40), bannerCompact)
}

func TestKeyHandsOverOnce(t *testing.T) {
	w, built := newWelcome()
	advance(w, 3)

	_, cmd := w.Update(screentest.Key("space"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Home", msg.Screen.Title())

	_, cmd = w.Update(screentest.Key("b"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *built)

	_, cmd = w.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd, "animation stops after hand-over")
}

func TestStaysUntilKeyPressed(t *testing.T) {
	w, built := newWelcome()
	advance(w, 100)

	assert.Zero(t, *built)
	assert.Equal(t, animLength, w.elapsed)
}
