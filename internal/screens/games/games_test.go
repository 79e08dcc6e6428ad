package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen/screentest"
	"github.com/tensebunny/tensebunny/internal/screens/play"
)

func TestGames_ListsEveryGame(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	g := New(svc)

	require.Len(t, g.menu.Items, len(quiz.Games()))
	view := g.View(100, 40)
	assert.Contains(t, view, "Sentence Builder")
	assert.Contains(t, view, "50 XP / answer")
	assert.Contains(t, view, "timed")
	assert.NotContains(t, view, "Placement Test")
}

func TestGames_EnterStartsSelectedGame(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	g := New(svc)

	g.Update(screentest.Key("down"))
	_, cmd := g.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	p, ok := msg.Screen.(*play.PlayScreen)
	require.True(t, ok)
	assert.Equal(t, quiz.Games()[1].Title, p.Title())
}
