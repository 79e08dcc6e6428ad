package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen/screentest"
	"github.com/tensebunny/tensebunny/internal/screens/play"
)

func TestRanking_LoadsBoard(t *testing.T) {
	svc, mem, _ := screentest.Services(t)
	ctx := context.Background()
	_, err := svc.Progress.Login(ctx, "Mint")
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, mem.RecordScore(ctx, progress.NewScoreEntry("Mint", 10, 20, 24, 30, at)))
	require.NoError(t, mem.RecordScore(ctx, progress.NewScoreEntry("Pip", 15, 20, 27, 30, at)))

	r := New(svc)
	assert.Contains(t, r.View(120, 40), "Loading scores")

	r.Update(r.Init()())
	view := r.View(120, 40)
	assert.Contains(t, view, "Pip")
	assert.Contains(t, view, "Mint")
	assert.Contains(t, view, "BEST MASTERY SCORE")
	assert.Contains(t, view, "80%")

	require.Len(t, r.scores, 2)
	assert.Equal(t, "Pip", r.scores[0].Name, "higher post score ranks first")
}

func TestRanking_EmptyBoard(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	r := New(svc)
	r.Update(r.Init()())

	view := r.View(120, 40)
	assert.Contains(t, view, "No final exams yet")
	assert.NotContains(t, view, "BEST MASTERY SCORE")
}

func TestRanking_StartsFinalExam(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	r := New(svc)

	for _, key := range []string{"enter", "f"} {
		_, cmd := r.Update(screentest.Key(key))
		require.NotNil(t, cmd, key)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok, key)
		p, ok := msg.Screen.(*play.PlayScreen)
		require.True(t, ok, key)

		mode, err := quiz.ModeByID(quiz.ModePostTest)
		require.NoError(t, err)
		assert.Equal(t, mode.Title, p.Title())
	}
}
