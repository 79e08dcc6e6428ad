package api

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/quiz"
)

func TestRegistry_SweepDropsIdleRounds(t *testing.T) {
	f := newFixture(t, nil)
	reg := f.srv.sessions
	now := time.Now()
	reg.now = func() time.Time { return now }

	var ids []string
	for range 50 {
		ids = append(ids, f.start(t, quiz.ModeMachine).ID)
	}
	done := f.start(t, quiz.ModeMachine)
	for range done.Total {
		view := decode[sessionView](t, f.do(t, http.MethodGet, "/api/sessions/"+done.ID, nil))
		require.NotNil(t, view.Question)
		f.answer(t, done.ID, view.Question.Index, answerFor(t, quiz.ModeMachine, view.Question)).Body.Close()
	}
	require.Equal(t, 51, reg.len())

	now = now.Add(20 * time.Minute)
	f.do(t, http.MethodGet, "/api/sessions/"+ids[0], nil).Body.Close()

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 50, reg.sweep(), "rounds idle past the limit go, finished or not")
	assert.Equal(t, 1, reg.len())
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/sessions/"+ids[0], nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/sessions/"+ids[1], nil).StatusCode)

	abandons := 0
	for _, ev := range f.events.Sessions {
		if ev.Action == "abandon" {
			abandons++
		}
	}
	assert.Equal(t, 49, abandons, "the completed but unclaimed round is not booked")
}

func TestRegistry_CapEvictsLeastRecentlyTouched(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSessions = 2
	cfg.SweepEvery = 0
	var evicted []string
	reg := newRegistry(cfg, quiz.NewRand(3), func(ls *liveSession) {
		evicted = append(evicted, ls.round.ID)
	})
	t.Cleanup(reg.close)

	now := time.Now()
	reg.now = func() time.Time { return now }
	mode, err := quiz.ModeByID(quiz.ModeMachine)
	require.NoError(t, err)

	first, _, err := reg.start(mode)
	require.NoError(t, err)
	now = now.Add(time.Second)
	second, _, err := reg.start(mode)
	require.NoError(t, err)
	now = now.Add(time.Second)
	_, err = reg.get(first)
	require.NoError(t, err)

	now = now.Add(time.Second)
	third, _, err := reg.start(mode)
	require.NoError(t, err)

	assert.Equal(t, []string{second}, evicted)
	assert.Equal(t, 2, reg.len())
	_, err = reg.get(third)
	assert.NoError(t, err)
	_, err = reg.get(second)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_BackgroundSweep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SessionIdle = time.Millisecond
	cfg.SweepEvery = 5 * time.Millisecond
	var evicted atomic.Int32
	reg := newRegistry(cfg, quiz.NewRand(3), func(*liveSession) { evicted.Add(1) })
	t.Cleanup(reg.close)

	mode, err := quiz.ModeByID(quiz.ModeSniper)
	require.NoError(t, err)
	for range 3 {
		_, _, err := reg.start(mode)
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool { return reg.len() == 0 }, 2*time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 3, evicted.Load())
}
