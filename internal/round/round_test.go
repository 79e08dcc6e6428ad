package round

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/store"
)

type events struct {
	store.EventRepo // unused methods panic
	sessions        []store.SessionEventData
}

func (e *events) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	e.sessions = append(e.sessions, d)
	return nil
}

func (e *events) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEventRecord, error) {
	var out []store.SessionEventRecord
	for i := len(e.sessions) - 1; i >= 0; i-- {
		out = append(out, store.SessionEventRecord{SessionEventData: e.sessions[i]})
	}
	return out, nil
}

type failingScores struct{ progress.ScoreBoard }

func (failingScores) RecordScore(context.Context, progress.ScoreEntry) error {
	return errors.New("board offline")
}

func newLedger(t *testing.T) (Ledger, *progress.MemoryStore, *events) {
	t.Helper()
	mem := progress.NewMemoryStore()
	u, err := progress.NewUpdater(context.Background(), mem)
	require.NoError(t, err)
	ev := &events{}
	return Ledger{Progress: u, Scores: mem, Events: ev}, mem, ev
}

func mode(t *testing.T, id string) quiz.Mode {
	t.Helper()
	m, err := quiz.ModeByID(id)
	require.NoError(t, err)
	return m
}

func TestFinish_GameCreditsXP(t *testing.T) {
	l, _, ev := newLedger(t)
	ctx := context.Background()

	r := Round{ID: "r1", Mode: mode(t, quiz.ModeGarden), Started: time.Now().Add(-90 * time.Second)}
	booked := l.Finish(ctx, r, quiz.Report{Score: 4, Total: 5, Answered: 5, XP: 80, Missed: []string{"Past Perfect"}}, nil)

	require.NoError(t, booked.Err)
	assert.Equal(t, quiz.ModeGarden, booked.Report.Mode)
	assert.Contains(t, booked.Earned, progress.BadgeFirstGame)
	assert.Equal(t, 80, l.Progress.Current().XP)

	require.Len(t, ev.sessions, 1)
	got := ev.sessions[0]
	assert.Equal(t, ActionComplete, got.Action)
	assert.Equal(t, "r1", got.SessionID)
	assert.Equal(t, []string{"Past Perfect"}, got.Missed)
	assert.GreaterOrEqual(t, got.DurationSecs, 89)
}

func TestFinish_FinalExamUsesPlacement(t *testing.T) {
	l, mem, _ := newLedger(t)
	ctx := context.Background()
	_, err := l.Progress.Login(ctx, "Mint")
	require.NoError(t, err)

	pre := Round{ID: "pre", Mode: mode(t, quiz.ModePreTest), Started: time.Now()}
	l.Finish(ctx, pre, quiz.Report{Score: 10, Total: 20}, nil)

	post := Round{ID: "post", Mode: mode(t, quiz.ModePostTest), Started: time.Now()}
	booked := l.Finish(ctx, post, quiz.Report{Score: 27, Total: 30}, nil)
	require.NoError(t, booked.Err)

	scores, err := mem.TopScores(ctx, 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Mint", scores[0].Name)
	assert.Equal(t, 50, scores[0].PreScore, "placement read back from the event log")
	assert.Equal(t, 90, scores[0].PostScore)
}

func TestFinish_ScoreBoardFailureIsReported(t *testing.T) {
	l, _, _ := newLedger(t)
	l.Scores = failingScores{}

	r := Round{ID: "post", Mode: mode(t, quiz.ModePostTest), Started: time.Now()}
	booked := l.Finish(context.Background(), r, quiz.Report{Score: 1, Total: 30}, &quiz.Report{Score: 5, Total: 20})
	require.Error(t, booked.Err)
	assert.Contains(t, booked.Err.Error(), "board offline")
	assert.True(t, l.Progress.Current().HasBadge(progress.BadgeGraduate), "progress is still credited")
}

func TestAbandon_NoCredit(t *testing.T) {
	l, _, ev := newLedger(t)
	r := Round{ID: "r2", Mode: mode(t, quiz.ModeSniper), Started: time.Now()}
	l.Abandon(context.Background(), r, 2, 5, 3)

	assert.Equal(t, 0, l.Progress.Current().XP)
	require.Len(t, ev.sessions, 1)
	assert.Equal(t, ActionAbandon, ev.sessions[0].Action)
	assert.Equal(t, 3, ev.sessions[0].Answered)
}

func TestPlacementScore(t *testing.T) {
	l, _, _ := newLedger(t)
	ctx := context.Background()

	score, total := l.PlacementScore(ctx, nil)
	assert.Zero(t, score)
	assert.Zero(t, total)

	score, total = l.PlacementScore(ctx, &quiz.Report{Score: 7, Total: 20})
	assert.Equal(t, 7, score)
	assert.Equal(t, 20, total)

	assert.NotPanics(t, func() { Ledger{}.PlacementScore(ctx, nil) })
	assert.NotPanics(t, func() {
		Ledger{}.Finish(ctx, Round{Mode: mode(t, quiz.ModePostTest)}, quiz.Report{}, nil)
	})
}
