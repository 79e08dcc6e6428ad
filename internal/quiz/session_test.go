package quiz

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/catalog"
)

func makePool(tenses ...string) []catalog.Question {
	pool := make([]catalog.Question, len(tenses))
	for i, tn := range tenses {
		pool[i] = catalog.Question{
			ID:       i + 1,
			Sentence: "Q ___",
			Correct:  "right",
			Options:  []string{"right", "wrong"},
			Tense:    tn,
		}
	}
	return pool
}

func answerAll(t *testing.T, s *Session, correctFor func(catalog.Question) bool) {
	t.Helper()
	prev := 0
	for {
		q, _, ok := s.Current()
		if !ok {
			return
		}
		ans := "wrong"
		if correctFor(q) {
			ans = "right"
		}
		out, err := s.Submit(ans)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out.Score, prev, "score must never decrease")
		prev = out.Score
		if out.Phase == PhaseFeedback {
			_, err := s.Advance()
			require.NoError(t, err)
		}
	}
}

func TestSession_AllCorrect(t *testing.T) {
	pool, err := catalog.GetPool(catalog.PoolPreTest)
	require.NoError(t, err)

	s := Start(pool.Questions, 20, Options{Rand: NewRand(1)})
	require.Equal(t, PhaseInProgress, s.Phase())

	for {
		q, _, ok := s.Current()
		if !ok {
			break
		}
		_, err := s.Submit(q.Correct)
		require.NoError(t, err)
	}

	assert.Equal(t, PhaseCompleted, s.Phase())
	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 20, r.Score)
	assert.Equal(t, 20, r.Total)
	assert.Empty(t, r.Missed)
	assert.True(t, r.Perfect())
	assert.Equal(t, 100, r.Percent())
}

func TestSession_MissedTopicsDeduplicated(t *testing.T) {
	pool := makePool("Past Simple", "Present Simple", "Past Simple")
	s := Start(pool, 3, Options{Rand: NewRand(7)})

	answerAll(t, s, func(q catalog.Question) bool { return q.Tense != "Past Simple" })

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Score)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, []string{"Past Simple"}, r.Missed)
}

func TestSession_MissedTopicsKeepFirstSeenOrder(t *testing.T) {
	pool := makePool("Past Simple", "Future Simple", "Past Simple", "Present Perfect")
	s := Start(pool, 4, Options{})

	var order []string
	seen := map[string]bool{}
	for {
		q, _, ok := s.Current()
		if !ok {
			break
		}
		if !seen[q.Tense] {
			seen[q.Tense] = true
			order = append(order, q.Tense)
		}
		_, err := s.Submit("wrong")
		require.NoError(t, err)
	}

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, order, r.Missed)
}

func TestSession_ExactMatchIsCaseSensitive(t *testing.T) {
	pool := makePool("Past Simple")
	s := Start(pool, 1, Options{})

	out, err := s.Submit("Right")
	require.NoError(t, err)
	assert.False(t, out.Correct)

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 0, r.Score)
}

func TestSession_EmptyPoolCompletesImmediately(t *testing.T) {
	for _, tc := range []struct {
		name  string
		pool  []catalog.Question
		count int
	}{
		{"empty pool", nil, 5},
		{"zero count", makePool("Past Simple"), 0},
		{"negative count", makePool("Past Simple"), -3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := Start(tc.pool, tc.count, Options{})
			assert.Equal(t, PhaseCompleted, s.Phase())

			_, err := s.Submit("right")
			assert.ErrorIs(t, err, ErrNotAccepting)

			r, err := s.Complete()
			require.NoError(t, err)
			assert.Equal(t, 0, r.Score)
			assert.Equal(t, 0, r.Total)
		})
	}
}

func TestSession_CountClampedToPool(t *testing.T) {
	s := Start(makePool("A", "B", "C"), 10, Options{})
	assert.Equal(t, 3, s.Len())
}

func TestSample_NoDuplicatesAndSubset(t *testing.T) {
	pool := makePool("A", "B", "C", "D", "E")
	pool = append(pool, pool[0], pool[2])

	for seed := uint64(0); seed < 50; seed++ {
		got := Sample(pool, 10, NewRand(seed))
		require.Len(t, got, 5)

		ids := map[int]bool{}
		for _, q := range got {
			assert.False(t, ids[q.ID], "duplicate question %d", q.ID)
			ids[q.ID] = true
			assert.Contains(t, pool, q)
		}
	}
}

func TestSample_SeededIsDeterministic(t *testing.T) {
	pool, err := catalog.GetPool(catalog.PoolPostTest)
	require.NoError(t, err)

	a := Sample(pool.Questions, 10, NewRand(42))
	b := Sample(pool.Questions, 10, NewRand(42))
	assert.Equal(t, a, b)
}

func TestSample_DoesNotMutatePool(t *testing.T) {
	pool := makePool("A", "B", "C", "D")
	before := append([]catalog.Question(nil), pool...)
	Sample(pool, 4, NewRand(3))
	assert.Equal(t, before, pool)
}

func TestSession_FeedbackStep(t *testing.T) {
	s := Start(makePool("A", "B"), 2, Options{Feedback: true})

	out, err := s.Submit("wrong")
	require.NoError(t, err)
	assert.Equal(t, PhaseFeedback, out.Phase)
	assert.Equal(t, "right", out.Expected)

	_, idx, _ := s.Current()
	assert.Equal(t, 0, idx, "cursor waits on the feedback step")
	assert.Equal(t, 1, s.Answered())

	// A second click on the same question is ignored.
	_, err = s.Submit("right")
	assert.ErrorIs(t, err, ErrNotAccepting)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 1, s.Answered())

	phase, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhaseInProgress, phase)

	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrNoFeedback)

	_, err = s.Submit("right")
	require.NoError(t, err)
	phase, err = s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, phase)
}

func TestSession_StaleSubmissionIgnored(t *testing.T) {
	s := Start(makePool("A", "B", "C"), 3, Options{})

	_, err := s.SubmitAt(0, "right")
	require.NoError(t, err)

	_, err = s.SubmitAt(0, "right")
	assert.ErrorIs(t, err, ErrStaleAnswer)
	assert.Equal(t, 1, s.Score())

	_, idx, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSession_CompleteIsTerminal(t *testing.T) {
	s := Start(makePool("A"), 1, Options{XPPerCorrect: 20})

	_, err := s.Complete()
	assert.ErrorIs(t, err, ErrNotCompleted)

	_, err = s.Submit("right")
	require.NoError(t, err)

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 20, r.XP)

	_, err = s.Complete()
	assert.ErrorIs(t, err, ErrAlreadyReported)
}

func TestSession_Abandon(t *testing.T) {
	s := Start(makePool("A", "B"), 2, Options{})
	_, err := s.Submit("right")
	require.NoError(t, err)

	s.Abandon()
	assert.Equal(t, PhaseAbandoned, s.Phase())

	_, err = s.Submit("right")
	assert.ErrorIs(t, err, ErrNotAccepting)
	_, err = s.Complete()
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestSession_TimedPenalty(t *testing.T) {
	cfg := DefaultTimer()
	s := Start(makePool("A", "B", "C"), 3, Options{Timer: &cfg})
	require.True(t, s.Timed())

	s.Tick()
	s.Tick()
	assert.Equal(t, 28*time.Second, s.Remaining())

	out, err := s.Submit("wrong")
	require.NoError(t, err)
	assert.Equal(t, 23*time.Second, out.Remaining)

	out, err = s.Submit("right")
	require.NoError(t, err)
	assert.Equal(t, 26*time.Second, out.Remaining)

	_, err = s.Submit("right")
	require.NoError(t, err)
	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 29, r.TimeLeftSecs)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"timeLeftSecs":29`)
}

func TestSession_TimerExpiryForcesCompletion(t *testing.T) {
	cfg := TimerConfig{Start: 3 * time.Second, Penalty: 5 * time.Second, Interval: time.Second}
	s := Start(makePool("A", "B", "C", "D"), 4, Options{Timer: &cfg})

	_, err := s.Submit("right")
	require.NoError(t, err)

	for range 2 {
		_, done := s.Tick()
		assert.False(t, done)
	}
	remaining, done := s.Tick()
	assert.True(t, done)
	assert.Zero(t, remaining)
	assert.Equal(t, PhaseCompleted, s.Phase())

	_, err = s.Submit("right")
	assert.ErrorIs(t, err, ErrNotAccepting)

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Score)
	assert.Equal(t, 1, r.Answered)
	assert.Equal(t, 4, r.Total)
}

func TestSession_PenaltyClampedAndCompletes(t *testing.T) {
	cfg := TimerConfig{Start: 2 * time.Second, Penalty: 5 * time.Second, Interval: time.Second}
	s := Start(makePool("A", "B"), 2, Options{Timer: &cfg})

	out, err := s.Submit("wrong")
	require.NoError(t, err)
	assert.Zero(t, out.Remaining)
	assert.Equal(t, PhaseCompleted, out.Phase)
}

func TestSession_ExpiryAfterCompletionIsNoop(t *testing.T) {
	cfg := DefaultTimer()
	s := Start(makePool("A"), 1, Options{Timer: &cfg})

	_, err := s.Submit("right")
	require.NoError(t, err)
	require.Equal(t, PhaseCompleted, s.Phase())

	before := s.Remaining()
	remaining, done := s.Tick()
	assert.True(t, done)
	assert.Equal(t, before, remaining)

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Score)
}

func TestRunClock_RacesWithAnswers(t *testing.T) {
	cfg := TimerConfig{Start: 50 * time.Millisecond, Interval: 5 * time.Millisecond}
	pool, err := catalog.GetPool(catalog.PoolPostTest)
	require.NoError(t, err)
	s := Start(pool.Questions, pool.Len(), Options{Timer: &cfg, Rand: NewRand(9)})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		RunClock(context.Background(), s, cfg.Interval, nil)
	}()

	for {
		q, idx, ok := s.Current()
		if !ok {
			break
		}
		_, _ = s.SubmitAt(idx, q.Options[0])
		time.Sleep(time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, PhaseCompleted, s.Phase())
	r, err := s.Complete()
	require.NoError(t, err)
	assert.LessOrEqual(t, r.Score, r.Total)
	assert.GreaterOrEqual(t, r.Score, 0)
}

func TestRunClock_StopsOnCancel(t *testing.T) {
	cfg := DefaultTimer()
	s := Start(makePool("A"), 1, Options{Timer: &cfg})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunClock(ctx, s, time.Millisecond, nil)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunClock did not return after cancel")
	}
	assert.Equal(t, PhaseInProgress, s.Phase())
}
