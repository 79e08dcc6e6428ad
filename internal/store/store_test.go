package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
	if s.Driver() != DriverSQLite {
		t.Errorf("driver = %q, want sqlite", s.Driver())
	}
}

func TestParseDriver(t *testing.T) {
	tests := []struct {
		in   string
		want Driver
		err  bool
	}{
		{"", DriverSQLite, false},
		{"sqlite", DriverSQLite, false},
		{"pgx", DriverPostgres, false},
		{"postgres", DriverPostgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDriver(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSchemaCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"settings", "scores", "llm_requests", "session_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=$1", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestProgressRepo_MissingRecord(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ProgressRepo().Load(context.Background())
	assert.ErrorIs(t, err, progress.ErrNotFound)
}

func TestProgressRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	want := progress.UserProgress{
		UserName:   "Ploy",
		XP:         345,
		Level:      4,
		Streak:     3,
		LastPlayed: time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
		Badges:     []string{"first-game", "perfect-score"},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Saving again overwrites the full record.
	want.XP = 400
	want.Level = 5
	require.NoError(t, repo.Save(ctx, want))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProgressRepo_StoredLayout(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ProgressRepo().Save(ctx, progress.Default()))

	var raw string
	require.NoError(t, s.DB().QueryRow(`SELECT value FROM settings WHERE name = $1`, KeyStats).Scan(&raw))
	assert.JSONEq(t, `{"userName":"","xp":0,"level":1,"streak":1,"lastPlayed":"","badges":[]}`, raw)
}

func TestProgressRepo_EmptyLastPlayed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.DB().Exec(`INSERT INTO settings (name, value, updated_at) VALUES ($1, $2, $3)`,
		KeyStats, `{"userName":"Old","xp":300,"level":4,"streak":3,"lastPlayed":"","badges":[]}`, 0)
	require.NoError(t, err)

	got, err := s.ProgressRepo().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Old", got.UserName)
	assert.Equal(t, 300, got.XP)
	assert.Equal(t, 3, got.Streak)
	assert.True(t, got.LastPlayed.IsZero())
}

func TestProgressRepo_CorruptRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.DB().Exec(`INSERT INTO settings (name, value, updated_at) VALUES ($1, $2, $3)`,
		KeyStats, "{not json", 0)
	require.NoError(t, err)

	_, err = s.ProgressRepo().Load(ctx)
	require.Error(t, err)

	u, err := progress.NewUpdater(ctx, s.ProgressRepo())
	require.Error(t, err)
	assert.Equal(t, progress.Default(), u.Current())
}

func TestProgressRepo_LevelRecomputedOnLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.DB().Exec(`INSERT INTO settings (name, value, updated_at) VALUES ($1, $2, $3)`,
		KeyStats, `{"userName":"x","xp":250,"level":9,"streak":0,"badges":null}`, 0)
	require.NoError(t, err)

	p, err := s.ProgressRepo().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 1, p.Streak)
	assert.Equal(t, []string{}, p.Badges)
}

func TestProgressRepo_Theme(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	th, err := repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.ThemeLight, th)

	require.NoError(t, repo.SaveTheme(ctx, progress.ThemeDark))
	th, err = repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.ThemeDark, th)
}

func TestUpdaterPersistsThroughRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := progress.NewUpdater(ctx, s.ProgressRepo())
	require.NoError(t, err)
	_, err = u.AwardXP(ctx, 250)
	require.NoError(t, err)

	again, err := progress.NewUpdater(ctx, s.ProgressRepo())
	require.NoError(t, err)
	assert.Equal(t, 250, again.Current().XP)
	assert.Equal(t, 3, again.Current().Level)
}

func TestScoreRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordScore(ctx, progress.NewScoreEntry("mint", 10, 20, 21, 30, at)))
	require.NoError(t, repo.RecordScore(ctx, progress.NewScoreEntry("fah", 15, 20, 27, 30, at)))
	require.NoError(t, repo.RecordScore(ctx, progress.NewScoreEntry("nam", 5, 20, 12, 30, at)))

	top, err := repo.TopScores(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "fah", top[0].Name)
	assert.Equal(t, 90, top[0].PostScore)
	assert.Equal(t, 82.5, top[0].Average)
	assert.Equal(t, at, top[0].Date)
	assert.Equal(t, "mint", top[1].Name)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ProgressRepo().Save(ctx, progress.Default()))
	require.NoError(t, s.ScoreRepo().RecordScore(ctx, progress.ScoreEntry{Name: "a"}))

	require.NoError(t, s.Reset(ctx))

	_, err := s.ProgressRepo().Load(ctx)
	assert.ErrorIs(t, err, progress.ErrNotFound)
	top, err := s.ScoreRepo().TopScores(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "tutor", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "tutor", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash-image", Purpose: "mascot", Success: false, ErrorMessage: "quota"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mascot", list[0].Purpose)
	assert.False(t, list[0].Success)
	assert.Greater(t, list[0].Sequence, list[1].Sequence)

	got, err := repo.GetLLMEvent(ctx, list[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 40, got.OutputTokens)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "mascot", byPurpose[0].Purpose)
	assert.Equal(t, "tutor", byPurpose[1].Purpose)
	assert.Equal(t, 2, byPurpose[1].Calls)
	assert.Equal(t, 40, byPurpose[1].InputTokens)
	assert.Equal(t, int64(200), byPurpose[1].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Len(t, byModel, 2)
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "a", Mode: "sniper", Action: "complete", Score: 4, Total: 5, Answered: 5, XP: 80,
		Missed: []string{"Past Simple"},
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "b", Mode: "sniper", Action: "complete", Score: 5, Total: 5, Answered: 5, XP: 100,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "c", Mode: "runner", Action: "abandon",
	}))

	list, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].SessionID)
	assert.Equal(t, []string{"Past Simple"}, list[2].Missed)

	stats, err := repo.StatsByMode(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, ModeStats{Mode: "sniper", Sessions: 2, Correct: 9, Questions: 10, XP: 180}, stats[0])
}
