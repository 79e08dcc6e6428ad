package progress

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by a Store that holds no record yet.
var ErrNotFound = errors.New("progress: no saved record")

// Store persists the learner record. Save always writes the full record.
type Store interface {
	Load(ctx context.Context) (UserProgress, error)
	Save(ctx context.Context, p UserProgress) error
}

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps a stored value to a Theme. Anything other than "dark"
// is light.
func ParseTheme(s string) Theme {
	if s == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeStore persists the theme preference.
type ThemeStore interface {
	LoadTheme(ctx context.Context) (Theme, error)
	SaveTheme(ctx context.Context, t Theme) error
}

// ScoreEntry is one finished placement/final test pair on the board.
type ScoreEntry struct {
	Name      string    `json:"name"`
	PreScore  int       `json:"preScore"`
	PostScore int       `json:"postScore"`
	Average   float64   `json:"average"`
	Date      time.Time `json:"date"`
}

// ScoreBoard stores ranking entries.
type ScoreBoard interface {
	RecordScore(ctx context.Context, e ScoreEntry) error
	TopScores(ctx context.Context, limit int) ([]ScoreEntry, error)
}

// MemoryStore is an in-memory Store, ThemeStore, and ScoreBoard.
type MemoryStore struct {
	mu     sync.Mutex
	rec    *UserProgress
	theme  Theme
	scores []ScoreEntry
	saves  int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{theme: ThemeLight}
}

func (m *MemoryStore) Load(_ context.Context) (UserProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return UserProgress{}, ErrNotFound
	}
	return clone(*m.rec), nil
}

func (m *MemoryStore) Save(_ context.Context, p UserProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := clone(p)
	m.rec = &c
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) LoadTheme(_ context.Context) (Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, nil
}

func (m *MemoryStore) SaveTheme(_ context.Context, t Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t
	return nil
}

func (m *MemoryStore) RecordScore(_ context.Context, e ScoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, e)
	return nil
}

func (m *MemoryStore) TopScores(_ context.Context, limit int) ([]ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]ScoreEntry(nil), m.scores...)
	SortScores(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func clone(p UserProgress) UserProgress {
	p.Badges = append([]string{}, p.Badges...)
	return p
}
