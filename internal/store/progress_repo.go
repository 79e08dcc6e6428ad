package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tensebunny/tensebunny/internal/progress"
)

// Well-known setting keys.
const (
	KeyStats = "tensebunny_stats"
	KeyTheme = "tensebunny_theme"
)

// ProgressRepo stores the learner record and theme as JSON settings.
// It implements progress.Store and progress.ThemeStore.
type ProgressRepo struct {
	db *sql.DB
}

var (
	_ progress.Store      = (*ProgressRepo)(nil)
	_ progress.ThemeStore = (*ProgressRepo)(nil)
)

func (r *ProgressRepo) get(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = $1`, key).Scan(&v)
	return v, err
}

func (r *ProgressRepo) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO settings (name, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, time.Now().UnixMilli())
	return err
}

// Load returns the saved learner record. It returns
// progress.ErrNotFound when nothing has been saved yet.
func (r *ProgressRepo) Load(ctx context.Context) (progress.UserProgress, error) {
	raw, err := r.get(ctx, KeyStats)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.UserProgress{}, progress.ErrNotFound
	}
	if err != nil {
		return progress.UserProgress{}, fmt.Errorf("read stats: %w", err)
	}

	var p progress.UserProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return progress.UserProgress{}, fmt.Errorf("decode stats: %w", err)
	}
	return p.Normalize(), nil
}

// Save writes the whole learner record.
func (r *ProgressRepo) Save(ctx context.Context, p progress.UserProgress) error {
	if p.Badges == nil {
		p.Badges = []string{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := r.put(ctx, KeyStats, string(raw)); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}

// LoadTheme returns the saved theme, light when none is stored.
func (r *ProgressRepo) LoadTheme(ctx context.Context) (progress.Theme, error) {
	raw, err := r.get(ctx, KeyTheme)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.ThemeLight, nil
	}
	if err != nil {
		return progress.ThemeLight, fmt.Errorf("read theme: %w", err)
	}
	return progress.ParseTheme(raw), nil
}

// SaveTheme writes the theme preference.
func (r *ProgressRepo) SaveTheme(ctx context.Context, t progress.Theme) error {
	if err := r.put(ctx, KeyTheme, string(t)); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}
