package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tensebunny/tensebunny/internal/progress"
)

// ScoreRepo stores ranking entries. It implements progress.ScoreBoard.
type ScoreRepo struct {
	db *sql.DB
}

var _ progress.ScoreBoard = (*ScoreRepo)(nil)

func (r *ScoreRepo) RecordScore(ctx context.Context, e progress.ScoreEntry) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO scores
		(name, pre_score, post_score, average, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.Name, e.PreScore, e.PostScore, e.Average, e.Date.UnixMilli())
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

func (r *ScoreRepo) TopScores(ctx context.Context, limit int) ([]progress.ScoreEntry, error) {
	query := `SELECT name, pre_score, post_score, average, created_at FROM scores
		ORDER BY post_score DESC, average DESC, created_at ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []progress.ScoreEntry
	for rows.Next() {
		var (
			e  progress.ScoreEntry
			ms int64
		)
		if err := rows.Scan(&e.Name, &e.PreScore, &e.PostScore, &e.Average, &ms); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.Date = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
