package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out one monotonic sequence shared by every event
// table, so LLM requests and session events can be ordered against each
// other. The mutex serializes within the process; the RETURNING clause
// makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT INTO global_sequence (id, next_val) VALUES (1, 1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with plain SQL and the global sequence.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// pageClause appends sequence bounds and a limit to a query that already
// has a WHERE clause. It returns the extended query and arguments.
func pageClause(query string, args []any, opts QueryOpts) (string, []any) {
	if opts.After > 0 {
		args = append(args, opts.After)
		query += fmt.Sprintf(" AND sequence > $%d", len(args))
	}
	if opts.Before > 0 {
		args = append(args, opts.Before)
		query += fmt.Sprintf(" AND sequence < $%d", len(args))
	}
	if !opts.From.IsZero() {
		args = append(args, opts.From.UnixMilli())
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !opts.To.IsZero() {
		args = append(args, opts.To.UnixMilli())
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args
}
