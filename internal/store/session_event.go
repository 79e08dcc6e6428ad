package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	missed := data.Missed
	if missed == nil {
		missed = []string{}
	}
	missedJSON, err := json.Marshal(missed)
	if err != nil {
		return fmt.Errorf("marshal missed topics: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, created_at, session_id, mode, action, score, total, answered, xp, missed, duration_secs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		seqNum, time.Now().UnixMilli(), data.SessionID, data.Mode, data.Action,
		data.Score, data.Total, data.Answered, data.XP, string(missedJSON), data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	query, args := pageClause(`SELECT sequence, created_at, session_id, mode, action,
		score, total, answered, xp, missed, duration_secs FROM session_events WHERE 1=1`, nil, opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var (
			rec    SessionEventRecord
			ms     int64
			missed string
		)
		if err := rows.Scan(&rec.Sequence, &ms, &rec.SessionID, &rec.Mode, &rec.Action,
			&rec.Score, &rec.Total, &rec.Answered, &rec.XP, &missed, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ms)
		// Unreadable topic lists are dropped rather than failing the query.
		_ = json.Unmarshal([]byte(missed), &rec.Missed)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) StatsByMode(ctx context.Context) ([]ModeStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT mode, COUNT(*),
		COALESCE(SUM(score), 0), COALESCE(SUM(total), 0), COALESCE(SUM(xp), 0)
		FROM session_events WHERE action = $1 GROUP BY mode ORDER BY mode`, "complete")
	if err != nil {
		return nil, fmt.Errorf("query mode stats: %w", err)
	}
	defer rows.Close()

	var out []ModeStats
	for rows.Next() {
		var m ModeStats
		if err := rows.Scan(&m.Mode, &m.Sessions, &m.Correct, &m.Questions, &m.XP); err != nil {
			return nil, fmt.Errorf("scan mode stats: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
