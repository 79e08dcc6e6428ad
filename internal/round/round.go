// Package round books the end of a quiz round: XP and badges on the
// learner record, the session event log, and the final exam score board.
package round

import (
	"context"
	"time"

	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/store"
)

// Session event actions.
const (
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// placementLookback bounds the event scan for an earlier placement test.
const placementLookback = 200

// Ledger writes round results. Any field may be nil; the matching
// bookkeeping is skipped.
type Ledger struct {
	Progress *progress.Updater
	Scores   progress.ScoreBoard
	Events   store.EventRepo
}

// Round identifies one attempt.
type Round struct {
	ID      string
	Mode    quiz.Mode
	Started time.Time
}

// Booked is what Finish recorded.
type Booked struct {
	Report quiz.Report
	Earned []string
	// Err is the first persistence failure. The report stays valid.
	Err error
}

// Finish credits a completed round. placement is the placement test
// taken in this run, if any; it feeds the score board entry written
// after the final exam.
func (l Ledger) Finish(ctx context.Context, r Round, rep quiz.Report, placement *quiz.Report) Booked {
	rep.Mode = r.Mode.ID
	out := Booked{Report: rep}

	if l.Progress != nil {
		_, out.Earned, out.Err = l.Progress.Apply(ctx, progress.Result{
			Mode:  r.Mode.ID,
			Score: rep.Score,
			Total: rep.Total,
			XP:    rep.XP,
			Test:  r.Mode.Test,
			Final: r.Mode.ID == quiz.ModePostTest,
			Timed: rep.Timed,
		})
	}
	l.record(ctx, r, ActionComplete, rep)

	if r.Mode.ID == quiz.ModePostTest {
		if err := l.recordScore(ctx, rep, placement); err != nil && out.Err == nil {
			out.Err = err
		}
	}
	return out
}

// Abandon logs a round the learner left early. No credit is given.
func (l Ledger) Abandon(ctx context.Context, r Round, score, total, answered int) {
	l.record(ctx, r, ActionAbandon, quiz.Report{Score: score, Total: total, Answered: answered})
}

func (l Ledger) record(ctx context.Context, r Round, action string, rep quiz.Report) {
	if l.Events == nil {
		return
	}
	_ = l.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    r.ID,
		Mode:         r.Mode.ID,
		Action:       action,
		Score:        rep.Score,
		Total:        rep.Total,
		Answered:     rep.Answered,
		XP:           rep.XP,
		Missed:       rep.Missed,
		DurationSecs: int(time.Since(r.Started).Seconds()),
	})
}

func (l Ledger) recordScore(ctx context.Context, rep quiz.Report, placement *quiz.Report) error {
	if l.Scores == nil {
		return nil
	}
	var name string
	if l.Progress != nil {
		name = l.Progress.Current().UserName
	}
	pre, preTotal := l.PlacementScore(ctx, placement)
	entry := progress.NewScoreEntry(name, pre, preTotal, rep.Score, rep.Total, time.Now())
	return l.Scores.RecordScore(ctx, entry)
}

// PlacementScore returns the learner's placement test result: current
// if set, otherwise the latest one on record.
func (l Ledger) PlacementScore(ctx context.Context, current *quiz.Report) (score, total int) {
	if current != nil {
		return current.Score, current.Total
	}
	if l.Events == nil {
		return 0, 0
	}
	events, err := l.Events.QuerySessionEvents(ctx, store.QueryOpts{Limit: placementLookback})
	if err != nil {
		return 0, 0
	}
	for _, e := range events {
		if e.Mode == quiz.ModePreTest && e.Action == ActionComplete {
			return e.Score, e.Total
		}
	}
	return 0, 0
}
