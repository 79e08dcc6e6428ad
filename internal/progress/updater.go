package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// Updater folds finished sessions into the learner record and persists
// the full record after every change.
type Updater struct {
	mu    sync.Mutex
	store Store
	rec   UserProgress
	now   func() time.Time
}

// NewUpdater loads the current record from store. A missing or
// unreadable record falls back to the default; the load error is
// returned alongside a usable Updater so the caller can log it.
func NewUpdater(ctx context.Context, store Store) (*Updater, error) {
	u := &Updater{store: store, now: time.Now}
	rec, err := store.Load(ctx)
	switch {
	case err == nil:
		u.rec = rec.Normalize()
	case errors.Is(err, ErrNotFound):
		u.rec = Default()
		err = nil
	default:
		u.rec = Default()
		err = fmt.Errorf("load progress: %w", err)
	}
	return u, err
}

// SetClock overrides the time source.
func (u *Updater) SetClock(now func() time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.now = now
}

// Current returns a copy of the record.
func (u *Updater) Current() UserProgress {
	u.mu.Lock()
	defer u.mu.Unlock()
	return clone(u.rec)
}

// LoggedIn reports whether a learner name has been set.
func (u *Updater) LoggedIn() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rec.UserName != ""
}

// Login sets the learner's display name.
func (u *Updater) Login(ctx context.Context, name string) (UserProgress, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rec.UserName = strings.TrimSpace(name)
	return u.persist(ctx)
}

// AwardXP adds amount (negative amounts count as zero) and recomputes
// the level. The in-memory record is always updated; the returned error
// only reports a failed write.
func (u *Updater) AwardXP(ctx context.Context, amount int) (UserProgress, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.award(ctx, amount, nil)
}

// Apply records a finished session: XP, day streak, last-played time,
// and any newly earned badges. It returns the updated record and the
// badges earned by this result.
func (u *Updater) Apply(ctx context.Context, r Result) (UserProgress, []string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	var earned []string
	rec, err := u.award(ctx, r.XP, func(p *UserProgress) {
		p.Streak = NextStreak(p.Streak, p.LastPlayed, now)
		p.LastPlayed = now.UTC().Truncate(time.Second)
		for _, b := range earnedBadges(*p, r) {
			if p.addBadge(b) {
				earned = append(earned, b)
			}
		}
	})
	return rec, earned, err
}

// award adds amount, lets then make further changes to the record, and
// writes it. The caller holds u.mu.
func (u *Updater) award(ctx context.Context, amount int, then func(*UserProgress)) (UserProgress, error) {
	u.rec.addXP(amount)
	if then != nil {
		then(&u.rec)
	}
	return u.persist(ctx)
}

// Reset replaces the record with the default one.
func (u *Updater) Reset(ctx context.Context) (UserProgress, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rec = Default()
	return u.persist(ctx)
}

func (u *Updater) persist(ctx context.Context) (UserProgress, error) {
	rec := clone(u.rec)
	if err := u.store.Save(ctx, rec); err != nil {
		return rec, fmt.Errorf("save progress: %w", err)
	}
	return rec, nil
}

// NewScoreEntry builds a board entry from the placement and final test
// scores, as percentages of their totals.
func NewScoreEntry(name string, pre, preTotal, post, postTotal int, at time.Time) ScoreEntry {
	prePct := percent(pre, preTotal)
	postPct := percent(post, postTotal)
	return ScoreEntry{
		Name:      name,
		PreScore:  prePct,
		PostScore: postPct,
		Average:   math.Round(float64(prePct+postPct)/2*10) / 10,
		Date:      at.UTC().Truncate(time.Second),
	}
}

func percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
