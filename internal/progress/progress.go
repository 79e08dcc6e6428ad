// Package progress tracks the learner's persistent statistics: XP,
// level, streak, badges, the score board, and the theme preference.
package progress

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// XPPerLevel is the XP needed to climb one level.
const XPPerLevel = 100

// LevelFor returns the level for a given XP total.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// UserProgress is the single learner record of an installation.
// LastPlayed is stored as an RFC 3339 string, empty before the first
// round.
type UserProgress struct {
	UserName   string    `json:"userName"`
	XP         int       `json:"xp"`
	Level      int       `json:"level"`
	Streak     int       `json:"streak"`
	LastPlayed time.Time `json:"-"`
	Badges     []string  `json:"badges"`
}

type plainProgress UserProgress

func (p UserProgress) MarshalJSON() ([]byte, error) {
	last := ""
	if !p.LastPlayed.IsZero() {
		last = p.LastPlayed.Format(time.RFC3339Nano)
	}
	return json.Marshal(struct {
		plainProgress
		LastPlayed string `json:"lastPlayed"`
	}{plainProgress(p), last})
}

func (p *UserProgress) UnmarshalJSON(data []byte) error {
	aux := struct {
		*plainProgress
		LastPlayed string `json:"lastPlayed"`
	}{plainProgress: (*plainProgress)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.LastPlayed = time.Time{}
	if aux.LastPlayed == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, aux.LastPlayed)
	if err != nil {
		return fmt.Errorf("lastPlayed: %w", err)
	}
	p.LastPlayed = t
	return nil
}

// Default returns the record of a brand new learner.
func Default() UserProgress {
	return UserProgress{Level: 1, Streak: 1, Badges: []string{}}
}

// Normalize repairs a record loaded from storage: level is recomputed
// from XP, badges are sorted and deduplicated, and counters are never
// negative.
func (p UserProgress) Normalize() UserProgress {
	p.XP = max(0, p.XP)
	p.Level = LevelFor(p.XP)
	p.Streak = max(1, p.Streak)
	badges := slices.Clone(p.Badges)
	slices.Sort(badges)
	p.Badges = slices.Compact(badges)
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return p
}

// HasBadge reports whether the badge has been earned.
func (p UserProgress) HasBadge(id string) bool {
	_, found := slices.BinarySearch(p.Badges, id)
	return found
}

// ProgressToNext returns the XP earned within the current level and the
// XP a level spans.
func (p UserProgress) ProgressToNext() (int, int) {
	return p.XP % XPPerLevel, XPPerLevel
}

// addXP applies an award and recomputes the level.
func (p *UserProgress) addXP(amount int) {
	p.XP += max(0, amount)
	p.Level = LevelFor(p.XP)
}

// addBadge inserts id keeping Badges sorted. It returns false if the
// badge was already present.
func (p *UserProgress) addBadge(id string) bool {
	i, found := slices.BinarySearch(p.Badges, id)
	if found {
		return false
	}
	p.Badges = slices.Insert(p.Badges, i, id)
	return true
}
