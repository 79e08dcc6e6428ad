package progress

import (
	"cmp"
	"slices"
)

// SortScores orders entries by final score, then average, then the
// earliest date.
func SortScores(entries []ScoreEntry) {
	slices.SortStableFunc(entries, func(a, b ScoreEntry) int {
		if c := cmp.Compare(b.PostScore, a.PostScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Average, a.Average); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})
}

// Improvement returns the change from placement to final percentage.
func (e ScoreEntry) Improvement() int {
	return e.PostScore - e.PreScore
}
