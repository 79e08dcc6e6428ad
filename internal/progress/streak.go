package progress

import "time"

// NextStreak returns the day streak after playing at now. Playing again
// on the same calendar day keeps the streak, playing the following day
// extends it, and any longer gap starts over at one.
func NextStreak(current int, lastPlayed, now time.Time) int {
	current = max(1, current)
	if lastPlayed.IsZero() {
		return 1
	}
	last := civilDay(lastPlayed.In(now.Location()))
	today := civilDay(now)
	switch {
	case today.Equal(last):
		return current
	case today.Equal(last.AddDate(0, 0, 1)):
		return current + 1
	default:
		return 1
	}
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
