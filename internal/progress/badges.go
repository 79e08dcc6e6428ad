package progress

// Badge IDs.
const (
	BadgeFirstGame = "first-game"
	BadgePerfect   = "perfect-score"
	BadgeLevel5    = "level-5"
	BadgeLevel10   = "level-10"
	BadgeStreak7   = "streak-7"
	BadgePlacement = "placement-done"
	BadgeGraduate  = "graduate"
	BadgeSpeedster = "speedster"
)

// BadgeInfo describes a badge for display.
type BadgeInfo struct {
	ID   string
	Name string
	Icon string
}

var badgeInfo = map[string]BadgeInfo{
	BadgeFirstGame: {BadgeFirstGame, "First Hop", "🐾"},
	BadgePerfect:   {BadgePerfect, "Flawless", "💎"},
	BadgeLevel5:    {BadgeLevel5, "Level 5", "⭐"},
	BadgeLevel10:   {BadgeLevel10, "Level 10", "🌟"},
	BadgeStreak7:   {BadgeStreak7, "Week Streak", "🔥"},
	BadgePlacement: {BadgePlacement, "Placed", "📝"},
	BadgeGraduate:  {BadgeGraduate, "Graduate", "🎓"},
	BadgeSpeedster: {BadgeSpeedster, "Speedster", "⚡"},
}

// LookupBadge returns display info for a badge. Unknown IDs are shown
// by their raw ID.
func LookupBadge(id string) BadgeInfo {
	if b, ok := badgeInfo[id]; ok {
		return b
	}
	return BadgeInfo{ID: id, Name: id, Icon: "🏅"}
}

// Result is what a finished session contributes to progress.
type Result struct {
	Mode  string
	Score int
	Total int
	XP    int
	Test  bool
	Final bool // the final exam rather than the placement test
	Timed bool
}

// earnedBadges returns the badges p qualifies for after r.
func earnedBadges(p UserProgress, r Result) []string {
	var out []string
	if !r.Test {
		out = append(out, BadgeFirstGame)
	}
	if r.Total > 0 && r.Score == r.Total {
		out = append(out, BadgePerfect)
	}
	if p.Level >= 5 {
		out = append(out, BadgeLevel5)
	}
	if p.Level >= 10 {
		out = append(out, BadgeLevel10)
	}
	if p.Streak >= 7 {
		out = append(out, BadgeStreak7)
	}
	if r.Test && !r.Final {
		out = append(out, BadgePlacement)
	}
	if r.Test && r.Final {
		out = append(out, BadgeGraduate)
	}
	if r.Timed && r.Score >= 10 {
		out = append(out, BadgeSpeedster)
	}
	return out
}
