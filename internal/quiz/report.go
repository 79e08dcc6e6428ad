package quiz

import (
	"math"

	"github.com/tensebunny/tensebunny/internal/catalog"
)

// Report is the final tally of a completed session.
type Report struct {
	Mode     string   `json:"mode,omitempty"`
	Score    int      `json:"score"`
	Total    int      `json:"total"`
	Answered int      `json:"answered"`
	Missed   []string `json:"missed"`
	XP       int      `json:"xp"`
	Timed    bool     `json:"timed"`

	// TimeLeftSecs is the whole seconds left on the clock of a timed
	// round.
	TimeLeftSecs int `json:"timeLeftSecs,omitempty"`
}

// Percent returns the score as a rounded percentage of Total.
func (r Report) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.Total) * 100))
}

// Perfect reports whether every sampled question was answered correctly.
func (r Report) Perfect() bool {
	return r.Total > 0 && r.Score == r.Total
}

// Remediate resolves the missed topics to lessons. Labels with no
// matching lesson come back with Found set to false.
func Remediate(r Report) []catalog.Reference {
	return catalog.ResolveAll(r.Missed)
}
