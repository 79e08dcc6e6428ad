package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/tensebunny/tensebunny/internal/catalog"
)

// FeedbackMode controls what the learner sees after each answer.
type FeedbackMode int

const (
	FeedbackNone    FeedbackMode = iota // Flash right/wrong and move on
	FeedbackExplain                     // Pause and show the explanation
	FeedbackHidden                      // Reveal nothing until the end
)

// SampleAll asks for the whole pool.
const SampleAll = -1

// Mode IDs.
const (
	ModePreTest  = "pre-test"
	ModePostTest = "post-test"
	ModeSniper   = "sniper"
	ModeGarden   = "garden"
	ModeMachine  = "machine"
	ModeQuest    = "quest"
	ModeMatch    = "match"
	ModeScramble = "scramble"
	ModeRunner   = "runner"
)

// Mode is one game or test variant. Every variant runs on the same
// Session; a mode only picks the pool, the sample size, the reward, and
// how answers are presented.
type Mode struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Icon         string       `json:"icon"`
	Pool         string       `json:"pool"`
	SampleSize   int          `json:"sampleSize"`
	XPPerCorrect int          `json:"xpPerCorrect"`
	Feedback     FeedbackMode `json:"feedback"`
	Timed        bool         `json:"timed"`
	Test         bool         `json:"test"`
}

var modes = []Mode{
	{ID: ModePreTest, Title: "Placement Test", Description: "Find out where you stand before the lessons", Icon: "📝",
		Pool: catalog.PoolPreTest, SampleSize: 20, Feedback: FeedbackHidden, Test: true},
	{ID: ModePostTest, Title: "Final Exam", Description: "Thirty questions across every tense", Icon: "🎓",
		Pool: catalog.PoolPostTest, SampleSize: 30, Feedback: FeedbackExplain, Test: true},
	{ID: ModeSniper, Title: "Tense Sniper", Description: "Pick the right verb form in one shot", Icon: "🎯",
		Pool: catalog.PoolPreTest, SampleSize: 5, XPPerCorrect: 20},
	{ID: ModeGarden, Title: "Tense Garden", Description: "Grow flowers with correct verbs", Icon: "🌷",
		Pool: catalog.PoolGarden, SampleSize: 5, XPPerCorrect: 20},
	{ID: ModeMachine, Title: "Time Machine", Description: "Transform sentences into another tense", Icon: "⏳",
		Pool: catalog.PoolMachine, SampleSize: 5, XPPerCorrect: 20},
	{ID: ModeQuest, Title: "Grammar Quest", Description: "Spot and fix the broken word", Icon: "🗝",
		Pool: catalog.PoolQuest, SampleSize: 5, XPPerCorrect: 20},
	{ID: ModeMatch, Title: "MatchMaker", Description: "Match each sentence with its tense", Icon: "🧩",
		Pool: catalog.PoolMatch, SampleSize: 5, XPPerCorrect: 30},
	{ID: ModeScramble, Title: "Sentence Builder", Description: "Put the words in the right order", Icon: "🧱",
		Pool: catalog.PoolScramble, SampleSize: 4, XPPerCorrect: 50},
	{ID: ModeRunner, Title: "Bunny Runner", Description: "Beat the clock: +3s for right, -5s for wrong", Icon: "🐰",
		Pool: catalog.PoolPostTest, SampleSize: SampleAll, XPPerCorrect: 40, Timed: true},
}

// Modes returns every mode, tests first.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// Games returns the modes listed in the games menu.
func Games() []Mode {
	var out []Mode
	for _, m := range modes {
		if !m.Test {
			out = append(out, m)
		}
	}
	return out
}

// ModeByID returns the mode with the given ID.
func ModeByID(id string) (Mode, error) {
	for _, m := range modes {
		if m.ID == id {
			return m, nil
		}
	}
	return Mode{}, fmt.Errorf("unknown mode: %s", id)
}

// Options returns the session options for this mode.
func (m Mode) Options(r *rand.Rand) Options {
	opts := Options{
		Feedback:     m.Feedback == FeedbackExplain,
		XPPerCorrect: m.XPPerCorrect,
		Rand:         r,
	}
	if m.Timed {
		cfg := DefaultTimer()
		opts.Timer = &cfg
	}
	return opts
}

// Start loads the mode's pool and begins a session over it.
func (m Mode) Start(r *rand.Rand) (*Session, error) {
	pool, err := catalog.GetPool(m.Pool)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", m.ID, err)
	}
	count := m.SampleSize
	if count == SampleAll {
		count = pool.Len()
	}
	return Start(pool.Questions, count, m.Options(r)), nil
}
