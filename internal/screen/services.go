package screen

import (
	"context"
	"errors"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/round"
	"github.com/tensebunny/tensebunny/internal/store"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// Services bundles the dependencies screens share. Only Progress and AI
// are required; the stores may be nil when running without a database.
type Services struct {
	Progress *progress.Updater
	Themes   progress.ThemeStore
	Scores   progress.ScoreBoard
	Events   store.EventRepo
	AI       *gateway.Gateway

	// Rand drives question sampling. Nil uses the global generator.
	Rand *rand.Rand

	// Placement is the placement test report from this run, if any.
	Placement *quiz.Report

	// Lesson opens the lesson for a tense ID. It is injected by the app
	// so result screens can deep-link without importing the lessons
	// package.
	Lesson func(tenseID string) Screen
}

// Placed reports whether the learner has taken the placement test,
// either during this run or in an earlier one.
func (s *Services) Placed() bool {
	if s.Placement != nil {
		return true
	}
	return s.Progress != nil && s.Progress.Current().HasBadge(progress.BadgePlacement)
}

// Ledger books finished rounds against these services.
func (s *Services) Ledger() round.Ledger {
	return round.Ledger{Progress: s.Progress, Scores: s.Scores, Events: s.Events}
}

// SpeechStatus turns the result of reading a sentence aloud into a
// short status line. It is empty on success.
func SpeechStatus(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gateway.ErrNoAudio):
		return "Speech is not available right now."
	case errors.Is(err, gateway.ErrNoPlayer):
		return "No audio player found on this machine."
	default:
		return "Could not play the sentence."
	}
}

// ToggleTheme switches between the light and dark palettes and saves
// the choice in the background.
func (s *Services) ToggleTheme() tea.Cmd {
	next := theme.Current().Toggle()
	theme.Apply(next)
	if s.Themes == nil {
		return nil
	}
	themes := s.Themes
	return func() tea.Msg {
		_ = themes.SaveTheme(context.Background(), next)
		return nil
	}
}
