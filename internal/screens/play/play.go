// Package play runs one round of a game or test on the terminal and
// hands the report to the result screen.
package play

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/round"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
)

// PracticeMode is the mode ID recorded for AI-generated practice rounds.
const PracticeMode = "practice"

const practiceXP = 10

// PlayScreen implements screen.Screen for an active round.
type PlayScreen struct {
	svc       *screen.Services
	mode      quiz.Mode
	sess      *quiz.Session
	sessionID string
	started   time.Time

	// index is the question the widgets below were built for.
	index    int
	question catalog.Question
	choice   components.MultiChoice
	picker   components.TokenPicker

	last        *quiz.Outcome
	confirmQuit bool
	finished    bool
	status      string
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.EscapeCapturer  = (*PlayScreen)(nil)
)

// New starts a round of the given mode.
func New(svc *screen.Services, mode quiz.Mode) *PlayScreen {
	sess, err := mode.Start(svc.Rand)
	if err != nil {
		sess = quiz.Start(nil, 0, quiz.Options{})
	}
	return newPlay(svc, mode, sess)
}

// NewPractice starts a round over a generated pool for one tense.
func NewPractice(svc *screen.Services, tense catalog.Tense, pool catalog.Pool) *PlayScreen {
	mode := quiz.Mode{
		ID:           PracticeMode,
		Title:        "Practice: " + tense.Name,
		Icon:         "✏",
		XPPerCorrect: practiceXP,
		Feedback:     quiz.FeedbackExplain,
	}
	return newPlay(svc, mode, quiz.Start(pool.Questions, pool.Len(), mode.Options(svc.Rand)))
}

func newPlay(svc *screen.Services, mode quiz.Mode, sess *quiz.Session) *PlayScreen {
	p := &PlayScreen{
		svc:       svc,
		mode:      mode,
		sess:      sess,
		sessionID: uuid.NewString(),
		started:   time.Now(),
		index:     -1,
	}
	p.load()
	return p
}

func (p *PlayScreen) Init() tea.Cmd {
	if p.sess.Phase() == quiz.PhaseCompleted {
		return p.finish()
	}
	if p.sess.Timed() {
		return p.tick()
	}
	return nil
}

func (p *PlayScreen) Title() string {
	return p.mode.Title
}

// CapturesEscape keeps the app from popping the round; Esc asks first.
func (p *PlayScreen) CapturesEscape() bool {
	return !p.finished
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case p.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep playing"},
		}
	case p.sess.Phase() == quiz.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "S", Description: "Listen"},
		}
	case p.question.Kind() == catalog.KindAssemble:
		return []layout.KeyHint{
			{Key: "←→", Description: "Move"},
			{Key: "Space", Description: "Place"},
			{Key: "⌫", Description: "Undo"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-4", Description: "Answer"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		return p.handleTick(msg)

	case speechDoneMsg:
		p.status = screen.SpeechStatus(msg.Err)
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayScreen) tick() tea.Cmd {
	sess := p.sess
	return tea.Tick(quiz.DefaultTimer().Interval, func(time.Time) tea.Msg {
		return clockTickMsg{sess: sess}
	})
}

func (p *PlayScreen) handleTick(msg clockTickMsg) (screen.Screen, tea.Cmd) {
	if msg.sess != p.sess || p.finished {
		return p, nil
	}
	if _, done := p.sess.Tick(); done {
		return p, p.finish()
	}
	return p, p.tick()
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if p.finished {
		return p, nil
	}
	key := msg.String()

	if p.confirmQuit {
		switch key {
		case "y", "Y":
			return p, p.abandon()
		case "n", "N", "esc":
			p.confirmQuit = false
		}
		return p, nil
	}

	if key == "esc" {
		p.confirmQuit = true
		return p, nil
	}

	if p.sess.Phase() == quiz.PhaseFeedback {
		switch key {
		case "s", "S":
			return p, p.speak(p.question.Solved())
		case "enter", "space", " ", "n":
			phase, err := p.sess.Advance()
			if err != nil {
				return p, nil
			}
			if phase == quiz.PhaseCompleted {
				return p, p.finish()
			}
			p.load()
		}
		return p, nil
	}

	if p.question.Kind() == catalog.KindAssemble {
		p.picker, _ = p.picker.Update(msg)
		if p.picker.Submitted {
			return p.submit(p.picker.Answer())
		}
		return p, nil
	}

	p.choice, _ = p.choice.Update(msg)
	if answer, ok := p.choice.Chosen(); ok {
		return p.submit(answer)
	}
	return p, nil
}

// load builds the answer widgets for the current question, once per
// question.
func (p *PlayScreen) load() {
	q, idx, ok := p.sess.Current()
	if !ok || idx == p.index {
		return
	}
	p.index = idx
	p.question = q
	p.status = ""
	if q.Kind() == catalog.KindAssemble {
		p.picker = components.NewTokenPicker(q.Tokens)
	} else {
		p.choice = components.NewMultiChoice(q.Options)
	}
}

func (p *PlayScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	out, err := p.sess.SubmitAt(p.index, answer)
	if err != nil {
		// Duplicate or late input; the session has moved on.
		return p, nil
	}
	p.last = &out
	if p.question.Kind() == catalog.KindChoice {
		p.choice.Reveal(out.Expected)
	}

	switch out.Phase {
	case quiz.PhaseCompleted:
		return p, p.finish()
	case quiz.PhaseFeedback:
		return p, nil
	}
	p.load()
	return p, nil
}

func (p *PlayScreen) speak(sentence string) tea.Cmd {
	ai := p.svc.AI
	p.status = "Speaking…"
	return func() tea.Msg {
		return speechDoneMsg{Err: ai.SpeakAndPlay(context.Background(), sentence)}
	}
}

// abandon discards the round without credit.
func (p *PlayScreen) abandon() tea.Cmd {
	p.confirmQuit = false
	p.finished = true
	p.sess.Abandon()
	p.svc.Ledger().Abandon(context.Background(), p.round(), p.sess.Score(), p.sess.Len(), p.sess.Answered())
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (p *PlayScreen) round() round.Round {
	return round.Round{ID: p.sessionID, Mode: p.mode, Started: p.started}
}

// finish completes the round, folds it into progress, and replaces this
// screen with the result.
func (p *PlayScreen) finish() tea.Cmd {
	if p.finished {
		return nil
	}
	p.finished = true

	rep, err := p.sess.Complete()
	if err != nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	booked := p.svc.Ledger().Finish(context.Background(), p.round(), rep, p.svc.Placement)
	if p.mode.ID == quiz.ModePreTest {
		placed := booked.Report
		p.svc.Placement = &placed
	}

	result := NewResult(p.svc, p.mode, booked.Report, booked.Earned, booked.Err)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: result} }
}
