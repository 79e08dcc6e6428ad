// Package screentest provides in-memory services for screen tests.
package screentest

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/store"
)

// Services returns services backed by memory stores, a seeded random
// source, and a gateway with no AI backends.
func Services(t testing.TB) (*screen.Services, *progress.MemoryStore, *Events) {
	t.Helper()
	mem := progress.NewMemoryStore()
	updater, err := progress.NewUpdater(context.Background(), mem)
	if err != nil {
		t.Fatalf("new updater: %v", err)
	}
	events := &Events{}
	svc := &screen.Services{
		Progress: updater,
		Themes:   mem,
		Scores:   mem,
		Events:   events,
		AI:       gateway.New(nil),
		Rand:     quiz.NewRand(1),
	}
	svc.Lesson = func(tenseID string) screen.Screen { return &Stub{Name: tenseID} }
	return svc, mem, events
}

// Events records session events in memory.
type Events struct {
	mu       sync.Mutex
	Sessions []store.SessionEventData
}

var _ store.EventRepo = (*Events)(nil)

func (e *Events) AppendLLMRequest(context.Context, store.LLMRequestEventData) error { return nil }

func (e *Events) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEventRecord, error) {
	return nil, nil
}

func (e *Events) GetLLMEvent(context.Context, int) (*store.LLMEventRecord, error) { return nil, nil }

func (e *Events) LLMUsageByPurpose(context.Context) ([]store.LLMUsage, error) { return nil, nil }

func (e *Events) LLMUsageByModel(context.Context) ([]store.LLMUsage, error) { return nil, nil }

func (e *Events) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Sessions = append(e.Sessions, data)
	return nil
}

// QuerySessionEvents returns the recorded events, newest first.
func (e *Events) QuerySessionEvents(_ context.Context, opts store.QueryOpts) ([]store.SessionEventRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []store.SessionEventRecord
	for i := len(e.Sessions) - 1; i >= 0; i-- {
		out = append(out, store.SessionEventRecord{
			Sequence:         int64(i + 1),
			Timestamp:        time.Unix(int64(i), 0),
			SessionEventData: e.Sessions[i],
		})
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

// StatsByMode aggregates completed sessions, ordered by mode.
func (e *Events) StatsByMode(context.Context) ([]store.ModeStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	byMode := make(map[string]*store.ModeStats)
	for _, s := range e.Sessions {
		if s.Action != "complete" {
			continue
		}
		m, ok := byMode[s.Mode]
		if !ok {
			m = &store.ModeStats{Mode: s.Mode}
			byMode[s.Mode] = m
		}
		m.Sessions++
		m.Correct += s.Score
		m.Questions += s.Total
		m.XP += s.XP
	}
	out := make([]store.ModeStats, 0, len(byMode))
	for _, m := range byMode {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out, nil
}

// Stub is a placeholder screen that records its name.
type Stub struct {
	Name string
}

func (s *Stub) Init() tea.Cmd                           { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                    { return s.Name }
func (s *Stub) Title() string                           { return s.Name }

// Key builds a key press for a printable key or a named key such as
// "enter", "esc", "up", or "space".
func Key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

// Type sends each rune of s as a key press.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return s
}
