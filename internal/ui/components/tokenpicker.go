package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// TokenPicker lets the learner build a sentence from scrambled words.
// Left/right move the cursor, Space or Enter places the word under it,
// Backspace undoes the last word, and ctrl+u clears the line. Once
// every word is placed, Enter submits.
type TokenPicker struct {
	asm       *quiz.Assembly
	Cursor    int
	Submitted bool
}

// NewTokenPicker creates a picker over the given words.
func NewTokenPicker(tokens []string) TokenPicker {
	return TokenPicker{asm: quiz.NewAssembly(tokens)}
}

// Update handles keyboard input.
func (t TokenPicker) Update(msg tea.Msg) (TokenPicker, tea.Cmd) {
	if t.Submitted {
		return t, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	tokens := t.asm.Tokens()
	switch kmsg.String() {
	case "left", "h":
		if t.Cursor > 0 {
			t.Cursor--
		}
	case "right", "l":
		if t.Cursor < len(tokens)-1 {
			t.Cursor++
		}
	case "space", " ":
		t.pick()
	case "enter":
		if t.asm.Ready() {
			t.Submitted = true
			return t, nil
		}
		t.pick()
	case "backspace":
		t.asm.Undo()
	case "ctrl+u":
		t.asm.Clear()
	}
	return t, nil
}

// pick places the word under the cursor and moves the cursor to the
// next unused word.
func (t *TokenPicker) pick() {
	if !t.asm.Pick(t.Cursor) {
		return
	}
	tokens := t.asm.Tokens()
	for step := 1; step < len(tokens); step++ {
		next := (t.Cursor + step) % len(tokens)
		if !t.asm.Used(next) {
			t.Cursor = next
			return
		}
	}
}

// Answer returns the assembled sentence.
func (t TokenPicker) Answer() string {
	return t.asm.Answer()
}

// Ready reports whether every word has been placed.
func (t TokenPicker) Ready() bool {
	return t.asm.Ready()
}

// View renders the sentence under construction and the word bank.
func (t TokenPicker) View() string {
	var b strings.Builder

	placed := t.asm.Placed()
	line := strings.Join(placed, " ")
	if line == "" {
		line = "…"
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(line))
	b.WriteString("\n\n")

	chips := make([]string, 0, len(t.asm.Tokens()))
	for i, tok := range t.asm.Tokens() {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
		switch {
		case t.asm.Used(i):
			style = style.Foreground(theme.Border).BorderForeground(theme.Border)
		case i == t.Cursor:
			style = style.Foreground(theme.BgDark).Background(theme.ArcadeCyan).BorderForeground(theme.ArcadeCyan).Bold(true)
		default:
			style = style.Foreground(theme.Text).BorderForeground(theme.Border)
		}
		chips = append(chips, style.Render(tok))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	b.WriteString("\n")

	hint := fmt.Sprintf("%d/%d words placed", len(placed), len(t.asm.Tokens()))
	if t.asm.Ready() {
		hint = "Press Enter to check"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(hint))
	return b.String()
}
