package quiz

import "strings"

// Assembly builds a sentence from scrambled tokens. Tokens are picked
// by position so repeated words can each be used once.
type Assembly struct {
	tokens []string
	picked []int
	used   []bool
}

// NewAssembly starts an empty assembly over tokens.
func NewAssembly(tokens []string) *Assembly {
	return &Assembly{
		tokens: tokens,
		used:   make([]bool, len(tokens)),
	}
}

// Tokens returns the scrambled tokens.
func (a *Assembly) Tokens() []string { return a.tokens }

// Used reports whether the token at i has been placed.
func (a *Assembly) Used(i int) bool {
	return i >= 0 && i < len(a.used) && a.used[i]
}

// Pick appends the token at i. It returns false if i is out of range or
// already placed.
func (a *Assembly) Pick(i int) bool {
	if i < 0 || i >= len(a.tokens) || a.used[i] {
		return false
	}
	a.used[i] = true
	a.picked = append(a.picked, i)
	return true
}

// Undo removes the last placed token.
func (a *Assembly) Undo() bool {
	if len(a.picked) == 0 {
		return false
	}
	last := a.picked[len(a.picked)-1]
	a.picked = a.picked[:len(a.picked)-1]
	a.used[last] = false
	return true
}

// Clear removes every placed token.
func (a *Assembly) Clear() {
	a.picked = a.picked[:0]
	for i := range a.used {
		a.used[i] = false
	}
}

// Placed returns the placed words in order.
func (a *Assembly) Placed() []string {
	out := make([]string, len(a.picked))
	for i, idx := range a.picked {
		out[i] = a.tokens[idx]
	}
	return out
}

// Ready reports whether every token has been placed.
func (a *Assembly) Ready() bool {
	return len(a.picked) == len(a.tokens)
}

// Answer joins the placed words with single spaces.
func (a *Assembly) Answer() string {
	return strings.Join(a.Placed(), " ")
}
