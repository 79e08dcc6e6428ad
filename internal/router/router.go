// Package router keeps the stack of screens the learner has walked
// through. Screens navigate by returning the messages below as commands.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/tensebunny/tensebunny/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg goes back one screen. The bottom screen is never popped.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen at the same depth,
// as when a finished round turns into its result screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg returns to the bottom screen, usually home.
type PopToRootMsg struct{}

// Router is a non-empty stack of screens.
type Router struct {
	stack []screen.Screen
}

// New starts a stack with root at the bottom.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if r.top() > 0 {
		r.stack[r.top()] = nil
		r.stack = r.stack[:r.top()]
	}
	return nil
}

// Replace puts s where the top screen was and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[r.top()] = s
	return s.Init()
}

// PopToRoot drops everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	clear(r.stack[1:])
	r.stack = r.stack[:1]
	return nil
}

// Active is the screen on top.
func (r *Router) Active() screen.Screen { return r.stack[r.top()] }

// Depth counts the screens on the stack, root included.
func (r *Router) Depth() int { return len(r.stack) }

// Trail joins the titles of every screen above the root, so the header
// reads like "Games › Quiz". At the root it is the root's own title.
func (r *Router) Trail(sep string) string {
	if r.top() == 0 {
		return r.stack[0].Title()
	}
	titles := make([]string, 0, r.top())
	for _, s := range r.stack[1:] {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, sep)
}

// Update handles navigation messages itself and hands everything else
// to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}
	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View draws the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
