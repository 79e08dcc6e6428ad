// Package lessons lets the learner browse the twelve tenses and open a
// lesson for each one.
package lessons

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

type rowKind int

const (
	rowEraHeader rowKind = iota
	rowTense
)

type row struct {
	kind  rowKind
	era   catalog.Era
	tense *catalog.Tense
}

// ListScreen displays the tenses grouped by era.
type ListScreen struct {
	svc          *screen.Services
	rows         []row
	cursor       int
	scrollOffset int

	// review holds the tense names missed in the placement test.
	review map[string]bool
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// New creates the lesson list.
func New(svc *screen.Services) *ListScreen {
	var rows []row
	for _, era := range catalog.AllEras() {
		rows = append(rows, row{kind: rowEraHeader, era: era})
		tenses := catalog.ByEra(era)
		for i := range tenses {
			rows = append(rows, row{kind: rowTense, era: era, tense: &tenses[i]})
		}
	}

	review := make(map[string]bool)
	if svc.Placement != nil {
		for _, name := range svc.Placement.Missed {
			review[name] = true
		}
	}

	s := &ListScreen{svc: svc, rows: rows, review: review}
	for i, r := range s.rows {
		if r.kind == rowTense {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *ListScreen) Init() tea.Cmd {
	return nil
}

func (s *ListScreen) Title() string {
	return "Lessons"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Era"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.jumpEra(1)
		case "shift+tab":
			s.jumpEra(-1)
		case "enter":
			return s, s.open()
		}
	}
	return s, nil
}

// moveCursor moves the cursor by delta, skipping era headers.
func (s *ListScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowTense {
			s.cursor = next
			return
		}
		next += delta
	}
}

// jumpEra moves the cursor to the first tense of the next or previous
// era, wrapping around.
func (s *ListScreen) jumpEra(delta int) {
	eras := catalog.AllEras()
	cur := 0
	for i, e := range eras {
		if e == s.rows[s.cursor].era {
			cur = i
		}
	}
	target := eras[(cur+delta+len(eras))%len(eras)]
	for i, r := range s.rows {
		if r.kind == rowTense && r.era == target {
			s.cursor = i
			return
		}
	}
}

// Selected returns the tense under the cursor.
func (s *ListScreen) Selected() catalog.Tense {
	if t := s.rows[s.cursor].tense; t != nil {
		return *t
	}
	return catalog.Tense{}
}

func (s *ListScreen) open() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowTense || r.tense == nil {
		return nil
	}
	detail := NewDetail(s.svc, r.tense.ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

// adjustScroll keeps the cursor and its era header inside the viewport.
func (s *ListScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowEraHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ListScreen) View(width, height int) string {
	s.adjustScroll(height)

	var lines []string
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		switch r.kind {
		case rowEraHeader:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true).
				PaddingLeft(2).
				Render(strings.ToUpper(catalog.EraDisplayName(r.era))))
		case rowTense:
			lines = append(lines, s.renderTenseRow(r, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *ListScreen) renderTenseRow(r row, selected bool, width int) string {
	const nameWidth = 26

	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	formulaStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if selected {
		cursor = "▸ "
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		formulaStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	}

	formula := r.tense.Formula.String()
	if limit := width - nameWidth - 20; limit > 8 && len([]rune(formula)) > limit {
		formula = string([]rune(formula)[:limit-1]) + "…"
	}

	line := fmt.Sprintf("  %s%s  %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, r.tense.Name)),
		formulaStyle.Render(formula))
	if s.review[r.tense.Name] {
		line += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render("● review")
	}
	return line
}
