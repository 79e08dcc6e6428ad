package play

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	if p.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	if p.finished || p.index < 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Counting your score..."))
	}
	if p.sess.Phase() == quiz.PhaseFeedback {
		return p.renderFeedback(width, height)
	}
	return p.renderQuestion(width, height)
}

// renderQuestion renders the active question.
func (p *PlayScreen) renderQuestion(width, height int) string {
	var b strings.Builder

	b.WriteString(p.renderInfoLine(width))
	b.WriteString("\n")
	if p.sess.Timed() {
		b.WriteString("  " + p.clockMeter(max(0, width-4)).View())
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	}
	b.WriteString("\n\n")

	q := p.question
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if prompt := promptFor(q); prompt != "" {
		b.WriteString(center.Foreground(theme.Secondary).Render(prompt))
		b.WriteString("\n\n")
	}
	if q.Kind() == catalog.KindChoice {
		b.WriteString(center.Foreground(theme.Text).Bold(true).Render(q.Sentence))
		b.WriteString("\n\n")
		b.WriteString(indent(p.choice.View(), max(0, (width-40)/2)))
	} else {
		b.WriteString(center.Render(p.picker.View()))
	}

	if flash := p.renderFlash(); flash != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(flash))
	}
	if p.status != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render(p.status))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

// promptFor returns the instruction shown above a question.
func promptFor(q catalog.Question) string {
	switch {
	case q.Kind() == catalog.KindAssemble:
		return "Build this tense: " + q.Tense
	case q.TargetTense != "":
		return "Transform to: " + q.TargetTense
	case q.WrongPart != "":
		return fmt.Sprintf("Fix this part: %q", q.WrongPart)
	case !strings.Contains(q.Sentence, catalog.Blank):
		return "Which tense is this?"
	}
	return ""
}

func (p *PlayScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s %s", p.mode.Icon, p.mode.Title))

	parts := []string{fmt.Sprintf("Q %d/%d", p.index+1, p.sess.Len())}
	if p.mode.Feedback != quiz.FeedbackHidden {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Success).Render("✓")+fmt.Sprintf(" %d", p.sess.Score()))
	}
	if p.sess.Timed() {
		remaining := p.sess.Remaining()
		clock := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
		if remaining <= 10*time.Second {
			clock = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		parts = append(parts, clock.Render("⏱ "+formatClock(remaining)))
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(parts, "  "))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad <= 0 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

// clockMeter drains as the round clock runs down. Bonus time can push
// it past full; it stays capped at the starting allowance.
func (p *PlayScreen) clockMeter(width int) components.Meter {
	m := components.NewMeter(float64(p.sess.Remaining()), float64(quiz.DefaultTimer().Start), width)
	m.Fill = theme.ArcadeCyan
	if p.sess.Remaining() <= 10*time.Second {
		m.Fill = theme.Error
	}
	return m
}

// renderFlash shows how the previous answer went in modes that move on
// without pausing.
func (p *PlayScreen) renderFlash() string {
	if p.last == nil || p.mode.Feedback != quiz.FeedbackNone {
		return ""
	}
	if p.last.Correct {
		msg := "✓ Correct!"
		if p.mode.XPPerCorrect > 0 {
			msg = fmt.Sprintf("✓ Correct! +%d XP", p.mode.XPPerCorrect)
		}
		return theme.Correct.Render(msg)
	}
	return theme.Incorrect.Render(fmt.Sprintf("✗ The answer was %q", p.last.Expected))
}

// renderFeedback shows the outcome and explanation of the last answer.
func (p *PlayScreen) renderFeedback(width, height int) string {
	out := p.last
	if out == nil {
		return ""
	}
	contentWidth := min(width-8, 64)

	var b strings.Builder
	if out.Correct {
		b.WriteString(theme.Correct.Render("✓ Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Not quite"))
	}
	b.WriteString("\n\n")

	if p.question.Kind() == catalog.KindChoice {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.question.Sentence))
		b.WriteString("\n\n")
		b.WriteString(p.choice.View())
		b.WriteString("\n")
	} else if !out.Correct {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("You built: " + out.Answer))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("✔ " + p.question.Solved()))
	b.WriteString("\n")

	if out.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			Render("💡 " + out.Explanation))
		b.WriteString("\n")
	}
	if p.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Enter to continue · S to listen"))

	card := theme.Card.Width(contentWidth + 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func renderQuitConfirm(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Leave this round?"),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("You will not earn XP for unfinished rounds."),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render("[Y] Leave   [N] Keep playing"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func indent(s string, n int) string {
	if n <= 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
