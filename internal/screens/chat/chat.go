// Package chat is the conversation window for the grammar tutor and the
// support assistant.
package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/llm"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// MaxMessageLength caps a single chat message.
const MaxMessageLength = 500

type replyMsg struct {
	seq  int
	text string
}

// ChatScreen holds one conversation. Only one message is in flight at a
// time; the input is locked until the reply arrives.
type ChatScreen struct {
	svc     *screen.Services
	channel gateway.Channel
	input   components.TextInput

	// history is sent with every message; the greeting is not part of it.
	history []llm.Message
	seq     int
	pending bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New opens a conversation on the given channel.
func New(svc *screen.Services, channel gateway.Channel) *ChatScreen {
	return &ChatScreen{
		svc:     svc,
		channel: channel,
		input:   components.NewTextInput(placeholder(channel), MaxMessageLength),
	}
}

func placeholder(c gateway.Channel) string {
	if c == gateway.ChannelSupport {
		return "Describe the problem..."
	}
	return "Ask about any tense..."
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	if c.channel == gateway.ChannelSupport {
		return "Help Desk"
	}
	return "GrammarBot"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.seq != c.seq {
			return c, nil
		}
		c.pending = false
		c.history = append(c.history, llm.Message{Role: llm.RoleAssistant, Content: msg.text})
		return c, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return c, c.send()
		}
		if c.pending {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send posts the typed message and asks the assistant for a reply.
func (c *ChatScreen) send() tea.Cmd {
	text := c.input.Value()
	if text == "" || c.pending {
		return nil
	}
	prior := append([]llm.Message(nil), c.history...)
	c.history = append(c.history, llm.Message{Role: llm.RoleUser, Content: text})
	c.input.Reset()
	c.pending = true
	c.seq++

	seq, ai, channel := c.seq, c.svc.AI, c.channel
	return func() tea.Msg {
		return replyMsg{seq: seq, text: ai.Chat(context.Background(), channel, text, prior)}
	}
}

// History returns the conversation so far, oldest first.
func (c *ChatScreen) History() []llm.Message {
	return append([]llm.Message(nil), c.history...)
}

func (c *ChatScreen) View(width, height int) string {
	bubbleWidth := max(20, min(width-10, 70))

	var blocks []string
	blocks = append(blocks, renderBubble(llm.RoleAssistant, gateway.Greeting(c.channel), bubbleWidth, width))
	for _, m := range c.history {
		blocks = append(blocks, renderBubble(m.Role, m.Content, bubbleWidth, width))
	}
	if c.pending {
		blocks = append(blocks, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			PaddingLeft(2).
			Render("🐰 thinking..."))
	}

	footer := "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(c.input.View())
	available := height - lipgloss.Height(footer)

	// Keep the newest lines when the transcript overflows.
	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	if available > 0 && len(lines) > available {
		lines = lines[len(lines)-available:]
	}
	transcript := lipgloss.Place(width, max(0, available), lipgloss.Left, lipgloss.Bottom, strings.Join(lines, "\n"))
	return transcript + footer
}

func renderBubble(role llm.Role, text string, bubbleWidth, width int) string {
	style := lipgloss.NewStyle().
		Width(bubbleWidth).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	if role == llm.RoleUser {
		bubble := style.
			BorderForeground(theme.Primary).
			Foreground(theme.Text).
			Render(text)
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, bubble)
	}
	bubble := style.
		BorderForeground(theme.Secondary).
		Foreground(theme.Text).
		Render(text)
	return lipgloss.NewStyle().PaddingLeft(2).Render(bubble)
}
