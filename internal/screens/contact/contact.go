// Package contact shows how to reach the TenseBunny team.
package contact

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/screens/chat"
	"github.com/tensebunny/tensebunny/internal/ui/components"
	"github.com/tensebunny/tensebunny/internal/ui/layout"
	"github.com/tensebunny/tensebunny/internal/ui/theme"
)

// Support contact details.
const (
	Email = "skykandanai@gmail.com"
	Phone = "098-772-2069"
)

// ContactScreen lists the support contacts and opens the help desk chat.
type ContactScreen struct {
	svc  *screen.Services
	chat components.Button
}

var _ screen.Screen = (*ContactScreen)(nil)
var _ screen.KeyHintProvider = (*ContactScreen)(nil)

// New creates the contact screen.
func New(svc *screen.Services) *ContactScreen {
	c := &ContactScreen{svc: svc}
	c.chat = components.NewButton("Chat with the Help Desk", true, c.openChat)
	return c
}

func (c *ContactScreen) Init() tea.Cmd { return nil }

func (c *ContactScreen) Title() string { return "Contact Support" }

func (c *ContactScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Help Desk chat"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ContactScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "c" {
		return c, c.openChat()
	}
	var cmd tea.Cmd
	c.chat, cmd = c.chat.Update(msg)
	return c, cmd
}

func (c *ContactScreen) openChat() tea.Cmd {
	next := chat.New(c.svc, gateway.ChannelSupport)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (c *ContactScreen) View(width, height int) string {
	label := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Contact Support"),
		"",
		label.Render("✉  ")+value.Render(Email),
		label.Render("☎  ")+value.Render(Phone),
		"",
		c.chat.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}
