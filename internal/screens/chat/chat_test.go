package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/llm"
	"github.com/tensebunny/tensebunny/internal/screen/screentest"
)

func TestChat_ShowsGreeting(t *testing.T) {
	svc, _, _ := screentest.Services(t)

	tutor := New(svc, gateway.ChannelTutor)
	assert.Equal(t, "GrammarBot", tutor.Title())
	assert.Contains(t, tutor.View(100, 30), "GrammarBot")

	support := New(svc, gateway.ChannelSupport)
	assert.Equal(t, "Help Desk", support.Title())
	assert.Contains(t, support.View(100, 30), "Technical Assistant")
}

func TestChat_EmptyMessageIsNotSent(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	c := New(svc, gateway.ChannelTutor)

	screentest.Type(c, "   ")
	_, cmd := c.Update(screentest.Key("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, c.History())
}

func TestChat_SendAndReply(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	mock := llm.NewMockProvider(
		llm.TextResponse("Use Past Simple for finished actions."),
		llm.TextResponse("Yes, exactly!"),
	)
	svc.AI = gateway.NewWithBackends(mock, nil, nil)
	c := New(svc, gateway.ChannelTutor)

	screentest.Type(c, "When do I use past simple?")
	_, cmd := c.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, c.pending)
	assert.Empty(t, c.input.Value(), "input clears after sending")
	assert.Contains(t, c.View(100, 30), "thinking")

	// Input is locked while waiting.
	screentest.Type(c, "x")
	assert.Empty(t, c.input.Value())
	_, again := c.Update(screentest.Key("enter"))
	assert.Nil(t, again)

	c.Update(cmd())
	assert.False(t, c.pending)
	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[0].Role)
	assert.Equal(t, "Use Past Simple for finished actions.", history[1].Content)

	screentest.Type(c, "Like yesterday?")
	_, cmd = c.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	c.Update(cmd())

	require.Len(t, mock.Calls, 2)
	second := mock.Calls[1].Messages
	require.Len(t, second, 3, "earlier turns go with the new message")
	assert.Equal(t, "Like yesterday?", second[2].Content)
}

func TestChat_FallbackWithoutBackend(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	c := New(svc, gateway.ChannelSupport)

	screentest.Type(c, "The app froze")
	_, cmd := c.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	c.Update(cmd())

	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, gateway.SupportErrorReply, history[1].Content)
}

func TestChat_StaleReplyIgnored(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	c := New(svc, gateway.ChannelTutor)

	c.Update(replyMsg{seq: 42, text: "late"})
	assert.Empty(t, c.History())
}
