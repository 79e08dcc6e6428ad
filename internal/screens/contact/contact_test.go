package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/router"
	"github.com/tensebunny/tensebunny/internal/screen/screentest"
	"github.com/tensebunny/tensebunny/internal/screens/chat"
)

func TestContact_ShowsDetails(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	view := New(svc).View(100, 30)
	assert.Contains(t, view, Email)
	assert.Contains(t, view, Phone)
}

func TestContact_OpensHelpDesk(t *testing.T) {
	svc, _, _ := screentest.Services(t)
	c := New(svc)

	for _, key := range []string{"enter", "c"} {
		_, cmd := c.Update(screentest.Key(key))
		require.NotNil(t, cmd, key)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok, key)
		s, ok := msg.Screen.(*chat.ChatScreen)
		require.True(t, ok, key)
		assert.Equal(t, "Help Desk", s.Title())
	}
}
