package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembly_BuildAnswer(t *testing.T) {
	a := NewAssembly([]string{"has", "magic", "lost", "her", "wand", "She"})

	for _, i := range []int{5, 0, 2, 3, 1, 4} {
		assert.True(t, a.Pick(i))
	}
	assert.True(t, a.Ready())
	assert.Equal(t, "She has lost her magic wand", a.Answer())
}

func TestAssembly_TokenUsedOnce(t *testing.T) {
	a := NewAssembly([]string{"the", "cat", "the"})

	assert.True(t, a.Pick(0))
	assert.False(t, a.Pick(0))
	assert.True(t, a.Pick(2))
	assert.False(t, a.Pick(7))
	assert.Equal(t, []string{"the", "the"}, a.Placed())
}

func TestAssembly_UndoAndClear(t *testing.T) {
	a := NewAssembly([]string{"a", "b", "c"})
	a.Pick(1)
	a.Pick(2)

	assert.True(t, a.Undo())
	assert.Equal(t, "b", a.Answer())
	assert.False(t, a.Used(2))

	a.Clear()
	assert.Empty(t, a.Placed())
	assert.False(t, a.Undo())
	assert.False(t, a.Ready())
}
