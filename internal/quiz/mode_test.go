package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/catalog"
)

func TestModes_StartSampleSizes(t *testing.T) {
	tests := []struct {
		id    string
		want  int
		timed bool
	}{
		{ModePreTest, 20, false},
		{ModePostTest, 30, false},
		{ModeSniper, 5, false},
		{ModeGarden, 2, false},
		{ModeMatch, 3, false},
		{ModeScramble, 3, false},
		{ModeRunner, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			m, err := ModeByID(tt.id)
			require.NoError(t, err)

			s, err := m.Start(NewRand(1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Len())
			assert.Equal(t, tt.timed, s.Timed())
		})
	}
}

func TestModeByID_Unknown(t *testing.T) {
	_, err := ModeByID("bowling")
	assert.Error(t, err)
}

func TestGames_ExcludeTests(t *testing.T) {
	for _, m := range Games() {
		assert.False(t, m.Test, m.ID)
		assert.Positive(t, m.XPPerCorrect, m.ID)
	}
	assert.Len(t, Games(), 7)
}

func TestMode_ScrambleXP(t *testing.T) {
	m, err := ModeByID(ModeScramble)
	require.NoError(t, err)
	s, err := m.Start(NewRand(5))
	require.NoError(t, err)

	for {
		q, _, ok := s.Current()
		if !ok {
			break
		}
		require.Equal(t, catalog.KindAssemble, q.Kind())
		_, err := s.Submit(q.Correct)
		require.NoError(t, err)
	}
	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 150, r.XP)
}

func TestRemediate(t *testing.T) {
	refs := Remediate(Report{Missed: []string{"Past Simple", "Mystery Tense"}})
	require.Len(t, refs, 2)
	assert.True(t, refs[0].Found)
	assert.Equal(t, "past-simple", refs[0].Tense.ID)
	assert.False(t, refs[1].Found)
	assert.Empty(t, refs[1].Tense.ID)
}
