package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/llm"
	"github.com/tensebunny/tensebunny/internal/quiz"
)

const practiceReply = `{"questions":[
 {"sentence":"She ___ to school every day.","options":["go","goes","went","is going"],"correct":"goes","explanation":"every day shows a habit."},
 {"sentence":"No blank in this one.","options":["a","b"],"correct":"a","explanation":"x"},
 {"sentence":"He ___ coffee.","options":["drink","drinks"],"correct":"drank","explanation":"answer not offered"},
 {"sentence":"Water ___ at 100 degrees.","options":["boils","boils","boil"],"correct":"boils","explanation":"a scientific fact."}
]}`

func TestPractice_BuildsPool(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse(practiceReply))
	g := NewWithBackends(mock, nil, nil)

	pool, err := g.Practice(context.Background(), "present-simple", 5)
	require.NoError(t, err)
	assert.Equal(t, "practice-present-simple", pool.Name)
	require.Len(t, pool.Questions, 2)

	q := pool.Questions[1]
	assert.Equal(t, PracticeIDBase+2, q.ID)
	assert.Equal(t, "Present Simple", q.Tense)
	assert.Equal(t, []string{"boils", "boil"}, q.Options)

	call := mock.Calls[0]
	require.NotNil(t, call.Schema)
	assert.Equal(t, "practice-questions", call.Schema.Name)
	assert.Contains(t, call.Messages[0].Content, "Write 5 questions practising the Present Simple")

	s := quiz.Start(pool.Questions, len(pool.Questions), quiz.Options{Rand: quiz.NewRand(1)})
	assert.Equal(t, 2, s.Len())
}

func TestPractice_Errors(t *testing.T) {
	_, err := New(nil).Practice(context.Background(), "present-simple", 3)
	assert.ErrorIs(t, err, ErrNoBackend)

	_, err = NewWithBackends(llm.NewMockProvider(), nil, nil).Practice(context.Background(), "someday-tense", 3)
	assert.Error(t, err)

	g := NewWithBackends(llm.NewMockProvider(llm.TextResponse(`{"questions":[]}`)), nil, nil)
	_, err = g.Practice(context.Background(), "past-simple", 3)
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))

	g = NewWithBackends(llm.NewMockProvider(llm.TextResponse(`{"questions":"nope"}`)), nil, nil)
	_, err = g.Practice(context.Background(), "past-simple", 3)
	assert.True(t, errors.As(err, &invalid))
}

func TestPractice_ClampsCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse(practiceReply))
	g := NewWithBackends(mock, nil, nil)

	_, err := g.Practice(context.Background(), "present-simple", 500)
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Write 10 questions")
}
