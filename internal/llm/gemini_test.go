package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-flash-image", "gemini-2.5-flash-image"},
		{"gemini-tts", "gemini-2.5-flash-preview-tts"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveModel(tt.input, geminiModels), tt.input)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(practiceLikeSchema())

	require.Equal(t, "OBJECT", string(schema.Type))
	questions := schema.Properties["questions"]
	require.NotNil(t, questions)
	assert.Equal(t, "ARRAY", string(questions.Type))

	item := questions.Items
	require.NotNil(t, item)
	assert.Equal(t, "STRING", string(item.Properties["sentence"].Type))
	assert.Equal(t, "ARRAY", string(item.Properties["options"].Type))
	assert.Equal(t, []string{"present", "past", "future"}, item.Properties["era"].Enum)
	assert.ElementsMatch(t, []string{"sentence", "options", "correct"}, item.Required)
	assert.Equal(t, []string{"questions"}, schema.Required)
}

func TestBuildGeminiContents_NormalizesHistory(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleAssistant, Content: "Hi! Ask me about tenses."},
		{Role: RoleUser, Content: "What is the past perfect?"},
		{Role: RoleUser, Content: "With an example please."},
		{Role: RoleAssistant, Content: "It shows an earlier past."},
		{Role: RoleUser, Content: "  "},
		{Role: RoleUser, Content: "Thanks"},
	})

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "What is the past perfect?\n\nWith an example please.", contents[0].Parts[0].Text)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "user", contents[2].Role)
}

func TestSampleRateFromMIME(t *testing.T) {
	assert.Equal(t, 24000, sampleRateFromMIME("audio/L16;codec=pcm;rate=24000"))
	assert.Equal(t, 16000, sampleRateFromMIME("audio/L16; rate=16000"))
	assert.Equal(t, DefaultSampleRate, sampleRateFromMIME("audio/pcm"))
	assert.Equal(t, DefaultSampleRate, sampleRateFromMIME("audio/L16;rate=abc"))
}

// practiceLikeSchema mirrors the shape the tutor uses for generated drills.
func practiceLikeSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sentence": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correct": map[string]any{"type": "string"},
						"era":     map[string]any{"type": "string", "enum": []any{"present", "past", "future"}},
					},
					"required": []any{"sentence", "options", "correct"},
				},
			},
		},
		"required": []string{"questions"},
	}
}
