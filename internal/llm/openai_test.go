package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return openai.NewClientWithConfig(config)
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	return &OpenAIProvider{
		client: newTestOpenAIClient(t, handler),
		model:  "gpt-4o-mini",
	}
}

func chatCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	})
}

func TestOpenAIProvider_StructuredReply(t *testing.T) {
	var sent struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name string `json:"name"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		chatCompletion(w, `{"questions":[{"sentence":"She ___ to school every day.","options":["go","goes"],"correct":"goes"}]}`)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write tense drills.",
		Messages:  []Message{{Role: RoleUser, Content: "One Present Simple question."}},
		Schema:    &Schema{Name: "practice-questions", Definition: practiceLikeSchema()},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, "end", resp.StopReason)

	require.Len(t, sent.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, sent.Messages[0].Role)
	assert.Equal(t, "json_schema", sent.ResponseFormat.Type)
	assert.Equal(t, "practice-questions", sent.ResponseFormat.JSONSchema.Name)
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		chatCompletion(w, `{"questions":[{"sentence":"missing fields"}]}`)
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "drill"}},
		Schema:   &Schema{Name: "practice-questions", Definition: practiceLikeSchema()},
	})
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %T (%v)", err, err)
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
	})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "got %T (%v)", err, err)
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
	})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %T (%v)", err, err)
}

func TestOpenAIImager_DecodesBase64(t *testing.T) {
	png := []byte("\x89PNG fake bytes")
	var sent map[string]any
	g := &OpenAIImager{
		model: "dall-e-3",
		client: newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/images/generations", r.URL.Path)
			json.NewDecoder(r.Body).Decode(&sent)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"created": 1,
				"data":    []map[string]any{{"b64_json": base64.StdEncoding.EncodeToString(png)}},
			})
		}),
	}

	resp, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "a cute bunny"})
	require.NoError(t, err)
	assert.Equal(t, png, resp.Data)
	assert.Equal(t, "image/png", resp.MIMEType)
	assert.Equal(t, "a cute bunny", sent["prompt"])
	assert.Equal(t, "b64_json", sent["response_format"])
}

func TestOpenAIImager_EmptyData(t *testing.T) {
	g := &OpenAIImager{
		model: "dall-e-3",
		client: newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"created": 1, "data": []any{}})
		}),
	}
	_, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestOpenAISpeaker_ReturnsPCM(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0}
	var sent map[string]any
	s := &OpenAISpeaker{
		model: "tts-1",
		voice: "nova",
		client: newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/audio/speech", r.URL.Path)
			json.NewDecoder(r.Body).Decode(&sent)
			w.Header().Set("Content-Type", "audio/pcm")
			w.Write(pcm)
		}),
	}

	resp, err := s.Synthesize(context.Background(), SpeechRequest{Text: "Hello!", Voice: "alloy"})
	require.NoError(t, err)
	assert.Equal(t, pcm, resp.Audio)
	assert.Equal(t, AudioPCM16, resp.Encoding)
	assert.Equal(t, DefaultSampleRate, resp.SampleRate)
	assert.Equal(t, "alloy", sent["voice"])
	assert.Equal(t, "pcm", sent["response_format"])
}

func TestOpenAIProvider_BaseURLOverride(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://example.invalid/v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)
}
