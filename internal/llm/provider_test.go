package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		TextResponse("  Keep hopping! 🐰 "),
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, "end", resp.StopReason)

	resp, err = mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Keep hopping! 🐰", resp.Text())

	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(TextResponse(`{"sentence":"x"}`))
	_, err := mock.Generate(context.Background(), Request{Schema: drillSchema()})
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestResponse_TextOnNil(t *testing.T) {
	var r *Response
	assert.Equal(t, "", r.Text())
}

func TestNormalizeTurns(t *testing.T) {
	got := normalizeTurns([]Message{
		{Role: RoleAssistant, Content: "greeting"},
		{Role: RoleAssistant, Content: "second greeting"},
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: ""},
		{Role: RoleUser, Content: "b"},
		{Role: RoleAssistant, Content: "c"},
	})
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "a\n\nb"},
		{Role: RoleAssistant, Content: "c"},
	}, got)
	assert.Empty(t, normalizeTurns(nil))
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "tutor-chat", PurposeFrom(WithPurpose(ctx, "tutor-chat")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "carrot"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"TENSEBUNNY_LLM_PROVIDER",
	} {
		t.Setenv(k, "")
	}
}

func TestDiscoverConfig(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		clearKeys(t)
		_, ok := DiscoverConfig()
		assert.False(t, ok)
	})

	t.Run("API_KEY means gemini", func(t *testing.T) {
		clearKeys(t)
		t.Setenv("API_KEY", "g-key")
		cfg, ok := DiscoverConfig()
		require.True(t, ok)
		assert.Equal(t, ProviderGemini, cfg.Provider)
		assert.Equal(t, "g-key", cfg.Gemini.APIKey)
		assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.Model)
		assert.Equal(t, "Kore", cfg.Gemini.Voice)
	})

	t.Run("gemini wins over openai, openai key kept", func(t *testing.T) {
		clearKeys(t)
		t.Setenv("OPENAI_API_KEY", "o-key")
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg, ok := DiscoverConfig()
		require.True(t, ok)
		assert.Equal(t, ProviderGemini, cfg.Provider)
		assert.Equal(t, "o-key", cfg.OpenAI.APIKey)
	})

	t.Run("anthropic", func(t *testing.T) {
		clearKeys(t)
		t.Setenv("ANTHROPIC_API_KEY", "a-key")
		cfg, ok := DiscoverConfig()
		require.True(t, ok)
		assert.Equal(t, ProviderAnthropic, cfg.Provider)
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TENSEBUNNY_LLM_PROVIDER", "openai")
	t.Setenv("TENSEBUNNY_OPENAI_API_KEY", "sk")
	t.Setenv("TENSEBUNNY_OPENAI_VOICE", "alloy")
	t.Setenv("TENSEBUNNY_LLM_TIMEOUT", "5s")
	t.Setenv("TENSEBUNNY_LLM_MAX_ATTEMPTS", "1")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk", cfg.OpenAI.APIKey)
	assert.Equal(t, "alloy", cfg.OpenAI.Voice)
	assert.Equal(t, "tts-1", cfg.OpenAI.SpeechModel)
	assert.Equal(t, "5s", cfg.Timeout.String())
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
}

func TestNewSuiteFromEnv_NotConfigured(t *testing.T) {
	clearKeys(t)
	_, err := NewSuiteFromEnv(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewSuite_Mock(t *testing.T) {
	suite, err := NewSuite(context.Background(), Config{Provider: ProviderMock}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", suite.Text.ModelID())
	assert.Nil(t, suite.Images)
	assert.Nil(t, suite.Speech)
	assert.Same(t, suite.Text, suite.Structured())
}

func TestNewSuite_OpenRouterHasNoMedia(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"

	suite, err := NewSuite(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.5-flash", suite.Text.ModelID())
	assert.Nil(t, suite.Images)
	assert.Nil(t, suite.Speech)
}

func TestNewSuite_OpenAIMedia(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "sk"

	suite, err := NewSuite(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, suite.Images)
	assert.Equal(t, "dall-e-3", suite.Images.ModelID())
	assert.Equal(t, "tts-1", suite.Speech.ModelID())
}

// recordingRepo captures LLM events; other EventRepo methods are unused.
type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsTextCalls(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage("hello"), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		down(),
	)
	p := WithLogging(mock, ProviderMock, repo)

	ctx := WithPurpose(context.Background(), "tutor-chat")
	_, err := p.Generate(ctx, Request{
		System:   "be kind",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	require.Len(t, repo.events, 2)
	ok := repo.events[0]
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, "tutor-chat", ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 3, ok.InputTokens)
	assert.Equal(t, "hello", ok.ResponseBody)
	assert.Contains(t, ok.RequestBody, "[system]\nbe kind")
	assert.Contains(t, ok.RequestBody, "[user]\nhi")

	failed := repo.events[1]
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.ErrorMessage)
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(TextResponse("ok")), ProviderMock, repo)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
}

func TestLogging_Media(t *testing.T) {
	repo := &recordingRepo{}
	img := WithImageLogging(&MockImager{Data: []byte{1, 2, 3}}, ProviderMock, repo)
	speech := WithSpeechLogging(&MockSpeaker{Err: errors.New("quota")}, ProviderMock, repo)

	ctx := WithPurpose(context.Background(), "mascot")
	resp, err := img.GenerateImage(ctx, ImageRequest{Prompt: "bunny"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", resp.MIMEType)

	_, err = speech.Synthesize(WithPurpose(ctx, "speech"), SpeechRequest{Text: "Hello"})
	require.Error(t, err)

	require.Len(t, repo.events, 2)
	assert.Equal(t, "mascot", repo.events[0].Purpose)
	assert.Equal(t, "(3 bytes image/png)", repo.events[0].ResponseBody)
	assert.Equal(t, "speech", repo.events[1].Purpose)
	assert.Equal(t, "quota", repo.events[1].ErrorMessage)
}

func TestLogging_NilRepoPassesThrough(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithLogging(mock, ProviderMock, nil))
	assert.Nil(t, WithImageLogging(nil, ProviderMock, &recordingRepo{}))
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini-2024-07-18")
	require.NotNil(t, c)
	assert.InDelta(t, 0.15, c.InputPerMTok, 1e-9)
	assert.InDelta(t, 0.75, c.Cost(1_000_000, 1_000_000), 1e-9)

	assert.NotNil(t, LookupCost("gemini-3-flash-preview"))
	assert.Nil(t, LookupCost("carrot-1"))
}
