package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tensebunny/tensebunny/internal/store"
)

// ErrNotConfigured is returned when no provider key can be found.
var ErrNotConfigured = errors.New("no LLM provider configured")

// Suite bundles the backends the app talks to. Images and Speech are
// nil when none of the configured keys offers them.
type Suite struct {
	Provider string
	Text     Provider
	Images   ImageGenerator
	Speech   SpeechSynthesizer
	Timeout  time.Duration

	retry RetryConfig
}

// Structured returns the text provider wrapped with retries, for calls
// whose output is validated against a schema.
func (s *Suite) Structured() Provider {
	if s.retry.MaxAttempts <= 1 {
		return s.Text
	}
	return WithRetry(s.Text, s.retry)
}

// NewSuite creates the backends selected by cfg. Every backend is
// wrapped with event logging when eventRepo is non-nil.
func NewSuite(ctx context.Context, cfg Config, eventRepo store.EventRepo) (*Suite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	suite := &Suite{Provider: cfg.Provider, Timeout: cfg.Timeout, retry: cfg.Retry}

	var text Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		text, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		text, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		text, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		text, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		suite.Text = NewMockProvider()
		return suite, nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	suite.Text = WithLogging(text, cfg.Provider, eventRepo)

	if err := suite.attachMedia(ctx, cfg, eventRepo); err != nil {
		fmt.Fprintf(os.Stderr, "warning: media generation disabled: %v\n", err)
	}
	return suite, nil
}

// attachMedia prefers the text provider's own media models and falls
// back to any other backend with a key.
func (s *Suite) attachMedia(ctx context.Context, cfg Config, eventRepo store.EventRepo) error {
	preferOpenAI := cfg.Provider == ProviderOpenAI && cfg.OpenAI.APIKey != ""
	switch {
	case cfg.Gemini.APIKey != "" && !preferOpenAI:
		img, speech, err := NewGeminiMedia(ctx, cfg.Gemini)
		if err != nil {
			return err
		}
		s.Images = WithImageLogging(img, ProviderGemini, eventRepo)
		s.Speech = WithSpeechLogging(speech, ProviderGemini, eventRepo)
	case cfg.OpenAI.APIKey != "":
		img, speech, err := NewOpenAIMedia(cfg.OpenAI)
		if err != nil {
			return err
		}
		s.Images = WithImageLogging(img, ProviderOpenAI, eventRepo)
		s.Speech = WithSpeechLogging(speech, ProviderOpenAI, eventRepo)
	}
	return nil
}

// NewSuiteFromEnv configures backends from TENSEBUNNY_LLM_PROVIDER when
// set, otherwise from the first standard API key found in the
// environment. It returns ErrNotConfigured when neither is present.
func NewSuiteFromEnv(ctx context.Context, eventRepo store.EventRepo) (*Suite, error) {
	if os.Getenv("TENSEBUNNY_LLM_PROVIDER") != "" {
		return NewSuite(ctx, ConfigFromEnv(), eventRepo)
	}
	cfg, ok := DiscoverConfig()
	if !ok {
		return nil, ErrNotConfigured
	}
	return NewSuite(ctx, cfg, eventRepo)
}
