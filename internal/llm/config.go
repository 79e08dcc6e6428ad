package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend serves text generation.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request, retries included. Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration. Anthropic has
// no image or speech models, so media falls back to another configured
// backend or is disabled.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	ImageModel  string
	SpeechModel string
	Voice       string
	BaseURL     string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey      string
	Model       string
	ImageModel  string
	SpeechModel string
	Voice       string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			ImageModel:  "dall-e-3",
			SpeechModel: "tts-1",
			Voice:       "nova",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-3-flash-preview",
			ImageModel:  "gemini-2.5-flash-image",
			SpeechModel: "gemini-2.5-flash-preview-tts",
			Voice:       "Kore",
		},
		OpenRouter: OpenRouterConfig{
			Model:   "google/gemini-2.5-flash",
			BaseURL: "https://openrouter.ai/api/v1",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from TENSEBUNNY_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "TENSEBUNNY_LLM_PROVIDER")

	setString(&cfg.Anthropic.APIKey, "TENSEBUNNY_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "TENSEBUNNY_ANTHROPIC_MODEL")

	setString(&cfg.OpenAI.APIKey, "TENSEBUNNY_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "TENSEBUNNY_OPENAI_MODEL")
	setString(&cfg.OpenAI.ImageModel, "TENSEBUNNY_OPENAI_IMAGE_MODEL")
	setString(&cfg.OpenAI.SpeechModel, "TENSEBUNNY_OPENAI_SPEECH_MODEL")
	setString(&cfg.OpenAI.Voice, "TENSEBUNNY_OPENAI_VOICE")
	setString(&cfg.OpenAI.BaseURL, "TENSEBUNNY_OPENAI_BASE_URL")

	setString(&cfg.Gemini.APIKey, "TENSEBUNNY_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "TENSEBUNNY_GEMINI_MODEL")
	setString(&cfg.Gemini.ImageModel, "TENSEBUNNY_GEMINI_IMAGE_MODEL")
	setString(&cfg.Gemini.SpeechModel, "TENSEBUNNY_GEMINI_SPEECH_MODEL")
	setString(&cfg.Gemini.Voice, "TENSEBUNNY_GEMINI_VOICE")

	setString(&cfg.OpenRouter.APIKey, "TENSEBUNNY_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "TENSEBUNNY_OPENROUTER_MODEL")

	if v := os.Getenv("TENSEBUNNY_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("TENSEBUNNY_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. API_KEY is treated as a Gemini key.
// Keys for the other backends are filled in too so media can fall back.
// Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	cfg.Provider = ""

	gemini := os.Getenv("GEMINI_API_KEY")
	if gemini == "" {
		gemini = os.Getenv("API_KEY")
	}
	cfg.Gemini.APIKey = gemini
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")

	switch {
	case cfg.Gemini.APIKey != "":
		cfg.Provider = ProviderGemini
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = ProviderOpenAI
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = ProviderAnthropic
	case cfg.OpenRouter.APIKey != "":
		cfg.Provider = ProviderOpenRouter
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("TENSEBUNNY_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("TENSEBUNNY_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("TENSEBUNNY_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("TENSEBUNNY_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
