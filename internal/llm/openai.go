package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"dall-e-3":    openai.CreateImageModelDallE3,
	"tts":         "tts-1",
}

// OpenAIProvider implements Provider using the OpenAI SDK.
// It also serves OpenRouter and other compatible APIs via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// OpenAIImager implements ImageGenerator with the images endpoint.
type OpenAIImager struct {
	client *openai.Client
	model  string
}

// OpenAISpeaker implements SpeechSynthesizer with the audio/speech endpoint.
type OpenAISpeaker struct {
	client *openai.Client
	model  string
	voice  string
}

func newOpenAIClient(apiKey, baseURL string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config), nil
}

// NewOpenAIProvider creates a new OpenAI text provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	p, err := newOpenAIProviderRaw(cfg)
	if err != nil {
		return nil, err
	}
	p.model = resolveModel(cfg.Model, openaiModels)
	return p, nil
}

// newOpenAIProviderRaw builds the provider without friendly-name mapping,
// for gateways whose model IDs are namespaced.
func newOpenAIProviderRaw(cfg OpenAIConfig) (*OpenAIProvider, error) {
	client, err := newOpenAIClient(cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return &OpenAIProvider{client: client, model: cfg.Model}, nil
}

// NewOpenAIMedia creates the image and speech backends for an OpenAI key.
func NewOpenAIMedia(cfg OpenAIConfig) (*OpenAIImager, *OpenAISpeaker, error) {
	client, err := newOpenAIClient(cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	voice := cfg.Voice
	if voice == "" {
		voice = string(openai.VoiceNova)
	}
	return &OpenAIImager{client: client, model: resolveModel(cfg.ImageModel, openaiModels)},
		&OpenAISpeaker{client: client, model: resolveModel(cfg.SpeechModel, openaiModels), voice: voice},
		nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            buildOpenAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}

		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(schemaBytes),
				Strict: true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in OpenAI response"),
		}
	}

	content := json.RawMessage(resp.Choices[0].Message.Content)

	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

// GenerateImage requests one square PNG, base64 encoded in the response.
func (g *OpenAIImager) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          g.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no image in OpenAI response")}
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("decode image: %w", err)}
	}
	return &ImageResponse{Data: data, MIMEType: "image/png", Model: g.model}, nil
}

func (g *OpenAIImager) ModelID() string {
	return g.model
}

// Synthesize asks for raw PCM so both speech backends share one layout.
func (s *OpenAISpeaker) Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	voice := s.voice
	if req.Voice != "" {
		voice = req.Voice
	}
	raw, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormat("pcm"),
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	defer raw.Close()

	audio, err := io.ReadAll(raw)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("read speech: %w", err)}
	}
	if len(audio) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty speech response")}
	}
	return &SpeechResponse{
		Audio:      audio,
		Encoding:   AudioPCM16,
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Model:      s.model,
	}, nil
}

func (s *OpenAISpeaker) ModelID() string {
	return s.model
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonStop:
		return "end"
	case openai.FinishReasonLength:
		return "max_tokens"
	case openai.FinishReasonContentFilter:
		return "error"
	default:
		return "end"
	}
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
