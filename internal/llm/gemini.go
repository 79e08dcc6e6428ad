package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash":       "gemini-3-flash-preview",
	"gemini-flash-image": "gemini-2.5-flash-image",
	"gemini-tts":         "gemini-2.5-flash-preview-tts",
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// GeminiImager implements ImageGenerator on a Gemini image model.
type GeminiImager struct {
	client *genai.Client
	model  string
}

// GeminiSpeaker implements SpeechSynthesizer on a Gemini TTS model.
type GeminiSpeaker struct {
	client *genai.Client
	model  string
	voice  string
}

func newGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return client, nil
}

// NewGeminiProvider creates a new Gemini text provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	client, err := newGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

// NewGeminiMedia creates the image and speech backends for a Gemini key.
func NewGeminiMedia(ctx context.Context, cfg GeminiConfig) (*GeminiImager, *GeminiSpeaker, error) {
	client, err := newGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}
	voice := cfg.Voice
	if voice == "" {
		voice = "Kore"
	}
	return &GeminiImager{client: client, model: resolveModel(cfg.ImageModel, geminiModels)},
		&GeminiSpeaker{client: client, model: resolveModel(cfg.SpeechModel, geminiModels), voice: voice},
		nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}

	contents := buildGeminiContents(req.Messages)
	if len(contents) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no user message to answer")}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	content := json.RawMessage(result.Text())

	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	resp := &Response{
		Content:    content,
		Model:      p.model,
		StopReason: mapGeminiStopReason(result),
	}

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// GenerateImage asks the image model for one picture and returns the
// first inline image part of the reply.
func (g *GeminiImager) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.Prompt}}}}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	blob := firstInlineData(result, "image/")
	if blob == nil {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no image in Gemini response")}
	}
	return &ImageResponse{Data: blob.Data, MIMEType: blob.MIMEType, Model: g.model}, nil
}

func (g *GeminiImager) ModelID() string {
	return g.model
}

// Synthesize reads the text aloud with the configured prebuilt voice.
// The model replies with raw 16-bit PCM.
func (s *GeminiSpeaker) Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	voice := s.voice
	if req.Voice != "" {
		voice = req.Voice
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.Text}}}}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	blob := firstInlineData(result, "audio/")
	if blob == nil || len(blob.Data) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no audio in Gemini response")}
	}
	return &SpeechResponse{
		Audio:      blob.Data,
		Encoding:   AudioPCM16,
		SampleRate: sampleRateFromMIME(blob.MIMEType),
		Channels:   DefaultChannels,
		Model:      s.model,
	}, nil
}

func (s *GeminiSpeaker) ModelID() string {
	return s.model
}

func firstInlineData(result *genai.GenerateContentResponse, mimePrefix string) *genai.Blob {
	if result == nil {
		return nil
	}
	for _, cand := range result.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			mime := part.InlineData.MIMEType
			if mime == "" || strings.HasPrefix(mime, mimePrefix) {
				return part.InlineData
			}
		}
	}
	return nil
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	turns := normalizeTurns(msgs)
	out := make([]*genai.Content, len(turns))
	for i, m := range turns {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

// buildGeminiSchema converts a JSON Schema definition map to a genai.Schema.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		schema.Type = mapGeminiType(t)
	}
	if desc, ok := def["description"].(string); ok {
		schema.Description = desc
	}

	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema)
		for k, v := range props {
			if propDef, ok := v.(map[string]any); ok {
				schema.Properties[k] = buildGeminiSchema(propDef)
			}
		}
	}

	schema.Required = stringList(def["required"])
	schema.Enum = stringList(def["enum"])

	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = buildGeminiSchema(items)
	}

	return schema
}

// stringList accepts both []any (decoded JSON) and []string (Go literals).
func stringList(v any) []string {
	switch vals := v.(type) {
	case []string:
		return append([]string(nil), vals...)
	case []any:
		var out []string
		for _, e := range vals {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case "STOP":
			return "end"
		case "MAX_TOKENS":
			return "max_tokens"
		}
	}
	return "end"
}

func mapGeminiError(err error) error {
	// The SDK returns APIError by value.
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
