package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tensebunny/tensebunny/internal/store"
)

// LoggingProvider is a decorator that records every request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. A nil repo disables it.
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	if repo == nil {
		return p
	}
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	appendEvent(ctx, l.eventRepo, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// LoggingImager records image generation calls.
type LoggingImager struct {
	inner     ImageGenerator
	provider  string
	eventRepo store.EventRepo
}

// WithImageLogging wraps an ImageGenerator with event logging.
func WithImageLogging(g ImageGenerator, provider string, repo store.EventRepo) ImageGenerator {
	if repo == nil || g == nil {
		return g
	}
	return &LoggingImager{inner: g, provider: provider, eventRepo: repo}
}

func (l *LoggingImager) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	start := time.Now()
	resp, err := l.inner.GenerateImage(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: "[image]\n" + req.Prompt,
	}
	if resp != nil {
		data.ResponseBody = fmt.Sprintf("(%d bytes %s)", len(resp.Data), resp.MIMEType)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	appendEvent(ctx, l.eventRepo, data)
	return resp, err
}

func (l *LoggingImager) ModelID() string {
	return l.inner.ModelID()
}

// LoggingSpeaker records speech synthesis calls.
type LoggingSpeaker struct {
	inner     SpeechSynthesizer
	provider  string
	eventRepo store.EventRepo
}

// WithSpeechLogging wraps a SpeechSynthesizer with event logging.
func WithSpeechLogging(s SpeechSynthesizer, provider string, repo store.EventRepo) SpeechSynthesizer {
	if repo == nil || s == nil {
		return s
	}
	return &LoggingSpeaker{inner: s, provider: provider, eventRepo: repo}
}

func (l *LoggingSpeaker) Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	start := time.Now()
	resp, err := l.inner.Synthesize(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: "[speech]\n" + req.Text,
	}
	if resp != nil {
		data.ResponseBody = fmt.Sprintf("(%d bytes %s @ %d Hz)", len(resp.Audio), resp.Encoding, resp.SampleRate)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	appendEvent(ctx, l.eventRepo, data)
	return resp, err
}

func (l *LoggingSpeaker) ModelID() string {
	return l.inner.ModelID()
}

// appendEvent never fails the request; a broken log only warns.
func appendEvent(ctx context.Context, repo store.EventRepo, data store.LLMRequestEventData) {
	if err := repo.AppendLLMRequest(context.WithoutCancel(ctx), data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", err)
	}
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if schemaDef, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
