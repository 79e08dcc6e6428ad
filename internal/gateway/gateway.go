// Package gateway is the app's best-effort bridge to generative AI: tutor
// and support chat, the mascot picture, spoken example sentences, and
// generated practice drills. Calls never panic and never surface provider
// errors to the learner; each operation has a fixed fallback instead.
package gateway

import (
	"context"
	"time"

	"github.com/tensebunny/tensebunny/internal/llm"
)

// Purpose labels recorded with every request event.
const (
	PurposeTutor    = "tutor-chat"
	PurposeSupport  = "support-chat"
	PurposeMascot   = "mascot"
	PurposeSpeech   = "speech"
	PurposePractice = "practice"
)

const (
	defaultTextTimeout  = 30 * time.Second
	defaultMediaTimeout = 90 * time.Second
	chatMaxTokens       = 1024
)

// Gateway routes requests to the configured AI backends. The zero value
// and a Gateway built from a nil suite are valid; every call then
// returns its fallback.
type Gateway struct {
	text       llm.Provider
	structured llm.Provider
	images     llm.ImageGenerator
	speech     llm.SpeechSynthesizer

	textTimeout  time.Duration
	mediaTimeout time.Duration
	cache        *SpeechCache
	player       Player
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithSpeechCache stores synthesized sentences on disk so repeated
// examples are spoken without another request.
func WithSpeechCache(c *SpeechCache) Option {
	return func(g *Gateway) { g.cache = c }
}

// WithPlayer overrides local audio playback.
func WithPlayer(p Player) Option {
	return func(g *Gateway) { g.player = p }
}

// WithTimeouts overrides the per-call deadlines.
func WithTimeouts(text, media time.Duration) Option {
	return func(g *Gateway) {
		if text > 0 {
			g.textTimeout = text
		}
		if media > 0 {
			g.mediaTimeout = media
		}
	}
}

// New builds a Gateway from the configured backends. suite may be nil.
func New(suite *llm.Suite, opts ...Option) *Gateway {
	g := &Gateway{
		textTimeout:  defaultTextTimeout,
		mediaTimeout: defaultMediaTimeout,
		player:       SystemPlayer{},
	}
	if suite != nil {
		g.text = suite.Text
		g.structured = suite.Structured()
		g.images = suite.Images
		g.speech = suite.Speech
		if suite.Timeout > 0 {
			g.textTimeout = suite.Timeout
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewWithBackends builds a Gateway from explicit backends. Any of them
// may be nil.
func NewWithBackends(text llm.Provider, images llm.ImageGenerator, speech llm.SpeechSynthesizer, opts ...Option) *Gateway {
	g := New(nil, opts...)
	g.text = text
	g.structured = text
	g.images = images
	g.speech = speech
	return g
}

// Capabilities reports which backends are present.
type Capabilities struct {
	Chat     bool `json:"chat"`
	Images   bool `json:"images"`
	Speech   bool `json:"speech"`
	Practice bool `json:"practice"`
}

// Capabilities reports which backends are present.
func (g *Gateway) Capabilities() Capabilities {
	if g == nil {
		return Capabilities{}
	}
	return Capabilities{
		Chat:     g.text != nil,
		Images:   g.images != nil,
		Speech:   g.speech != nil,
		Practice: g.structured != nil,
	}
}

func (g *Gateway) withTimeout(ctx context.Context, purpose string, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(llm.WithPurpose(ctx, purpose), d)
}
