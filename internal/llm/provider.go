// Package llm wraps the generative AI backends behind small interfaces:
// Provider for text, ImageGenerator for pictures, and SpeechSynthesizer
// for audio. Backends are chosen by configuration and decorated with
// request logging and, for structured output, retries.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider produces text or structured JSON from a conversation.
type Provider interface {
	// Generate answers req. With a Schema the reply must be a JSON
	// object matching it, checked before returning; without one Content
	// is the model's plain text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is one call to a text model.
type Request struct {
	System   string
	Messages []Message // oldest first, ending with the turn to answer

	// Schema switches the call to structured JSON output.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // zero keeps the backend default
}

// Message is one chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the reply must satisfy, such as the
// practice-question set.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is what a backend returned.
type Response struct {
	// Content is the validated JSON for schema calls and the reply text
	// otherwise.
	Content    json.RawMessage
	Usage      Usage
	Model      string // the model that actually answered
	StopReason string // "end", "max_tokens" or "error"
}

// Text is the reply with surrounding whitespace removed. A nil response
// reads as empty.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// normalizeTurns reshapes chat history for backends that insist on a
// user-first, strictly alternating conversation: blank turns go, turns
// before the first user turn go, and back-to-back turns of one role are
// joined with a blank line.
func normalizeTurns(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		switch n := len(out); {
		case strings.TrimSpace(m.Content) == "":
		case n == 0 && m.Role != RoleUser:
		case n > 0 && out[n-1].Role == m.Role:
			out[n-1].Content += "\n\n" + m.Content
		default:
			out = append(out, m)
		}
	}
	return out
}
