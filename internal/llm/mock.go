package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// TextResponse is a MockResponse carrying a plain-text reply.
func TextResponse(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	if req.Schema != nil {
		if err := validateResponse(req.Schema, resp.Content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockImager returns the same image, or error, on every call.
type MockImager struct {
	Data     []byte
	MIMEType string
	Err      error

	mu      sync.Mutex
	Prompts []string
}

func (m *MockImager) GenerateImage(_ context.Context, req ImageRequest) (*ImageResponse, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, req.Prompt)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Data) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("mock imager has no data")}
	}
	mime := m.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return &ImageResponse{Data: m.Data, MIMEType: mime, Model: "mock"}, nil
}

func (m *MockImager) ModelID() string { return "mock" }

// MockSpeaker returns the same PCM audio, or error, on every call.
type MockSpeaker struct {
	Audio []byte
	Err   error

	mu    sync.Mutex
	Texts []string
}

func (m *MockSpeaker) Synthesize(_ context.Context, req SpeechRequest) (*SpeechResponse, error) {
	m.mu.Lock()
	m.Texts = append(m.Texts, req.Text)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Audio) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("mock speaker has no audio")}
	}
	return &SpeechResponse{
		Audio:      m.Audio,
		Encoding:   AudioPCM16,
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Model:      "mock",
	}, nil
}

func (m *MockSpeaker) ModelID() string { return "mock" }
