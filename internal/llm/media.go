package llm

import (
	"context"
	"strconv"
	"strings"
)

// ImageGenerator produces a single image from a text prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
	ModelID() string
}

// ImageRequest describes an image to generate.
type ImageRequest struct {
	Prompt string
}

// ImageResponse carries encoded image bytes.
type ImageResponse struct {
	Data     []byte
	MIMEType string
	Model    string
}

// SpeechSynthesizer turns text into audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error)
	ModelID() string
}

// SpeechRequest describes speech to synthesize.
type SpeechRequest struct {
	// Text is what should be read aloud, including any style direction.
	Text string

	// Voice overrides the configured voice when set.
	Voice string
}

// AudioEncoding names the layout of SpeechResponse.Audio.
type AudioEncoding string

const (
	// AudioPCM16 is raw signed 16-bit little-endian samples.
	AudioPCM16 AudioEncoding = "pcm16"
	// AudioWAV is a complete RIFF/WAVE file.
	AudioWAV AudioEncoding = "wav"
)

// SpeechResponse carries synthesized audio.
type SpeechResponse struct {
	Audio      []byte
	Encoding   AudioEncoding
	SampleRate int
	Channels   int
	Model      string
}

// Default raw audio layout of the speech models.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
)

// sampleRateFromMIME reads the rate parameter of a MIME type such as
// "audio/L16;codec=pcm;rate=24000".
func sampleRateFromMIME(mime string) int {
	for _, part := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k != "rate" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultSampleRate
}
