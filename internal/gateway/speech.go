package gateway

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tensebunny/tensebunny/internal/llm"
)

const speechPrompt = "Read this sentence clearly and naturally in a sweet and friendly female voice: "

// Speak synthesizes sentence as a WAV file. It returns nil when no speech
// backend is configured, the sentence is blank, or the request fails.
func (g *Gateway) Speak(ctx context.Context, sentence string) []byte {
	sentence = strings.TrimSpace(sentence)
	if g == nil || sentence == "" {
		return nil
	}
	if wav := g.cache.Get(sentence); wav != nil {
		return wav
	}
	if g.speech == nil {
		return nil
	}

	ctx, cancel := g.withTimeout(ctx, PurposeSpeech, g.mediaTimeout)
	defer cancel()

	resp, err := g.speech.Synthesize(ctx, llm.SpeechRequest{Text: speechPrompt + sentence})
	if err != nil || len(resp.Audio) == 0 {
		return nil
	}

	wav := resp.Audio
	if resp.Encoding != llm.AudioWAV {
		wav = WrapPCM(resp.Audio, resp.SampleRate, resp.Channels)
	}
	g.cache.Put(sentence, wav)
	return wav
}

// SpeakAndPlay synthesizes sentence and plays it locally. Failures are
// silent; the returned error only reports why nothing was heard.
func (g *Gateway) SpeakAndPlay(ctx context.Context, sentence string) error {
	wav := g.Speak(ctx, sentence)
	if wav == nil {
		return ErrNoAudio
	}
	return g.Play(ctx, wav)
}

// Play sends a WAV file to the local player.
func (g *Gateway) Play(ctx context.Context, wav []byte) error {
	if g == nil || g.player == nil {
		return ErrNoPlayer
	}
	return g.player.Play(ctx, wav)
}

var (
	// ErrNoAudio means synthesis produced nothing to play.
	ErrNoAudio = errors.New("no audio")
	// ErrNoPlayer means no local audio player is available.
	ErrNoPlayer = errors.New("no audio player found")
)

// WrapPCM prefixes signed 16-bit little-endian samples with a RIFF/WAVE
// header. Zero rate or channel values fall back to 24 kHz mono.
func WrapPCM(pcm []byte, sampleRate, channels int) []byte {
	if sampleRate <= 0 {
		sampleRate = llm.DefaultSampleRate
	}
	if channels <= 0 {
		channels = llm.DefaultChannels
	}
	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

// Player plays a WAV file.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// SystemPlayer shells out to the first audio player found on PATH.
type SystemPlayer struct{}

var playerCommands = [][]string{
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
	{"pw-play"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"play", "-q"},
}

func (SystemPlayer) Play(ctx context.Context, wav []byte) error {
	var argv []string
	for _, cand := range playerCommands {
		if _, err := exec.LookPath(cand[0]); err == nil {
			argv = cand
			break
		}
	}
	if argv == nil {
		return ErrNoPlayer
	}

	f, err := os.CreateTemp("", "tensebunny-*.wav")
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(wav); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio: %w", err)
	}

	args := append(append([]string(nil), argv[1:]...), f.Name())
	cmd := exec.CommandContext(ctx, argv[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// SpeechCache keeps synthesized WAV files on disk keyed by sentence.
// A nil cache stores nothing.
type SpeechCache struct {
	dir string
	mu  sync.Mutex
}

// NewSpeechCache creates the cache directory if needed.
func NewSpeechCache(dir string) (*SpeechCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create speech cache: %w", err)
	}
	return &SpeechCache{dir: dir}, nil
}

func (c *SpeechCache) path(sentence string) string {
	h := sha256.Sum256([]byte(sentence))
	return filepath.Join(c.dir, hex.EncodeToString(h[:16])+".wav")
}

// Get returns the cached audio or nil.
func (c *SpeechCache) Get(sentence string) []byte {
	if c == nil {
		return nil
	}
	data, err := os.ReadFile(c.path(sentence))
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}

// Put stores audio. Write failures are ignored.
func (c *SpeechCache) Put(sentence string, wav []byte) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	tmp := c.path(sentence) + ".tmp"
	if err := os.WriteFile(tmp, wav, 0o644); err != nil {
		return
	}
	os.Rename(tmp, c.path(sentence))
}
