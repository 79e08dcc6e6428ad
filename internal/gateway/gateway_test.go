package gateway

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensebunny/tensebunny/internal/llm"
)

func TestTutor_ReturnsModelReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Past Simple: S + V2. Example: I walked home. 🐰"))
	g := NewWithBackends(mock, nil, nil)

	history := []llm.Message{{Role: llm.RoleAssistant, Content: TutorGreeting}}
	got := g.Tutor(context.Background(), "What is the past simple?", history)

	assert.Equal(t, "Past Simple: S + V2. Example: I walked home. 🐰", got)
	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Contains(t, call.System, "GrammarBot")
	require.Len(t, call.Messages, 2)
	assert.Equal(t, llm.RoleUser, call.Messages[1].Role)
	assert.Equal(t, "What is the past simple?", call.Messages[1].Content)
}

func TestChat_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		ch   Channel
		resp llm.MockResponse
		want string
	}{
		{"tutor empty", ChannelTutor, llm.TextResponse("   "), TutorEmptyReply},
		{"tutor error", ChannelTutor, llm.MockResponse{Err: errors.New("boom")}, TutorErrorReply},
		{"support empty", ChannelSupport, llm.TextResponse(""), SupportEmptyReply},
		{"support error", ChannelSupport, llm.MockResponse{Err: &llm.ErrRateLimit{}}, SupportErrorReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithBackends(llm.NewMockProvider(tt.resp), nil, nil)
			assert.Equal(t, tt.want, g.Chat(context.Background(), tt.ch, "help", nil))
		})
	}
}

func TestChat_NoBackend(t *testing.T) {
	var nilGateway *Gateway
	assert.Equal(t, TutorErrorReply, nilGateway.Tutor(context.Background(), "hi", nil))
	assert.Equal(t, SupportErrorReply, New(nil).Support(context.Background(), "hi", nil))
}

func TestChat_NeverRetries(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.TextResponse("second try"),
	)
	suite := &llm.Suite{Text: mock}
	g := New(suite)

	assert.Equal(t, TutorErrorReply, g.Tutor(context.Background(), "hi", nil))
	assert.Equal(t, 1, mock.CallCount())
}

func TestSupport_UsesSupportPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Try restarting! 🔧"))
	g := NewWithBackends(mock, nil, nil)

	assert.Equal(t, "Try restarting! 🔧", g.Support(context.Background(), "ranking is empty", nil))
	assert.Contains(t, mock.Calls[0].System, "Technical Assistant")
}

func TestParseChannel(t *testing.T) {
	c, err := ParseChannel(" Support ")
	require.NoError(t, err)
	assert.Equal(t, ChannelSupport, c)

	_, err = ParseChannel("carrots")
	assert.Error(t, err)
	assert.Equal(t, TutorGreeting, Greeting(ChannelTutor))
	assert.Equal(t, SupportGreeting, Greeting(ChannelSupport))
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func mascotSource() *image.NRGBA {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255}) // background
	src.SetNRGBA(1, 0, color.NRGBA{236, 236, 236, 255}) // just above threshold
	src.SetNRGBA(2, 0, color.NRGBA{255, 182, 193, 255}) // pink
	return src
}

func decodeNRGBA(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	out := image.NewNRGBA(img.Bounds())
	for x := 0; x < img.Bounds().Dx(); x++ {
		out.Set(x, 0, img.At(x, 0))
	}
	return out
}

func TestMascot_ClearsWhiteBackground(t *testing.T) {
	imager := &llm.MockImager{Data: encodePNG(t, mascotSource())}
	g := NewWithBackends(nil, imager, nil)

	img := g.Mascot(context.Background(), MascotOptions{})
	require.NotNil(t, img)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 1, img.Height)
	require.Len(t, imager.Prompts, 1)
	assert.Contains(t, imager.Prompts[0], "bunny onesie")

	out := decodeNRGBA(t, img.PNG)
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), out.NRGBAAt(1, 0).A)
	assert.Equal(t, color.NRGBA{255, 182, 193, 255}, out.NRGBAAt(2, 0))
}

func TestMascot_KeepBackground(t *testing.T) {
	g := NewWithBackends(nil, &llm.MockImager{Data: encodePNG(t, mascotSource())}, nil)

	img := g.Mascot(context.Background(), MascotOptions{KeepBackground: true})
	require.NotNil(t, img)
	out := decodeNRGBA(t, img.PNG)
	assert.Equal(t, uint8(255), out.NRGBAAt(0, 0).A)
}

func TestMascot_Failures(t *testing.T) {
	assert.Nil(t, New(nil).Mascot(context.Background(), MascotOptions{}))
	assert.Nil(t, NewWithBackends(nil, &llm.MockImager{Err: errors.New("quota")}, nil).Mascot(context.Background(), MascotOptions{}))
	assert.Nil(t, NewWithBackends(nil, &llm.MockImager{Data: []byte("not an image")}, nil).Mascot(context.Background(), MascotOptions{}))
}

func TestRemoveWhiteBackground_ThresholdIsStrict(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{235, 255, 255, 255})
	img.SetNRGBA(1, 0, color.NRGBA{240, 240, 240, 128})

	RemoveWhiteBackground(img)
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(1, 0).A)
}

func TestWrapPCM_Header(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	wav := WrapPCM(pcm, 24000, 1)

	require.Len(t, wav, 44+len(pcm))
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[32:34]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])

	def := WrapPCM(nil, 0, 0)
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(def[24:28]))
}

func TestSpeak(t *testing.T) {
	speaker := &llm.MockSpeaker{Audio: []byte{9, 9}}
	g := NewWithBackends(nil, nil, speaker)

	wav := g.Speak(context.Background(), "  She drinks milk.  ")
	require.NotNil(t, wav)
	assert.Equal(t, "RIFF", string(wav[:4]))
	require.Len(t, speaker.Texts, 1)
	assert.Equal(t, speechPrompt+"She drinks milk.", speaker.Texts[0])

	assert.Nil(t, g.Speak(context.Background(), "   "))
	assert.Nil(t, New(nil).Speak(context.Background(), "Hi"))
	assert.Nil(t, NewWithBackends(nil, nil, &llm.MockSpeaker{Err: errors.New("x")}).Speak(context.Background(), "Hi"))
}

func TestSpeak_UsesCache(t *testing.T) {
	cache, err := NewSpeechCache(t.TempDir())
	require.NoError(t, err)
	speaker := &llm.MockSpeaker{Audio: []byte{1, 0}}
	g := NewWithBackends(nil, nil, speaker, WithSpeechCache(cache))

	first := g.Speak(context.Background(), "I am baking.")
	second := g.Speak(context.Background(), "I am baking.")
	assert.Equal(t, first, second)
	assert.Len(t, speaker.Texts, 1)

	// Cached audio is served even without a backend.
	offline := NewWithBackends(nil, nil, nil, WithSpeechCache(cache))
	assert.Equal(t, first, offline.Speak(context.Background(), "I am baking."))
}

type recordingPlayer struct {
	mu     sync.Mutex
	played [][]byte
	done   chan struct{}
}

func (p *recordingPlayer) Play(_ context.Context, wav []byte) error {
	p.mu.Lock()
	p.played = append(p.played, wav)
	p.mu.Unlock()
	if p.done != nil {
		close(p.done)
	}
	return nil
}

func TestSpeakAndPlay(t *testing.T) {
	player := &recordingPlayer{}
	g := NewWithBackends(nil, nil, &llm.MockSpeaker{Audio: []byte{1, 0}}, WithPlayer(player))

	require.NoError(t, g.SpeakAndPlay(context.Background(), "Hello"))
	assert.Len(t, player.played, 1)

	assert.ErrorIs(t, New(nil, WithPlayer(player)).SpeakAndPlay(context.Background(), "Hello"), ErrNoAudio)
	assert.ErrorIs(t, NewWithBackends(nil, nil, nil, WithPlayer(nil)).Play(context.Background(), []byte{1}), ErrNoPlayer)
}

func TestAsyncHelpers(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("async reply"))
	player := &recordingPlayer{done: make(chan struct{})}
	g := NewWithBackends(mock, &llm.MockImager{Err: errors.New("no")}, &llm.MockSpeaker{Audio: []byte{1, 0}}, WithPlayer(player))

	replies := make(chan string, 1)
	g.ChatAsync(context.Background(), ChannelTutor, "hi", nil, func(s string) { replies <- s })

	images := make(chan *Image, 1)
	g.MascotAsync(context.Background(), MascotOptions{}, func(img *Image) { images <- img })

	g.SpeakAsync(context.Background(), "She drinks milk.")

	select {
	case r := <-replies:
		assert.Equal(t, "async reply", r)
	case <-time.After(2 * time.Second):
		t.Fatal("chat reply not delivered")
	}
	select {
	case img := <-images:
		assert.Nil(t, img)
	case <-time.After(2 * time.Second):
		t.Fatal("mascot result not delivered")
	}
	select {
	case <-player.done:
	case <-time.After(2 * time.Second):
		t.Fatal("speech not played")
	}
}

func TestAsync_RecoversPanic(t *testing.T) {
	delivered := make(chan int, 1)
	Async(context.Background(), func(context.Context) int { panic("boom") }, func(v int) { delivered <- v })
	Async(context.Background(), func(context.Context) int { return 7 }, func(v int) { delivered <- v })

	select {
	case v := <-delivered:
		assert.Equal(t, 7, v)
	case <-time.After(2 * time.Second):
		t.Fatal("value not delivered")
	}
}

func TestCapabilities(t *testing.T) {
	assert.Equal(t, Capabilities{}, New(nil).Capabilities())
	g := NewWithBackends(llm.NewMockProvider(), nil, &llm.MockSpeaker{})
	assert.Equal(t, Capabilities{Chat: true, Speech: true, Practice: true}, g.Capabilities())
}
