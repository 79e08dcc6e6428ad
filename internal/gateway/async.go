package gateway

import (
	"context"
	"fmt"
	"os"

	"github.com/tensebunny/tensebunny/internal/llm"
)

// Async runs fn on its own goroutine and hands the result to deliver.
// A panic inside fn is reported to stderr and deliver is not called.
func Async[T any](ctx context.Context, fn func(context.Context) T, deliver func(T)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "warning: background AI task panicked: %v\n", r)
			}
		}()
		v := fn(ctx)
		if deliver != nil {
			deliver(v)
		}
	}()
}

// ChatAsync answers on a channel in the background.
func (g *Gateway) ChatAsync(ctx context.Context, ch Channel, msg string, history []llm.Message, deliver func(string)) {
	history = append([]llm.Message(nil), history...)
	Async(ctx, func(ctx context.Context) string {
		return g.Chat(ctx, ch, msg, history)
	}, deliver)
}

// MascotAsync generates the mascot in the background. deliver receives
// nil on failure.
func (g *Gateway) MascotAsync(ctx context.Context, opts MascotOptions, deliver func(*Image)) {
	Async(ctx, func(ctx context.Context) *Image {
		return g.Mascot(ctx, opts)
	}, deliver)
}

// SpeakAsync speaks a sentence in the background and discards failures.
func (g *Gateway) SpeakAsync(ctx context.Context, sentence string) {
	Async(ctx, func(ctx context.Context) error {
		return g.SpeakAndPlay(ctx, sentence)
	}, nil)
}
