package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/tensebunny/tensebunny/internal/llm"
)

// Channel selects which assistant answers a chat message.
type Channel string

const (
	ChannelTutor   Channel = "tutor"
	ChannelSupport Channel = "support"
)

// ParseChannel validates a channel name.
func ParseChannel(s string) (Channel, error) {
	switch c := Channel(strings.ToLower(strings.TrimSpace(s))); c {
	case ChannelTutor, ChannelSupport:
		return c, nil
	}
	return "", fmt.Errorf("unknown chat channel %q", s)
}

// Fallback replies shown when a channel cannot answer.
const (
	TutorEmptyReply   = "I'm sorry, I'm having a little trouble thinking right now. Let's try again!"
	TutorErrorReply   = "Oops! My circuits got crossed. Can you please repeat that?"
	SupportEmptyReply = "I'm here to help with any technical issues! Please try describing the problem again."
	SupportErrorReply = "I am currently experiencing connection issues with the support server. Please refresh your browser."
)

// Greetings open each chat window.
const (
	TutorGreeting   = "Hi! I'm Tense Bunny's GrammarBot 🐰 Ask me anything about the 12 English tenses!"
	SupportGreeting = "Hello! 🛠️ I'm the TenseBunny Technical Assistant. Tell me what went wrong and I'll help you fix it."
)

const tutorPrompt = `You are GrammarBot, a friendly and supportive AI English tutor for the app TenseBunny. Your goal is to help students master the 12 English tenses. Keep your tone encouraging and your explanations simple. Use emojis. If a user asks about a specific tense, provide the structure and a clear example.`

const supportPrompt = `You are the TenseBunny Technical Assistant. You help users with bugs and app issues.
Context about the app:
- Games available: Tense Sniper, Verb Garden, Time Machine, Error Quest, MatchMaker, Sentence Builder, Tense Runner.
- Points system: 100 XP per level. Progress is saved on this device.
- Bug troubleshooting:
  1. If the score isn't showing, suggest restarting the app.
  2. If a game seems stuck, make sure every question was answered.
  3. If the ranking is empty, they need to finish the Post-Test (Final Exam).
Speak in a friendly, helpful tech-support tone. Use emojis. If you can't solve it, ask them to describe the bug in detail.`

type channelSpec struct {
	system  string
	purpose string
	empty   string
	failed  string
}

var channels = map[Channel]channelSpec{
	ChannelTutor:   {tutorPrompt, PurposeTutor, TutorEmptyReply, TutorErrorReply},
	ChannelSupport: {supportPrompt, PurposeSupport, SupportEmptyReply, SupportErrorReply},
}

// Greeting returns the opening line of a channel.
func Greeting(c Channel) string {
	if c == ChannelSupport {
		return SupportGreeting
	}
	return TutorGreeting
}

// Tutor answers a grammar question. history holds earlier turns, oldest
// first, and does not include msg.
func (g *Gateway) Tutor(ctx context.Context, msg string, history []llm.Message) string {
	return g.Chat(ctx, ChannelTutor, msg, history)
}

// Support answers a technical question about the app.
func (g *Gateway) Support(ctx context.Context, msg string, history []llm.Message) string {
	return g.Chat(ctx, ChannelSupport, msg, history)
}

// Chat sends msg on the given channel and always returns displayable text.
func (g *Gateway) Chat(ctx context.Context, ch Channel, msg string, history []llm.Message) string {
	spec, ok := channels[ch]
	if !ok {
		spec = channels[ChannelTutor]
	}
	if g == nil || g.text == nil {
		return spec.failed
	}

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: msg})

	ctx, cancel := g.withTimeout(ctx, spec.purpose, g.textTimeout)
	defer cancel()

	resp, err := g.text.Generate(ctx, llm.Request{
		System:    spec.system,
		Messages:  msgs,
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		return spec.failed
	}
	if text := resp.Text(); text != "" {
		return text
	}
	return spec.empty
}
