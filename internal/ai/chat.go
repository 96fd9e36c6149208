package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/healthsense/healthsense/internal/types"
)

// ChatSession holds a multi-turn conversation with the health assistant.
// The user's vitals context is pinned into the system prompt at session
// start; turns accumulate so the model sees the full exchange.
//
// ChatSession is not safe for concurrent use. One session serves one user.
type ChatSession struct {
	client   *Client
	system   string
	history  []anthropic.MessageParam
	messages []types.ChatMessage
}

// NewChatSession starts a conversation seeded with the user's name and
// current health context. The greeting is generated locally, not by the
// model, so an empty session renders instantly.
func (c *Client) NewChatSession(userName, healthContext string) *ChatSession {
	s := &ChatSession{
		client: c,
		system: chatSystemPrompt(userName, healthContext),
	}
	s.messages = append(s.messages, types.ChatMessage{
		Sender: types.SenderAI,
		Text:   Greeting(userName),
	})
	return s
}

// Greeting is the canned opening message for a chat session.
func Greeting(userName string) string {
	name := strings.TrimSpace(userName)
	if name == "" {
		return "Hello! I'm your personal health assistant. How can I help you today?"
	}
	return fmt.Sprintf("Hello %s! I'm your personal health assistant. How can I help you today?", name)
}

// Messages returns a copy of the rendered transcript, greeting included.
func (s *ChatSession) Messages() []types.ChatMessage {
	out := make([]types.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send submits a user turn and streams the assistant's reply through
// onDelta. The completed reply is appended to the transcript and returned.
// On failure the transcript gets a fallback message instead, and the user
// turn stays recorded so the exchange reads coherently.
func (s *ChatSession) Send(ctx context.Context, text string, onDelta func(string)) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty message")
	}

	s.messages = append(s.messages, types.ChatMessage{Sender: types.SenderUser, Text: text})
	s.history = append(s.history, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))

	reply, err := s.stream(ctx, onDelta)
	if err != nil {
		// Keep history consistent: the failed turn gets a fallback reply
		// locally but is not replayed to the model as assistant output.
		s.history = s.history[:len(s.history)-1]
		fallback := FallbackChat
		if IsQuotaError(err) {
			fallback = FallbackQuota
		}
		s.messages = append(s.messages, types.ChatMessage{Sender: types.SenderAI, Text: fallback})
		return fallback, err
	}

	s.messages = append(s.messages, types.ChatMessage{Sender: types.SenderAI, Text: reply})
	s.history = append(s.history, anthropic.NewAssistantMessage(anthropic.NewTextBlock(reply)))
	return reply, nil
}

func (s *ChatSession) stream(ctx context.Context, onDelta func(string)) (string, error) {
	c := s.client

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("chat throttled: %w", err)
	}
	if c.concurrencySem != nil {
		if err := c.concurrencySem.Acquire(ctx, 1); err != nil {
			return "", fmt.Errorf("failed to acquire concurrency slot: %w", err)
		}
		defer c.concurrencySem.Release(1)
	}
	if c.circuitBreaker != nil {
		if err := c.circuitBreaker.Allow(); err != nil {
			return "", fmt.Errorf("chat blocked: %w", err)
		}
	}

	stream := c.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: s.system},
		},
		Messages: s.history,
	})

	var reply strings.Builder
	for stream.Next() {
		event := stream.Current()
		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				reply.WriteString(deltaVariant.Text)
				if onDelta != nil {
					onDelta(deltaVariant.Text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		if c.circuitBreaker != nil && isRetriableError(err) {
			c.circuitBreaker.RecordFailure()
		}
		return "", fmt.Errorf("chat stream failed: %w", err)
	}
	if c.circuitBreaker != nil {
		c.circuitBreaker.RecordSuccess()
	}
	return reply.String(), nil
}
