package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/healthsense/healthsense/internal/alerts"
)

// User-facing fallback texts shown in place of AI output when a call cannot
// be made or fails. Quota failures get a distinguishable message.
const (
	FallbackNoData         = "Add some vitals or measures to get your AI summary."
	FallbackQuota          = "AI analysis is currently unavailable due to high traffic. Please try again in a moment."
	FallbackGeneric        = "Could not load AI summary at the moment."
	FallbackChat           = "I encountered an error. Please try again."
	FallbackInterpretation = "AI analysis could not be generated for this metric."
)

// FallbackMessage maps a summary failure to its user-facing replacement text.
func FallbackMessage(err error) string {
	if IsQuotaError(err) {
		return FallbackQuota
	}
	return FallbackGeneric
}

// SummaryResult is the outcome of a streamed dashboard summary
type SummaryResult struct {
	Summary  string            // user-facing text, EmergencyTag stripped
	Critical bool              // summary carried the EmergencyTag
	Alerts   []alerts.Incoming // extracted from the post-separator payload
}

// StreamSummary analyzes the formatted metrics line and streams the summary
// text through onDelta as it arrives. The text after the separator token is
// collected silently and decoded into alerts when the stream completes.
//
// metricsLine must be non-empty (see SummaryInput); callers treat an empty
// line as "insufficient data" and skip the call entirely. onDelta may be
// nil. Deltas stop at teardown: a caller that has abandoned the summary
// must cancel ctx rather than keep consuming callbacks.
func (c *Client) StreamSummary(ctx context.Context, metricsLine string, onDelta func(string)) (*SummaryResult, error) {
	if strings.TrimSpace(metricsLine) == "" {
		return nil, fmt.Errorf("no metrics to analyze")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("summary throttled: %w", err)
	}
	if c.concurrencySem != nil {
		if err := c.concurrencySem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("failed to acquire concurrency slot: %w", err)
		}
		defer c.concurrencySem.Release(1)
	}
	if c.circuitBreaker != nil {
		if err := c.circuitBreaker.Allow(); err != nil {
			return nil, fmt.Errorf("summary blocked: %w", err)
		}
	}

	prompt := fmt.Sprintf("Analyze these health metrics: %s.", metricsLine)

	stream := c.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: summarySystemPrompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	var splitter StreamSplitter
	for stream.Next() {
		event := stream.Current()
		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if delta := splitter.Write(deltaVariant.Text); delta != "" && onDelta != nil {
					onDelta(delta)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		if c.circuitBreaker != nil && isRetriableError(err) {
			c.circuitBreaker.RecordFailure()
		}
		return nil, fmt.Errorf("summary stream failed: %w", err)
	}
	if c.circuitBreaker != nil {
		c.circuitBreaker.RecordSuccess()
	}

	summary, payload := splitter.Close()

	result := &SummaryResult{
		Summary: strings.TrimSpace(summary),
		Alerts:  ExtractAlerts(payload),
	}
	if strings.Contains(result.Summary, EmergencyTag) {
		result.Critical = true
		result.Summary = strings.TrimSpace(strings.ReplaceAll(result.Summary, EmergencyTag, ""))
	}
	return result, nil
}
