package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// Interpret asks the model for a short clinical-style interpretation of one
// metric's recent history, for use in exported reports. It uses the light
// model: report generation fans out over every tracked metric and the
// sections are short, so latency and cost matter more than depth here.
func (c *Client) Interpret(ctx context.Context, metric string, isVital bool, weeklyValues, monthlyValues []float64) (string, error) {
	prompt := interpretPrompt(metric, isVital, weeklyValues, monthlyValues)

	var text string
	err := c.retryWithBackoff(ctx, fmt.Sprintf("interpret %s", metric), func(ctx context.Context) error {
		message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.lightModel),
			MaxTokens: 300,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return err
		}

		var b strings.Builder
		for _, block := range message.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				b.WriteString(variant.Text)
			}
		}
		text = strings.TrimSpace(b.String())
		if text == "" {
			return fmt.Errorf("empty interpretation for %s", metric)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
