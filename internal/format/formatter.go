// Package format reformats transcripts through the Anthropic API using a
// profile's prompt.
package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Formatter rewrites a transcript according to a profile prompt. The
// pipeline depends on this interface so tests can substitute a mock.
type Formatter interface {
	Format(ctx context.Context, transcript, prompt string) (string, error)
}

// Client handles Anthropic API requests for transcript formatting.
type Client struct {
	apiKey string
	model  anthropic.Model
}

// NewClient creates a new formatting client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  anthropic.ModelClaudeSonnet4_5_20250929,
	}
}

// Format applies the profile prompt to the transcript and returns the
// reformatted text. The transcript itself is never modified; downstream
// stages always keep the original.
func (c *Client) Format(ctx context.Context, transcript, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("API key required: set ANTHROPIC_API_KEY or run 'dictate config set-key anthropic'")
	}

	client := anthropic.NewClient(option.WithAPIKey(c.apiKey))

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: prompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(transcript)),
		},
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to format transcript via Anthropic API: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("empty response from Anthropic API")
	}

	textBlock, ok := resp.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", errors.New("unexpected response type from Anthropic API")
	}

	return textBlock.Text, nil
}
