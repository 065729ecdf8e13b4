// Package transcribe sends finished recordings to the Whisper API.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Transcriber converts recorded audio into text. The pipeline depends on
// this interface so tests can substitute a mock.
type Transcriber interface {
	TranscribeFile(ctx context.Context, audioFile io.Reader) (string, error)
}

// Client handles Whisper API transcription requests.
type Client struct {
	apiKey string
}

// NewClient creates a new transcription client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
	}
}

// TranscribeFile transcribes an audio file using Whisper API.
func (c *Client) TranscribeFile(ctx context.Context, audioFile io.Reader) (string, error) {
	// Validate API key
	if c.apiKey == "" {
		return "", errors.New("API key required: set OPENAI_API_KEY or run 'dictate config set-key openai'")
	}

	client := openai.NewClient(option.WithAPIKey(c.apiKey))

	params := openai.AudioTranscriptionNewParams{
		File:  audioFile,
		Model: openai.AudioModelWhisper1,
	}

	resp, err := client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription via Whisper API: %w", err)
	}

	return resp.Text, nil
}
