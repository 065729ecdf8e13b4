// Package profile manages formatting profiles: named configurations that
// decide whether and how a transcript is reformatted before clipboard
// delivery. The state machine references profiles only by ID; this
// package owns the actual data and the active selection.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Profile selects how a transcript is treated after transcription.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Prompt is the system prompt applied by the formatting stage.
	// Ignored when SkipFormatting is set.
	Prompt string `json:"prompt,omitempty"`

	// SkipFormatting delivers the raw transcript straight to the
	// clipboard, bypassing the formatting stage entirely.
	SkipFormatting bool `json:"skipFormatting,omitempty"`
}

// Validate checks a profile before it is saved. The profile editor
// surfaces failures as a ProfileValidationError event.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile ID cannot be empty")
	}

	if strings.ContainsAny(p.ID, " /\\") {
		return fmt.Errorf("profile ID %q must not contain spaces or path separators", p.ID)
	}

	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name cannot be empty")
	}

	if !p.SkipFormatting && strings.TrimSpace(p.Prompt) == "" {
		return errors.New("formatting profiles require a prompt")
	}

	return nil
}

// Defaults returns the built-in profiles seeded on first run.
func Defaults() []Profile {
	return []Profile{
		{
			ID:   "default",
			Name: "Default",
			Prompt: "Clean up this dictated text. Fix punctuation, capitalization, " +
				"and obvious transcription errors. Remove filler words. Preserve the " +
				"speaker's meaning and tone. Return only the cleaned text.",
		},
		{
			ID:             "raw",
			Name:           "Raw transcript",
			SkipFormatting: true,
		},
	}
}
