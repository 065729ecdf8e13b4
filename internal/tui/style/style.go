// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// UI styles using lipgloss.
// These are package-level for convenience; lipgloss styles are value types
// and safe for concurrent use.
var (
	// Title is used for the application header.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Subtitle is used for secondary text.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Recording is used for the live capture indicator.
	Recording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// Success is used for completed dictations.
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// Error is used for error messages.
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Transcript is used for the final text panel border.
	Transcript = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	// Modal is used for the settings and editor overlays.
	Modal = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2)

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Key is used for highlighting keyboard keys.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Waveform is used for the amplitude bars.
	Waveform = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	// Selected is used for the highlighted row in lists.
	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	// Active marks the active profile in lists.
	Active = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// Muted is used for de-emphasized text.
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	// StepDone marks completed pipeline stages.
	StepDone = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// StepCurrent marks the running pipeline stage.
	StepCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	// StepPending marks pipeline stages not yet reached.
	StepPending = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
