package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/dictate/internal/state"
	"github.com/alkime/dictate/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

// View renders the screen for the current machine state.
//
//nolint:cyclop // one branch per screen
func (m Model) View() string {
	var body string

	switch st := m.current.(type) {
	case state.Idle:
		body = m.viewIdle(st)
	case state.Recording:
		body = m.viewRecording()
	case state.ProcessingTranscription:
		body = m.viewProcessing(0, "Transcribing with Whisper")
	case state.ProcessingGPTFormatting:
		body = m.viewProcessing(1, "Formatting with profile "+st.ProfileID)
	case state.ProcessingClipboard:
		body = m.viewProcessing(2, "Copying to clipboard")
	case state.ProcessingComplete:
		body = m.viewComplete(st)
	case state.SettingsWindowOpen:
		body = m.settings.view(m.keys)
	case state.NewProfileEditorOpen, state.EditProfileEditorOpen:
		body = m.editor.view(m.keys)
	case state.TranscriptionFailed:
		body = m.viewError("Transcription failed", st.Err)
	case state.GPTFormattingFailed:
		body = m.viewError("Formatting failed", st.Err)
	case state.ClipboardFailed:
		body = m.viewError("Clipboard copy failed", st.Err)
	case state.ProfileValidationFailed:
		body = m.viewError("Profile is invalid", st.Err)
	}

	var sb strings.Builder

	sb.WriteString(style.Title.Render("Dictate"))
	sb.WriteString("  ")
	sb.WriteString(style.Muted.Render("profile: " + m.profiles.Active()))
	sb.WriteString("\n\n")
	sb.WriteString(body)

	if m.notice != "" {
		sb.WriteString("\n\n")
		sb.WriteString(style.Muted.Render(m.notice))
	}

	return sb.String()
}

func (m Model) viewIdle(st state.Idle) string {
	var sb strings.Builder

	if !st.MainWindowVisible {
		return style.Muted.Render("Window hidden. Recording hotkeys stay active.") +
			"\n\n" + helpLine(m.keys.ToggleWindow)
	}

	sb.WriteString(style.Subtitle.Render("Ready to dictate."))
	sb.WriteString("\n\n")
	sb.WriteString(helpLine(m.keys.Toggle, m.keys.CycleProfile, m.keys.Settings, m.keys.ToggleWindow, m.keys.Quit))

	return sb.String()
}

func (m Model) viewRecording() string {
	var sb strings.Builder

	elapsed := m.ctrl.RecordingElapsed().Round(time.Second)

	sb.WriteString(style.Recording.Render("● REC"))
	sb.WriteString("  ")
	sb.WriteString(style.Subtitle.Render(elapsed.String()))
	sb.WriteString("\n\n")
	sb.WriteString(m.wave.View())
	sb.WriteString("\n\n")
	sb.WriteString(helpLine(m.keys.Toggle, m.keys.Cancel, m.keys.Settings))

	return sb.String()
}

func (m Model) viewProcessing(stage int, subtitle string) string {
	var sb strings.Builder

	sb.WriteString(m.trail.WithCurrent(stage).View())
	sb.WriteString("\n\n")
	sb.WriteString(m.spin.ViewWithSubtitle(subtitle))

	return sb.String()
}

func (m Model) viewComplete(st state.ProcessingComplete) string {
	var sb strings.Builder

	sb.WriteString(m.trail.WithAllDone().View())
	sb.WriteString("\n\n")
	sb.WriteString(style.Success.Render("Copied to clipboard."))
	sb.WriteString("\n\n")
	sb.WriteString(style.Transcript.Render(st.FinalText))
	sb.WriteString("\n\n")
	sb.WriteString(helpLine(m.keys.Toggle, m.keys.Reformat, m.keys.Settings, m.keys.Quit))

	return sb.String()
}

func (m Model) viewError(title, detail string) string {
	var sb strings.Builder

	sb.WriteString(style.Error.Render(title))
	sb.WriteString("\n")
	sb.WriteString(style.Muted.Render(detail))
	sb.WriteString("\n\n")
	sb.WriteString(helpLine(m.keys.Acknowledge, m.keys.Reset, m.keys.Quit))

	return sb.String()
}

// helpLine renders key hints as "key action" pairs separated by dots.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))

	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s",
			style.Key.Render(h.Key),
			style.Help.Render(h.Desc)))
	}

	return strings.Join(parts, style.Help.Render(" · "))
}
