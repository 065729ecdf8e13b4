// Package state implements the application orchestration state machine:
// the single authority for what the app is doing at any instant, which
// events are legal next, and the payload needed to resume, retry, or
// recover across asynchronous stage boundaries.
package state

import (
	"fmt"
	"time"
)

// AppState is the closed set of application states. Each variant carries
// the minimum payload needed to act on or recover from its stage. The
// unexported marker method keeps the set sealed so that adding a state
// forces a review of the transition table and every derived view.
type AppState interface {
	fmt.Stringer
	appState()
}

// Idle is the resting state between dictations.
type Idle struct {
	MainWindowVisible bool
}

// Recording means the audio collaborator has an active capture session.
type Recording struct {
	StartedAt time.Time
}

// ProcessingTranscription is waiting on the transcription collaborator
// for the recording at RecordingPath.
type ProcessingTranscription struct {
	RecordingPath string
	StartedAt     time.Time
}

// ProcessingGPTFormatting is waiting on the formatting collaborator.
// OriginalTranscript is always the untouched transcription output.
type ProcessingGPTFormatting struct {
	OriginalTranscript string
	ProfileID          string
	StartedAt          time.Time
}

// ProcessingClipboard is waiting on the clipboard collaborator to write
// Text. OriginalTranscript is carried through so a post-hoc reformat
// stays possible after completion.
type ProcessingClipboard struct {
	OriginalTranscript string
	Text               string
	StartedAt          time.Time
}

// ProcessingComplete is the terminal success state. It retains everything
// needed to either start fresh or reformat with a different profile.
type ProcessingComplete struct {
	OriginalTranscript string
	FinalText          string
	// ProfileID is empty when the final text was not produced by a
	// formatting profile.
	ProfileID   string
	CompletedAt time.Time
}

// SettingsWindowOpen wraps, by value, the exact state that was active
// before the settings window opened. Closing settings restores it
// unchanged, however deeply contexts end up nested.
type SettingsWindowOpen struct {
	Previous AppState
}

// NewProfileEditorOpen wraps the settings context it was opened from.
type NewProfileEditorOpen struct {
	Settings SettingsWindowOpen
}

// EditProfileEditorOpen wraps the settings context it was opened from,
// plus the identity of the profile being edited.
type EditProfileEditorOpen struct {
	ProfileID string
	Settings  SettingsWindowOpen
}

// TranscriptionFailed is entered when the transcription stage reports an
// error. It is permanent until acknowledged and keeps the recording path
// so the stage could in principle be replayed.
type TranscriptionFailed struct {
	Err               string
	RecordingPath     string
	MainWindowVisible bool
}

// GPTFormattingFailed is entered when the formatting stage reports an
// error. Transcript is the untouched original.
type GPTFormattingFailed struct {
	Err               string
	Transcript        string
	MainWindowVisible bool
}

// ClipboardFailed is entered when the clipboard write fails.
type ClipboardFailed struct {
	Err               string
	Text              string
	MainWindowVisible bool
}

// ProfileValidationFailed is entered when a profile editor reports that
// the edited profile did not validate.
type ProfileValidationFailed struct {
	Err               string
	MainWindowVisible bool
}

func (Idle) appState()                    {}
func (Recording) appState()               {}
func (ProcessingTranscription) appState() {}
func (ProcessingGPTFormatting) appState() {}
func (ProcessingClipboard) appState()     {}
func (ProcessingComplete) appState()      {}
func (SettingsWindowOpen) appState()      {}
func (NewProfileEditorOpen) appState()    {}
func (EditProfileEditorOpen) appState()   {}
func (TranscriptionFailed) appState()     {}
func (GPTFormattingFailed) appState()     {}
func (ClipboardFailed) appState()         {}
func (ProfileValidationFailed) appState() {}

func (s Idle) String() string {
	return fmt.Sprintf("Idle(visible=%t)", s.MainWindowVisible)
}

func (Recording) String() string { return "Recording" }

func (ProcessingTranscription) String() string { return "ProcessingTranscription" }

func (s ProcessingGPTFormatting) String() string {
	return fmt.Sprintf("ProcessingGPTFormatting(profile=%s)", s.ProfileID)
}

func (ProcessingClipboard) String() string { return "ProcessingClipboard" }

func (ProcessingComplete) String() string { return "ProcessingComplete" }

func (s SettingsWindowOpen) String() string {
	return fmt.Sprintf("SettingsWindowOpen(%s)", s.Previous)
}

func (s NewProfileEditorOpen) String() string {
	return fmt.Sprintf("NewProfileEditorOpen(%s)", s.Settings)
}

func (s EditProfileEditorOpen) String() string {
	return fmt.Sprintf("EditProfileEditorOpen(profile=%s, %s)", s.ProfileID, s.Settings)
}

func (TranscriptionFailed) String() string { return "TranscriptionFailed" }

func (GPTFormattingFailed) String() string { return "GPTFormattingFailed" }

func (ClipboardFailed) String() string { return "ClipboardFailed" }

func (ProfileValidationFailed) String() string { return "ProfileValidationFailed" }
