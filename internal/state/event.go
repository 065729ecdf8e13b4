package state

import "fmt"

// AppEvent is the closed set of events that can drive a transition.
// Events carry only the data produced by the stage or UI action that
// raises them.
type AppEvent interface {
	fmt.Stringer
	appEvent()
}

// StartRecording begins a new capture session.
type StartRecording struct{}

// StopRecording ends the capture session. RecordingPath is the finished
// recording's location, supplied by the audio collaborator.
type StopRecording struct {
	RecordingPath string
}

// CancelRecording discards an in-progress capture without entering the
// pipeline.
type CancelRecording struct{}

// ShowMainWindow and HideMainWindow are raised by the window/tray
// collaborator.
type ShowMainWindow struct{}

type HideMainWindow struct{}

type OpenSettingsWindow struct{}

type CloseSettingsWindow struct{}

// StartNewProfile opens the profile editor for a new profile.
type StartNewProfile struct{}

// StartEditProfile opens the profile editor for an existing profile.
type StartEditProfile struct {
	ProfileID string
}

// SaveProfile is raised by the editor after it has applied the save.
type SaveProfile struct {
	ProfileID string
}

// CancelProfileEdit abandons the editor without side effects.
type CancelProfileEdit struct{}

// DeleteProfile is raised by the editor after it has applied the delete.
type DeleteProfile struct {
	ProfileID string
}

// SelectProfile switches the active profile. The machine accepts it as a
// no-op; the profile manager tracks the actual switch.
type SelectProfile struct {
	ProfileID string
}

// TranscriptionComplete carries the raw transcript from the
// transcription collaborator.
type TranscriptionComplete struct {
	Transcript string
}

// SkipFormattingToClipboard bypasses the formatting stage, for profiles
// that deliver the raw transcript.
type SkipFormattingToClipboard struct {
	Transcript string
}

type TranscriptionError struct {
	Err string
}

// GPTFormattingComplete carries the reformatted text.
type GPTFormattingComplete struct {
	FormattedText string
}

type GPTFormattingError struct {
	Err string
}

type ClipboardCopyComplete struct{}

type ClipboardError struct {
	Err string
}

// ReformatWithProfile replays the preserved original transcript through a
// new formatting stage. It never re-records or re-transcribes.
type ReformatWithProfile struct {
	ProfileID string
}

// ProfileValidationError is raised by a profile editor when the edited
// profile fails validation.
type ProfileValidationError struct {
	Err string
}

// Reset is the unconditional escape hatch, legal from any state.
type Reset struct{}

// AcknowledgeError dismisses an error state, discarding its payload.
type AcknowledgeError struct{}

func (StartRecording) appEvent()            {}
func (StopRecording) appEvent()             {}
func (CancelRecording) appEvent()           {}
func (ShowMainWindow) appEvent()            {}
func (HideMainWindow) appEvent()            {}
func (OpenSettingsWindow) appEvent()        {}
func (CloseSettingsWindow) appEvent()       {}
func (StartNewProfile) appEvent()           {}
func (StartEditProfile) appEvent()          {}
func (SaveProfile) appEvent()               {}
func (CancelProfileEdit) appEvent()         {}
func (DeleteProfile) appEvent()             {}
func (SelectProfile) appEvent()             {}
func (TranscriptionComplete) appEvent()     {}
func (SkipFormattingToClipboard) appEvent() {}
func (TranscriptionError) appEvent()        {}
func (GPTFormattingComplete) appEvent()     {}
func (GPTFormattingError) appEvent()        {}
func (ClipboardCopyComplete) appEvent()     {}
func (ClipboardError) appEvent()            {}
func (ReformatWithProfile) appEvent()       {}
func (ProfileValidationError) appEvent()    {}
func (Reset) appEvent()                     {}
func (AcknowledgeError) appEvent()          {}

func (StartRecording) String() string      { return "StartRecording" }
func (StopRecording) String() string       { return "StopRecording" }
func (CancelRecording) String() string     { return "CancelRecording" }
func (ShowMainWindow) String() string      { return "ShowMainWindow" }
func (HideMainWindow) String() string      { return "HideMainWindow" }
func (OpenSettingsWindow) String() string  { return "OpenSettingsWindow" }
func (CloseSettingsWindow) String() string { return "CloseSettingsWindow" }
func (StartNewProfile) String() string     { return "StartNewProfile" }

func (e StartEditProfile) String() string {
	return fmt.Sprintf("StartEditProfile(%s)", e.ProfileID)
}

func (e SaveProfile) String() string { return fmt.Sprintf("SaveProfile(%s)", e.ProfileID) }

func (CancelProfileEdit) String() string { return "CancelProfileEdit" }

func (e DeleteProfile) String() string { return fmt.Sprintf("DeleteProfile(%s)", e.ProfileID) }

func (e SelectProfile) String() string { return fmt.Sprintf("SelectProfile(%s)", e.ProfileID) }

func (TranscriptionComplete) String() string     { return "TranscriptionComplete" }
func (SkipFormattingToClipboard) String() string { return "SkipFormattingToClipboard" }
func (TranscriptionError) String() string        { return "TranscriptionError" }
func (GPTFormattingComplete) String() string     { return "GPTFormattingComplete" }
func (GPTFormattingError) String() string        { return "GPTFormattingError" }
func (ClipboardCopyComplete) String() string     { return "ClipboardCopyComplete" }
func (ClipboardError) String() string            { return "ClipboardError" }

func (e ReformatWithProfile) String() string {
	return fmt.Sprintf("ReformatWithProfile(%s)", e.ProfileID)
}

func (ProfileValidationError) String() string { return "ProfileValidationError" }
func (Reset) String() string                  { return "Reset" }
func (AcknowledgeError) String() string       { return "AcknowledgeError" }
