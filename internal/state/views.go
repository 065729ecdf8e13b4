package state

// Derived views are pure, total queries over the current state. Every
// other component asks these instead of re-deriving policy from state
// payloads. Each switch lists every variant explicitly so a new state
// cannot silently inherit a policy.

// Flags is the structured snapshot of all derived views attached to each
// change notification.
type Flags struct {
	Recording         bool `json:"recording"`
	Processing        bool `json:"processing"`
	MainWindowVisible bool `json:"mainWindowVisible"`
	ModalWindowOpen   bool `json:"modalWindowOpen"`
}

// Snapshot evaluates all derived views against one state.
func Snapshot(s AppState) Flags {
	return Flags{
		Recording:         IsRecording(s),
		Processing:        IsProcessing(s),
		MainWindowVisible: IsMainWindowVisible(s),
		ModalWindowOpen:   HasModalWindowOpen(s),
	}
}

// IsRecording reports whether an active capture session exists.
func IsRecording(s AppState) bool {
	_, ok := s.(Recording)
	return ok
}

// IsProcessing reports whether a pipeline stage is in flight. The
// terminal ProcessingComplete state does not count.
func IsProcessing(s AppState) bool {
	switch s.(type) {
	case ProcessingTranscription, ProcessingGPTFormatting, ProcessingClipboard:
		return true
	default:
		return false
	}
}

// IsMainWindowVisible reports whether the main window should be shown.
// Recording and every processing state force visibility so work in
// flight is never hidden; states that store a flag return it; the
// settings wrapper defers to the state it wraps.
func IsMainWindowVisible(s AppState) bool {
	switch st := s.(type) {
	case Idle:
		return st.MainWindowVisible
	case Recording:
		return true
	case ProcessingTranscription, ProcessingGPTFormatting, ProcessingClipboard, ProcessingComplete:
		return true
	case SettingsWindowOpen:
		return IsMainWindowVisible(st.Previous)
	case NewProfileEditorOpen, EditProfileEditorOpen:
		return true
	case TranscriptionFailed:
		return st.MainWindowVisible
	case GPTFormattingFailed:
		return st.MainWindowVisible
	case ClipboardFailed:
		return st.MainWindowVisible
	case ProfileValidationFailed:
		return st.MainWindowVisible
	default:
		return true
	}
}

// HasModalWindowOpen reports whether a settings or profile-editor context
// is active.
func HasModalWindowOpen(s AppState) bool {
	switch s.(type) {
	case SettingsWindowOpen, NewProfileEditorOpen, EditProfileEditorOpen:
		return true
	default:
		return false
	}
}
