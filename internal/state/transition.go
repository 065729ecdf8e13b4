package state

import (
	"fmt"
	"time"
)

// Inputs carries the caller-supplied values some transition rules need
// but the machine does not own: the current time for stage timestamps and
// the active profile ID tracked by the profile manager.
type Inputs struct {
	Now             time.Time
	ActiveProfileID string
}

// InvalidTransitionError reports an event with no rule in the current
// state. It signals a caller ordering bug, never a stage failure; stage
// failures are ordinary transitions into an error state.
type InvalidTransitionError struct {
	From  AppState
	Event AppEvent
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s --(%s)--> ?", e.From, e.Event)
}

// Transition is the single transition function, total over every
// (state, event) pair. Pairs without a specific rule fall through to two
// universal rules: Reset always yields Idle with the window visible, and
// everything else is rejected with InvalidTransitionError. The same
// function serves the live machine and any headless harness.
func Transition(current AppState, event AppEvent, in Inputs) (AppState, error) {
	if _, ok := event.(Reset); ok {
		return Idle{MainWindowVisible: true}, nil
	}

	switch s := current.(type) {
	case Idle:
		switch event.(type) {
		case StartRecording:
			return Recording{StartedAt: in.Now}, nil
		case SelectProfile:
			// Accepted but a no-op here; the profile manager owns the
			// actual switch.
			return s, nil
		case ShowMainWindow:
			s.MainWindowVisible = true
			return s, nil
		case HideMainWindow:
			s.MainWindowVisible = false
			return s, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case Recording:
		switch ev := event.(type) {
		case StopRecording:
			return ProcessingTranscription{
				RecordingPath: ev.RecordingPath,
				StartedAt:     in.Now,
			}, nil
		case CancelRecording:
			return Idle{MainWindowVisible: true}, nil
		case SelectProfile:
			// Profile switching is ignored while recording. Callers rely
			// on this not being an error.
			return s, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case ProcessingTranscription:
		switch ev := event.(type) {
		case TranscriptionComplete:
			return ProcessingGPTFormatting{
				OriginalTranscript: ev.Transcript,
				ProfileID:          in.ActiveProfileID,
				StartedAt:          in.Now,
			}, nil
		case SkipFormattingToClipboard:
			return ProcessingClipboard{
				OriginalTranscript: ev.Transcript,
				Text:               ev.Transcript,
				StartedAt:          in.Now,
			}, nil
		case TranscriptionError:
			return TranscriptionFailed{
				Err:               ev.Err,
				RecordingPath:     s.RecordingPath,
				MainWindowVisible: true,
			}, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case ProcessingGPTFormatting:
		switch ev := event.(type) {
		case GPTFormattingComplete:
			return ProcessingClipboard{
				OriginalTranscript: s.OriginalTranscript,
				Text:               ev.FormattedText,
				StartedAt:          in.Now,
			}, nil
		case GPTFormattingError:
			return GPTFormattingFailed{
				Err:               ev.Err,
				Transcript:        s.OriginalTranscript,
				MainWindowVisible: true,
			}, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case ProcessingClipboard:
		switch ev := event.(type) {
		case ClipboardCopyComplete:
			return ProcessingComplete{
				OriginalTranscript: s.OriginalTranscript,
				FinalText:          s.Text,
				ProfileID:          "",
				CompletedAt:        in.Now,
			}, nil
		case ClipboardError:
			return ClipboardFailed{
				Err:               ev.Err,
				Text:              s.Text,
				MainWindowVisible: true,
			}, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case ProcessingComplete:
		switch ev := event.(type) {
		case StartRecording:
			return Recording{StartedAt: in.Now}, nil
		case ReformatWithProfile:
			// Key contract: reformatting replays the preserved original
			// transcript. It never re-records or re-transcribes.
			return ProcessingGPTFormatting{
				OriginalTranscript: s.OriginalTranscript,
				ProfileID:          ev.ProfileID,
				StartedAt:          in.Now,
			}, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case SettingsWindowOpen:
		switch ev := event.(type) {
		case CloseSettingsWindow:
			return s.Previous, nil
		case StartNewProfile:
			return NewProfileEditorOpen{Settings: s}, nil
		case StartEditProfile:
			return EditProfileEditorOpen{ProfileID: ev.ProfileID, Settings: s}, nil
		}

	case NewProfileEditorOpen:
		switch ev := event.(type) {
		case SaveProfile, CancelProfileEdit, DeleteProfile:
			// All three editor exits restore the wrapped settings context
			// identically; the editor applies side effects before raising
			// its event.
			return s.Settings, nil
		case ProfileValidationError:
			return ProfileValidationFailed{Err: ev.Err, MainWindowVisible: true}, nil
		}

	case EditProfileEditorOpen:
		switch ev := event.(type) {
		case SaveProfile, CancelProfileEdit, DeleteProfile:
			return s.Settings, nil
		case ProfileValidationError:
			return ProfileValidationFailed{Err: ev.Err, MainWindowVisible: true}, nil
		}

	case TranscriptionFailed:
		switch event.(type) {
		case AcknowledgeError:
			return Idle{MainWindowVisible: s.MainWindowVisible}, nil
		case ShowMainWindow:
			s.MainWindowVisible = true
			return s, nil
		case HideMainWindow:
			s.MainWindowVisible = false
			return s, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case GPTFormattingFailed:
		switch event.(type) {
		case AcknowledgeError:
			return Idle{MainWindowVisible: s.MainWindowVisible}, nil
		case ShowMainWindow:
			s.MainWindowVisible = true
			return s, nil
		case HideMainWindow:
			s.MainWindowVisible = false
			return s, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case ClipboardFailed:
		switch event.(type) {
		case AcknowledgeError:
			return Idle{MainWindowVisible: s.MainWindowVisible}, nil
		case ShowMainWindow:
			s.MainWindowVisible = true
			return s, nil
		case HideMainWindow:
			s.MainWindowVisible = false
			return s, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}

	case ProfileValidationFailed:
		switch event.(type) {
		case AcknowledgeError:
			return Idle{MainWindowVisible: s.MainWindowVisible}, nil
		case ShowMainWindow:
			s.MainWindowVisible = true
			return s, nil
		case HideMainWindow:
			s.MainWindowVisible = false
			return s, nil
		case OpenSettingsWindow:
			return SettingsWindowOpen{Previous: s}, nil
		}
	}

	return current, &InvalidTransitionError{From: current, Event: event}
}
