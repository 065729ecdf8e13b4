package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow    = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	testInputs = Inputs{Now: testNow, ActiveProfileID: "default"}
)

// allStates returns one representative value per state variant.
func allStates() []AppState {
	settings := SettingsWindowOpen{Previous: Idle{MainWindowVisible: false}}

	return []AppState{
		Idle{MainWindowVisible: true},
		Recording{StartedAt: testNow},
		ProcessingTranscription{RecordingPath: "/tmp/rec.mp3", StartedAt: testNow},
		ProcessingGPTFormatting{OriginalTranscript: "hi", ProfileID: "default", StartedAt: testNow},
		ProcessingClipboard{OriginalTranscript: "hi", Text: "Hi.", StartedAt: testNow},
		ProcessingComplete{OriginalTranscript: "hi", FinalText: "Hi.", CompletedAt: testNow},
		settings,
		NewProfileEditorOpen{Settings: settings},
		EditProfileEditorOpen{ProfileID: "p1", Settings: settings},
		TranscriptionFailed{Err: "boom", RecordingPath: "/tmp/rec.mp3", MainWindowVisible: true},
		GPTFormattingFailed{Err: "boom", Transcript: "hi", MainWindowVisible: true},
		ClipboardFailed{Err: "boom", Text: "Hi.", MainWindowVisible: true},
		ProfileValidationFailed{Err: "boom", MainWindowVisible: true},
	}
}

// allEvents returns one representative value per event variant.
func allEvents() []AppEvent {
	return []AppEvent{
		StartRecording{},
		StopRecording{RecordingPath: "/tmp/rec.mp3"},
		CancelRecording{},
		ShowMainWindow{},
		HideMainWindow{},
		OpenSettingsWindow{},
		CloseSettingsWindow{},
		StartNewProfile{},
		StartEditProfile{ProfileID: "p1"},
		SaveProfile{ProfileID: "p1"},
		CancelProfileEdit{},
		DeleteProfile{ProfileID: "p1"},
		SelectProfile{ProfileID: "p1"},
		TranscriptionComplete{Transcript: "hi"},
		SkipFormattingToClipboard{Transcript: "hi"},
		TranscriptionError{Err: "boom"},
		GPTFormattingComplete{FormattedText: "Hi."},
		GPTFormattingError{Err: "boom"},
		ClipboardCopyComplete{},
		ClipboardError{Err: "boom"},
		ReformatWithProfile{ProfileID: "p2"},
		ProfileValidationError{Err: "bad profile"},
		Reset{},
		AcknowledgeError{},
	}
}

func TestTransition_Totality(t *testing.T) {
	t.Parallel()

	for _, s := range allStates() {
		for _, ev := range allEvents() {
			require.NotPanics(t, func() {
				next, err := Transition(s, ev, testInputs)
				if err != nil {
					var invalid *InvalidTransitionError
					require.ErrorAs(t, err, &invalid, "%s + %s", s, ev)
					assert.Equal(t, s, next, "rejected event must leave state untouched")
				} else {
					require.NotNil(t, next, "%s + %s", s, ev)
				}
			}, "%s + %s", s, ev)
		}
	}
}

func TestTransition_UniversalReset(t *testing.T) {
	t.Parallel()

	for _, s := range allStates() {
		next, err := Transition(s, Reset{}, testInputs)

		require.NoError(t, err, "reset from %s", s)
		assert.Equal(t, Idle{MainWindowVisible: true}, next)
	}
}

func TestTransition_RecordingLifecycle(t *testing.T) {
	t.Parallel()

	next, err := Transition(Idle{MainWindowVisible: true}, StartRecording{}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, Recording{StartedAt: testNow}, next)

	next, err = Transition(next, StopRecording{RecordingPath: "/tmp/a.mp3"}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, ProcessingTranscription{RecordingPath: "/tmp/a.mp3", StartedAt: testNow}, next)
}

func TestTransition_CancelRecordingDiscardsCapture(t *testing.T) {
	t.Parallel()

	next, err := Transition(Recording{StartedAt: testNow}, CancelRecording{}, testInputs)

	require.NoError(t, err)
	assert.Equal(t, Idle{MainWindowVisible: true}, next)
}

func TestTransition_SelectProfileIsNoOp(t *testing.T) {
	t.Parallel()

	idle := Idle{MainWindowVisible: false}
	next, err := Transition(idle, SelectProfile{ProfileID: "x"}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, idle, next, "profile selection must not change Idle")

	rec := Recording{StartedAt: testNow}
	next, err = Transition(rec, SelectProfile{ProfileID: "x"}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, rec, next, "profile switching is ignored while recording")
}

func TestTransition_TranscriptionOutcomes(t *testing.T) {
	t.Parallel()

	processing := ProcessingTranscription{RecordingPath: "/tmp/a.mp3", StartedAt: testNow}

	next, err := Transition(processing, TranscriptionComplete{Transcript: "hello"}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, ProcessingGPTFormatting{
		OriginalTranscript: "hello",
		ProfileID:          "default",
		StartedAt:          testNow,
	}, next)

	next, err = Transition(processing, SkipFormattingToClipboard{Transcript: "hello"}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, ProcessingClipboard{
		OriginalTranscript: "hello",
		Text:               "hello",
		StartedAt:          testNow,
	}, next, "bypass path delivers the raw transcript")

	next, err = Transition(processing, TranscriptionError{Err: "api down"}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, TranscriptionFailed{
		Err:               "api down",
		RecordingPath:     "/tmp/a.mp3",
		MainWindowVisible: true,
	}, next, "recording path is carried into the error state")
}

func TestTransition_TranscriptPreservation(t *testing.T) {
	t.Parallel()

	var s AppState = ProcessingTranscription{RecordingPath: "/tmp/a.mp3", StartedAt: testNow}

	s, err := Transition(s, TranscriptionComplete{Transcript: "hello"}, testInputs)
	require.NoError(t, err)

	s, err = Transition(s, GPTFormattingComplete{FormattedText: "Hello."}, testInputs)
	require.NoError(t, err)

	clip, ok := s.(ProcessingClipboard)
	require.True(t, ok)
	assert.Equal(t, "hello", clip.OriginalTranscript, "formatting must not overwrite the original")
	assert.Equal(t, "Hello.", clip.Text)

	s, err = Transition(s, ClipboardCopyComplete{}, testInputs)
	require.NoError(t, err)

	done, ok := s.(ProcessingComplete)
	require.True(t, ok)
	assert.Equal(t, "hello", done.OriginalTranscript)
	assert.Equal(t, "Hello.", done.FinalText)
}

func TestTransition_ReformatReplaysOriginal(t *testing.T) {
	t.Parallel()

	done := ProcessingComplete{
		OriginalTranscript: "hello",
		FinalText:          "Hello.",
		CompletedAt:        testNow,
	}

	// Reformat never re-records or re-transcribes, for any profile, any
	// number of times.
	for _, profileID := range []string{"casual", "formal", "casual"} {
		next, err := Transition(done, ReformatWithProfile{ProfileID: profileID}, testInputs)

		require.NoError(t, err)
		assert.Equal(t, ProcessingGPTFormatting{
			OriginalTranscript: "hello",
			ProfileID:          profileID,
			StartedAt:          testNow,
		}, next)
	}
}

func TestTransition_FormattingError(t *testing.T) {
	t.Parallel()

	formatting := ProcessingGPTFormatting{
		OriginalTranscript: "hello",
		ProfileID:          "default",
		StartedAt:          testNow,
	}

	next, err := Transition(formatting, GPTFormattingError{Err: "rate limited"}, testInputs)

	require.NoError(t, err)
	assert.Equal(t, GPTFormattingFailed{
		Err:               "rate limited",
		Transcript:        "hello",
		MainWindowVisible: true,
	}, next)
}

func TestTransition_ClipboardError(t *testing.T) {
	t.Parallel()

	clip := ProcessingClipboard{OriginalTranscript: "hello", Text: "Hello.", StartedAt: testNow}

	next, err := Transition(clip, ClipboardError{Err: "no display"}, testInputs)

	require.NoError(t, err)
	assert.Equal(t, ClipboardFailed{
		Err:               "no display",
		Text:              "Hello.",
		MainWindowVisible: true,
	}, next)
}

func TestTransition_NewRecordingAfterComplete(t *testing.T) {
	t.Parallel()

	done := ProcessingComplete{OriginalTranscript: "hello", FinalText: "Hello.", CompletedAt: testNow}

	next, err := Transition(done, StartRecording{}, testInputs)

	require.NoError(t, err)
	assert.Equal(t, Recording{StartedAt: testNow}, next)
}

func TestTransition_NestedContextRestoration(t *testing.T) {
	t.Parallel()

	var s AppState = Idle{MainWindowVisible: false}

	s, err := Transition(s, OpenSettingsWindow{}, testInputs)
	require.NoError(t, err)

	s, err = Transition(s, StartNewProfile{}, testInputs)
	require.NoError(t, err)
	require.IsType(t, NewProfileEditorOpen{}, s)

	s, err = Transition(s, CancelProfileEdit{}, testInputs)
	require.NoError(t, err)
	require.Equal(t, SettingsWindowOpen{Previous: Idle{MainWindowVisible: false}}, s)

	s, err = Transition(s, CloseSettingsWindow{}, testInputs)
	require.NoError(t, err)
	assert.Equal(t, Idle{MainWindowVisible: false}, s,
		"closing nested windows must replay the exact prior context")
}

func TestTransition_EditorExitsRestoreSettings(t *testing.T) {
	t.Parallel()

	settings := SettingsWindowOpen{Previous: Recording{StartedAt: testNow}}

	exits := []AppEvent{
		SaveProfile{ProfileID: "p1"},
		CancelProfileEdit{},
		DeleteProfile{ProfileID: "p1"},
	}

	for _, exit := range exits {
		next, err := Transition(NewProfileEditorOpen{Settings: settings}, exit, testInputs)
		require.NoError(t, err, "new-profile editor + %s", exit)
		assert.Equal(t, settings, next)

		next, err = Transition(EditProfileEditorOpen{ProfileID: "p1", Settings: settings}, exit, testInputs)
		require.NoError(t, err, "edit-profile editor + %s", exit)
		assert.Equal(t, settings, next)
	}
}

func TestTransition_SettingsWrapsAnyNonModalState(t *testing.T) {
	t.Parallel()

	nonModal := []AppState{
		Idle{MainWindowVisible: false},
		Recording{StartedAt: testNow},
		ProcessingTranscription{RecordingPath: "/tmp/a.mp3", StartedAt: testNow},
		ProcessingComplete{OriginalTranscript: "hi", FinalText: "Hi.", CompletedAt: testNow},
		TranscriptionFailed{Err: "boom", RecordingPath: "/tmp/a.mp3", MainWindowVisible: true},
	}

	for _, prev := range nonModal {
		opened, err := Transition(prev, OpenSettingsWindow{}, testInputs)
		require.NoError(t, err, "open settings from %s", prev)
		require.Equal(t, SettingsWindowOpen{Previous: prev}, opened)

		closed, err := Transition(opened, CloseSettingsWindow{}, testInputs)
		require.NoError(t, err)
		assert.Equal(t, prev, closed)
	}

	// Modal states cannot be wrapped again.
	settings := SettingsWindowOpen{Previous: Idle{MainWindowVisible: true}}
	_, err := Transition(settings, OpenSettingsWindow{}, testInputs)
	assert.Error(t, err)
}

func TestTransition_AcknowledgeErrorRestoresFlag(t *testing.T) {
	t.Parallel()

	for _, visible := range []bool{true, false} {
		errorStates := []AppState{
			TranscriptionFailed{Err: "boom", RecordingPath: "/tmp/a.mp3", MainWindowVisible: visible},
			GPTFormattingFailed{Err: "boom", Transcript: "hi", MainWindowVisible: visible},
			ClipboardFailed{Err: "boom", Text: "Hi.", MainWindowVisible: visible},
			ProfileValidationFailed{Err: "boom", MainWindowVisible: visible},
		}

		for _, s := range errorStates {
			next, err := Transition(s, AcknowledgeError{}, testInputs)

			require.NoError(t, err, "acknowledge from %s", s)
			assert.Equal(t, Idle{MainWindowVisible: visible}, next)
		}
	}
}

func TestTransition_ProfileValidationFailure(t *testing.T) {
	t.Parallel()

	settings := SettingsWindowOpen{Previous: Idle{MainWindowVisible: true}}
	editor := NewProfileEditorOpen{Settings: settings}

	next, err := Transition(editor, ProfileValidationError{Err: "name required"}, testInputs)

	require.NoError(t, err)
	assert.Equal(t, ProfileValidationFailed{Err: "name required", MainWindowVisible: true}, next)
}

func TestTransition_InvalidPairsRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state AppState
		event AppEvent
	}{
		{Idle{MainWindowVisible: true}, StopRecording{RecordingPath: "/tmp/a.mp3"}},
		{Idle{MainWindowVisible: true}, TranscriptionComplete{Transcript: "hi"}},
		{Recording{StartedAt: testNow}, GPTFormattingComplete{FormattedText: "Hi."}},
		{ProcessingTranscription{RecordingPath: "/tmp/a.mp3", StartedAt: testNow}, StartRecording{}},
		{ProcessingClipboard{OriginalTranscript: "hi", Text: "Hi.", StartedAt: testNow}, HideMainWindow{}},
		{SettingsWindowOpen{Previous: Idle{MainWindowVisible: true}}, StartRecording{}},
		{NewProfileEditorOpen{Settings: SettingsWindowOpen{Previous: Idle{MainWindowVisible: true}}}, CloseSettingsWindow{}},
		{TranscriptionFailed{Err: "boom", RecordingPath: "/tmp/a.mp3", MainWindowVisible: true}, StartRecording{}},
	}

	for _, tt := range tests {
		next, err := Transition(tt.state, tt.event, testInputs)

		var invalid *InvalidTransitionError
		require.True(t, errors.As(err, &invalid), "%s + %s should be invalid", tt.state, tt.event)
		assert.Equal(t, tt.state, invalid.From)
		assert.Equal(t, tt.event, invalid.Event)
		assert.Equal(t, tt.state, next)
	}
}

func TestTransition_EndToEndDictation(t *testing.T) {
	t.Parallel()

	var s AppState = Idle{MainWindowVisible: true}

	steps := []AppEvent{
		StartRecording{},
		StopRecording{RecordingPath: "/tmp/a.mp3"},
		TranscriptionComplete{Transcript: "hello"},
		GPTFormattingComplete{FormattedText: "Hello."},
		ClipboardCopyComplete{},
	}

	for _, ev := range steps {
		var err error
		s, err = Transition(s, ev, testInputs)
		require.NoError(t, err, "applying %s", ev)
	}

	assert.Equal(t, ProcessingComplete{
		OriginalTranscript: "hello",
		FinalText:          "Hello.",
		ProfileID:          "",
		CompletedAt:        testNow,
	}, s)
}
