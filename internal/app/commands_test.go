package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alkime/dictate/internal/audio"
	"github.com/alkime/dictate/internal/config"
	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice implements audio.Device without touching real hardware.
type fakeDevice struct {
	dataC   chan audio.DataPacket
	started bool
}

func (f *fakeDevice) EnumerateDevices(_ context.Context) ([]audio.Info, error) {
	return nil, nil
}

func (f *fakeDevice) CaptureInto(_ context.Context, dataC chan audio.DataPacket) error {
	f.dataC = dataC
	return nil
}

func (f *fakeDevice) Start(_ context.Context) error {
	f.started = true
	return nil
}

func (f *fakeDevice) Stop(_ context.Context) error {
	f.started = false
	return nil
}

func (f *fakeDevice) IsStarted() bool { return f.started }

func (f *fakeDevice) Dealloc(_ context.Context) {}

func newTestCommands(t *testing.T) (*Commands, *state.Machine) {
	t.Helper()

	dir := t.TempDir()

	profiles, err := profile.NewManager(profile.NewStore(filepath.Join(dir, "profiles.json")), "default")
	require.NoError(t, err)

	machine := state.NewMachine(state.WithActiveProfile(profiles.Active))

	cfg := &config.Config{SampleRate: 16000, Channels: 1}

	newDevice := func() audio.Device { return &fakeDevice{} }
	recordingPath := func(startedAt time.Time) (string, error) {
		return filepath.Join(dir, startedAt.Format("20060102-150405")+".mp3"), nil
	}

	return NewCommands(machine, profiles, cfg, newDevice, recordingPath), machine
}

func TestCommands_RecordStopLifecycle(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)
	ctx := context.Background()

	require.NoError(t, cmds.StartRecording(ctx))
	assert.True(t, machine.IsRecording())

	assert.ErrorIs(t, cmds.StartRecording(ctx), ErrAlreadyRecording)

	require.NoError(t, cmds.StopRecording(ctx))

	processing, ok := machine.Current().(state.ProcessingTranscription)
	require.True(t, ok, "expected transcription stage, got %s", machine.Current())
	assert.FileExists(t, processing.RecordingPath)
}

func TestCommands_StopWithoutStart(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)

	assert.ErrorIs(t, cmds.StopRecording(context.Background()), ErrNotRecording)
	assert.Equal(t, state.Idle{MainWindowVisible: true}, machine.Current())
}

func TestCommands_CancelDiscardsFile(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)
	ctx := context.Background()

	require.NoError(t, cmds.StartRecording(ctx))

	require.NoError(t, cmds.CancelRecording())
	assert.Equal(t, state.Idle{MainWindowVisible: true}, machine.Current())
	assert.Empty(t, cmds.Waveform(16), "cancelled session leaves no live capture")
}

func TestCommands_ToggleRecording(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)
	ctx := context.Background()

	require.NoError(t, cmds.ToggleRecording(ctx))
	assert.True(t, machine.IsRecording())

	require.NoError(t, cmds.ToggleRecording(ctx))
	assert.True(t, machine.IsProcessing())
}

func TestCommands_StartRefusedInModalState(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)
	ctx := context.Background()

	require.NoError(t, cmds.OpenSettings())

	err := cmds.StartRecording(ctx)
	require.Error(t, err)

	var invalid *state.InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
	assert.True(t, machine.HasModalWindowOpen(), "refusal leaves the settings window open")
}

func TestCommands_SelectProfileUpdatesManager(t *testing.T) {
	t.Parallel()

	cmds, _ := newTestCommands(t)

	require.NoError(t, cmds.SelectProfile("raw"))
	assert.Equal(t, "raw", cmds.profiles.Active())
}

func TestCommands_SaveProfileValidationFailure(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)

	require.NoError(t, cmds.OpenSettings())
	require.NoError(t, cmds.StartNewProfile())

	err := cmds.SaveProfile(profile.Profile{ID: "", Name: "Broken"})
	require.Error(t, err)

	failed, ok := machine.Current().(state.ProfileValidationFailed)
	require.True(t, ok, "expected validation failure state, got %s", machine.Current())
	assert.NotEmpty(t, failed.Err)
}

func TestCommands_SaveProfilePersistsAndReturnsToSettings(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)

	require.NoError(t, cmds.OpenSettings())
	require.NoError(t, cmds.StartNewProfile())

	p := profile.Profile{ID: "meeting", Name: "Meeting notes", Prompt: "Summarize as minutes."}
	require.NoError(t, cmds.SaveProfile(p))

	_, ok := machine.Current().(state.SettingsWindowOpen)
	assert.True(t, ok, "saving returns to the settings window")

	saved, ok := cmds.profiles.Get("meeting")
	require.True(t, ok)
	assert.Equal(t, "Meeting notes", saved.Name)
}

func TestCommands_DeleteLastProfileRefused(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)

	require.NoError(t, cmds.OpenSettings())
	require.NoError(t, cmds.StartEditProfile("default"))
	require.NoError(t, cmds.DeleteProfile("default"))

	// Deleting lands back in the settings window; open the next editor.
	require.NoError(t, cmds.StartEditProfile("raw"))

	err := cmds.DeleteProfile("raw")
	require.Error(t, err)

	_, ok := machine.Current().(state.ProfileValidationFailed)
	assert.True(t, ok, "deleting the last profile is surfaced as a validation error")
}

func TestCommands_ResetTearsDownRecorder(t *testing.T) {
	t.Parallel()

	cmds, machine := newTestCommands(t)
	ctx := context.Background()

	require.NoError(t, cmds.StartRecording(ctx))
	require.NoError(t, cmds.Reset())

	assert.Equal(t, state.Idle{MainWindowVisible: true}, machine.Current())
	assert.Zero(t, cmds.RecordingElapsed())
}
