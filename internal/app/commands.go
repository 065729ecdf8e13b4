package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alkime/dictate/internal/audio"
	"github.com/alkime/dictate/internal/config"
	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/state"
	"github.com/gen2brain/malgo"
)

// ErrNotRecording is returned when a stop or cancel arrives with no
// capture session in flight.
var ErrNotRecording = errors.New("not currently recording")

// ErrAlreadyRecording is returned when a start arrives while a capture
// session is in flight.
var ErrAlreadyRecording = errors.New("already recording")

// Commands is the imperative surface the UI and the control server call.
// Each command owns the side effect (allocate a recorder, persist a
// profile) and then reports it to the machine as an event; the machine
// stays the single authority on what is legal.
type Commands struct {
	machine  *state.Machine
	profiles *profile.Manager
	cfg      *config.Config

	// newDevice and recordingPath are injectable for tests.
	newDevice     func() audio.Device
	recordingPath func(time.Time) (string, error)

	mu       sync.Mutex
	recorder *audio.Recorder
}

// NewCommands builds the command surface around the machine.
func NewCommands(
	machine *state.Machine,
	profiles *profile.Manager,
	cfg *config.Config,
	newDevice func() audio.Device,
	recordingPath func(time.Time) (string, error),
) *Commands {
	return &Commands{
		machine:       machine,
		profiles:      profiles,
		cfg:           cfg,
		newDevice:     newDevice,
		recordingPath: recordingPath,
	}
}

// DefaultDevice builds a capture device from the configured format.
func DefaultDevice(cfg *config.Config) func() audio.Device {
	return func() audio.Device {
		return audio.NewDevice(&audio.DeviceConfig{
			Format:          malgo.FormatS16,
			CaptureChannels: cfg.Channels,
			SampleRate:      cfg.SampleRate,
		})
	}
}

// StartRecording allocates a capture session and moves the machine to
// Recording. The recorder is torn down again if the machine refuses the
// event.
func (c *Commands) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recorder != nil {
		return ErrAlreadyRecording
	}

	path, err := c.recordingPath(time.Now())
	if err != nil {
		return fmt.Errorf("failed to resolve recording path: %w", err)
	}

	rec, err := audio.NewRecorder(c.newDevice(), audio.Config{
		SampleRate: c.cfg.SampleRate,
		Channels:   c.cfg.Channels,
		OutputPath: path,
	})
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}

	if err := rec.Start(ctx); err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}

	if err := c.machine.ProcessEvent(state.StartRecording{}); err != nil {
		// The machine refused; discard the session we just opened.
		_ = rec.Cancel(ctx)
		return err
	}

	c.recorder = rec

	return nil
}

// StopRecording finishes the capture session and hands the finished file
// to the machine, which enters the transcription stage.
func (c *Commands) StopRecording(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recorder == nil {
		return ErrNotRecording
	}

	rec := c.recorder
	c.recorder = nil

	path, err := rec.Stop(ctx)
	if err != nil {
		// The file is unusable; fold the machine back to idle.
		_ = c.machine.ProcessEvent(state.CancelRecording{})
		return fmt.Errorf("failed to finish recording: %w", err)
	}

	return c.machine.ProcessEvent(state.StopRecording{RecordingPath: path})
}

// ToggleRecording starts when idle and stops when recording.
func (c *Commands) ToggleRecording(ctx context.Context) error {
	if c.machine.IsRecording() {
		return c.StopRecording(ctx)
	}

	return c.StartRecording(ctx)
}

// CancelRecording discards the capture session and its partial file.
func (c *Commands) CancelRecording() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recorder != nil {
		_ = c.recorder.Cancel(context.Background())
		c.recorder = nil
	}

	return c.machine.ProcessEvent(state.CancelRecording{})
}

// Reset abandons whatever is in flight and returns the machine to idle.
func (c *Commands) Reset() error {
	c.mu.Lock()

	if c.recorder != nil {
		_ = c.recorder.Cancel(context.Background())
		c.recorder = nil
	}

	c.mu.Unlock()

	return c.machine.ProcessEvent(state.Reset{})
}

// SelectProfile changes the active formatting profile. Only permitted
// while the selection can still influence the current dictation.
func (c *Commands) SelectProfile(id string) error {
	if err := c.machine.ProcessEvent(state.SelectProfile{ProfileID: id}); err != nil {
		return err
	}

	return c.profiles.Select(id)
}

// Reformat re-runs the formatting stage on the finished dictation with a
// different profile.
func (c *Commands) Reformat(profileID string) error {
	return c.machine.ProcessEvent(state.ReformatWithProfile{ProfileID: profileID})
}

// AcknowledgeError dismisses an error state.
func (c *Commands) AcknowledgeError() error {
	return c.machine.ProcessEvent(state.AcknowledgeError{})
}

// ShowMainWindow reveals the main window while idle or showing an error.
func (c *Commands) ShowMainWindow() error {
	return c.machine.ProcessEvent(state.ShowMainWindow{})
}

// HideMainWindow hides the main window while idle or showing an error.
func (c *Commands) HideMainWindow() error {
	return c.machine.ProcessEvent(state.HideMainWindow{})
}

// OpenSettings opens the settings window over the current state.
func (c *Commands) OpenSettings() error {
	return c.machine.ProcessEvent(state.OpenSettingsWindow{})
}

// CloseSettings closes the settings window, restoring what was below it.
func (c *Commands) CloseSettings() error {
	return c.machine.ProcessEvent(state.CloseSettingsWindow{})
}

// StartNewProfile opens the profile editor on a blank profile.
func (c *Commands) StartNewProfile() error {
	return c.machine.ProcessEvent(state.StartNewProfile{})
}

// StartEditProfile opens the profile editor on an existing profile.
func (c *Commands) StartEditProfile(id string) error {
	return c.machine.ProcessEvent(state.StartEditProfile{ProfileID: id})
}

// CancelProfileEdit abandons the editor without persisting.
func (c *Commands) CancelProfileEdit() error {
	return c.machine.ProcessEvent(state.CancelProfileEdit{})
}

// SaveProfile validates and persists the edited profile. A validation
// failure is surfaced through the machine so the UI shows it like any
// other error.
func (c *Commands) SaveProfile(p profile.Profile) error {
	if err := c.profiles.Save(p); err != nil {
		_ = c.machine.ProcessEvent(state.ProfileValidationError{Err: err.Error()})
		return err
	}

	return c.machine.ProcessEvent(state.SaveProfile{ProfileID: p.ID})
}

// DeleteProfile removes the profile being edited.
func (c *Commands) DeleteProfile(id string) error {
	if err := c.profiles.Delete(id); err != nil {
		_ = c.machine.ProcessEvent(state.ProfileValidationError{Err: err.Error()})
		return err
	}

	return c.machine.ProcessEvent(state.DeleteProfile{ProfileID: id})
}

// State returns the machine state as of the last completed transition.
func (c *Commands) State() state.AppState {
	return c.machine.Current()
}

// Waveform returns up to n of the newest captured samples for level
// display. Empty when no capture session is active.
func (c *Commands) Waveform(n int) []int16 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recorder == nil {
		return nil
	}

	return c.recorder.ReadSamples(n)
}

// RecordingElapsed reports how long the active capture has been running.
func (c *Commands) RecordingElapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recorder == nil {
		return 0
	}

	return time.Since(c.recorder.StartedAt())
}
