// Package tui is the terminal front end of the dictation engine. It is
// a pure projection of the state machine: every keypress becomes a
// command, every machine notification becomes a redraw.
package tui

import (
	"context"
	"time"

	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/state"
	"github.com/alkime/dictate/internal/tui/components/labeledspinner"
	"github.com/alkime/dictate/internal/tui/components/steps"
	"github.com/alkime/dictate/internal/tui/components/waveform"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// waveformSamples is how many of the newest samples feed one redraw.
const waveformSamples = 4096

// Controller is the command surface the UI drives. Implemented by the
// application layer; the UI never mutates engine state directly.
type Controller interface {
	State() state.AppState
	ToggleRecording(ctx context.Context) error
	CancelRecording() error
	Reset() error
	SelectProfile(id string) error
	Reformat(profileID string) error
	AcknowledgeError() error
	ShowMainWindow() error
	HideMainWindow() error
	OpenSettings() error
	CloseSettings() error
	StartNewProfile() error
	StartEditProfile(id string) error
	CancelProfileEdit() error
	SaveProfile(p profile.Profile) error
	DeleteProfile(id string) error
	Waveform(n int) []int16
	RecordingElapsed() time.Duration
}

// ProfileSource lists profiles for the settings window.
type ProfileSource interface {
	All() []profile.Profile
	Active() string
}

// notificationMsg carries one machine notification into the update loop.
type notificationMsg state.Notification

// notificationsClosedMsg signals that the engine shut the stream down.
type notificationsClosedMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	ctrl     Controller
	profiles ProfileSource
	notifs   <-chan state.Notification

	current  state.AppState
	keys     KeyMap
	spin     labeledspinner.Model
	wave     waveform.Model
	trail    steps.Model
	settings settingsModel
	editor   editorModel

	width  int
	height int
	notice string
}

// sampleSource adapts the controller to the waveform component.
type sampleSource struct {
	ctrl Controller
}

func (s sampleSource) Read() []int16 {
	return s.ctrl.Waveform(waveformSamples)
}

// New creates the root model. The notification channel must be the
// UI's own subscription; the model re-arms a read on it after every
// message.
func New(ctrl Controller, profiles ProfileSource, notifs <-chan state.Notification) Model {
	return Model{
		ctrl:     ctrl,
		profiles: profiles,
		notifs:   notifs,
		current:  ctrl.State(),
		keys:     DefaultKeyMap(),
		spin: labeledspinner.New(spinner.Points, "Working", "",
			"the result lands on your clipboard"),
		wave:  waveform.New(sampleSource{ctrl: ctrl}, 60, 3),
		trail: steps.New("Transcribe", "Format", "Copy"),
	}
}

// Init arms the notification subscription and the animations.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForNotification(), m.wave.Init(), m.spin.Init())
}

func (m Model) waitForNotification() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-m.notifs
		if !ok {
			return notificationsClosedMsg{}
		}

		return notificationMsg(n)
	}
}

// Update handles all messages.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case notificationMsg:
		return m.onNotification(), m.waitForNotification()

	case notificationsClosedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)

	case waveform.TickMsg:
		var cmd tea.Cmd
		m.wave, cmd = m.wave.Update(msg)

		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd
	}

	return m, nil
}

// onNotification re-reads the machine and refreshes whichever modal the
// state says is open.
func (m Model) onNotification() Model {
	previous := m.current
	m.current = m.ctrl.State()
	m.notice = ""

	switch st := m.current.(type) {
	case state.SettingsWindowOpen:
		if _, wasOpen := previous.(state.SettingsWindowOpen); !wasOpen {
			m.settings = newSettingsModel(m.profiles.All(), m.profiles.Active())
		}

	case state.NewProfileEditorOpen:
		if _, wasOpen := previous.(state.NewProfileEditorOpen); !wasOpen {
			m.editor = newEditorModel(profile.Profile{}, true)
		}

	case state.EditProfileEditorOpen:
		if _, wasOpen := previous.(state.EditProfileEditorOpen); !wasOpen {
			p, _ := lookupProfile(m.profiles, st.ProfileID)
			m.editor = newEditorModel(p, false)
		}
	}

	return m
}

//nolint:cyclop // one branch per screen
func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch st := m.current.(type) {
	case state.Idle:
		return m.onIdleKey(msg)

	case state.Recording:
		return m.onRecordingKey(msg)

	case state.ProcessingTranscription, state.ProcessingGPTFormatting, state.ProcessingClipboard:
		return m.onProcessingKey(msg)

	case state.ProcessingComplete:
		return m.onCompleteKey(msg)

	case state.SettingsWindowOpen:
		return m.onSettingsKey(msg)

	case state.NewProfileEditorOpen:
		return m.onEditorKey(msg, "")

	case state.EditProfileEditorOpen:
		return m.onEditorKey(msg, st.ProfileID)

	case state.TranscriptionFailed, state.GPTFormattingFailed, state.ClipboardFailed, state.ProfileValidationFailed:
		return m.onErrorKey(msg)
	}

	return m, nil
}

func (m Model) onIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.run(m.ctrl.ToggleRecording(context.Background())), nil
	case key.Matches(msg, m.keys.Settings):
		return m.run(m.ctrl.OpenSettings()), nil
	case key.Matches(msg, m.keys.CycleProfile):
		return m.run(m.ctrl.SelectProfile(m.nextProfileID())), nil
	case key.Matches(msg, m.keys.ToggleWindow):
		return m.run(m.toggleWindow()), nil
	}

	return m, nil
}

// toggleWindow flips main-window visibility in the states that track it.
func (m Model) toggleWindow() error {
	if state.IsMainWindowVisible(m.current) {
		return m.ctrl.HideMainWindow()
	}

	return m.ctrl.ShowMainWindow()
}

func (m Model) onRecordingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m.run(m.ctrl.ToggleRecording(context.Background())), nil
	case key.Matches(msg, m.keys.Cancel):
		return m.run(m.ctrl.CancelRecording()), nil
	case key.Matches(msg, m.keys.Settings):
		return m.run(m.ctrl.OpenSettings()), nil
	case key.Matches(msg, m.keys.CycleProfile):
		return m.run(m.ctrl.SelectProfile(m.nextProfileID())), nil
	}

	return m, nil
}

func (m Model) onProcessingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Settings):
		return m.run(m.ctrl.OpenSettings()), nil
	case key.Matches(msg, m.keys.Reset):
		return m.run(m.ctrl.Reset()), nil
	}

	return m, nil
}

func (m Model) onCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.run(m.ctrl.ToggleRecording(context.Background())), nil
	case key.Matches(msg, m.keys.Reformat):
		return m.run(m.ctrl.Reformat(m.nextProfileID())), nil
	case key.Matches(msg, m.keys.Settings):
		return m.run(m.ctrl.OpenSettings()), nil
	}

	return m, nil
}

func (m Model) onSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.settings = m.settings.moveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.settings = m.settings.moveDown()
		return m, nil
	case key.Matches(msg, m.keys.NewProfile):
		return m.run(m.ctrl.StartNewProfile()), nil
	case key.Matches(msg, m.keys.EditProfile):
		if p, ok := m.settings.selected(); ok {
			return m.run(m.ctrl.StartEditProfile(p.ID)), nil
		}

		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		return m.run(m.ctrl.CloseSettings()), nil
	}

	return m, nil
}

func (m Model) onEditorKey(msg tea.KeyMsg, editingID string) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.run(m.ctrl.SaveProfile(m.editor.result())), nil
	case key.Matches(msg, m.keys.Cancel):
		return m.run(m.ctrl.CancelProfileEdit()), nil
	case key.Matches(msg, m.keys.Delete):
		if editingID != "" {
			return m.run(m.ctrl.DeleteProfile(editingID)), nil
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg, m.keys)

	return m, cmd
}

func (m Model) onErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Acknowledge):
		return m.run(m.ctrl.AcknowledgeError()), nil
	case key.Matches(msg, m.keys.Reset):
		return m.run(m.ctrl.Reset()), nil
	case key.Matches(msg, m.keys.Settings):
		return m.run(m.ctrl.OpenSettings()), nil
	case key.Matches(msg, m.keys.ToggleWindow):
		return m.run(m.toggleWindow()), nil
	}

	return m, nil
}

// run records a rejected command as a transient notice. Accepted
// commands redraw through the notification that follows.
func (m Model) run(err error) Model {
	if err != nil {
		m.notice = err.Error()
	}

	return m
}

// nextProfileID returns the profile after the active one, wrapping.
func (m Model) nextProfileID() string {
	items := m.profiles.All()
	if len(items) == 0 {
		return ""
	}

	active := m.profiles.Active()

	for i, p := range items {
		if p.ID == active {
			return items[(i+1)%len(items)].ID
		}
	}

	return items[0].ID
}

func lookupProfile(src ProfileSource, id string) (profile.Profile, bool) {
	for _, p := range src.All() {
		if p.ID == id {
			return p, true
		}
	}

	return profile.Profile{}, false
}
