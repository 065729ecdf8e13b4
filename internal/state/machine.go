package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/alkime/dictate/pkg/channels"
)

// Machine owns the current state behind a mutex so at most one
// transition is in flight at a time. ProcessEvent is the only mutation
// entry point; transitions are linearizable across concurrent callers.
// No method blocks on external I/O.
type Machine struct {
	mu      sync.Mutex
	current AppState

	sink    chan<- Notification
	now     func() time.Time
	profile func() string
}

// Option configures a Machine at construction.
type Option func(*Machine)

// WithNotifications sends a Notification after every successful
// transition. Sends are non-blocking; full or closed channels drop the
// notification rather than stalling the transition.
func WithNotifications(sink chan<- Notification) Option {
	return func(m *Machine) { m.sink = sink }
}

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithActiveProfile supplies the active profile ID consulted when a
// transcript enters the formatting stage.
func WithActiveProfile(fn func() string) Option {
	return func(m *Machine) { m.profile = fn }
}

// NewMachine creates the machine in Idle with the main window visible.
// The machine has no persisted form; it is created once at process start
// and discarded at exit.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		current: Idle{MainWindowVisible: true},
		now:     time.Now,
		profile: func() string { return "" },
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ProcessEvent applies one event through the transition function. On an
// illegal pair the state is left untouched and the InvalidTransitionError
// is returned to the caller synchronously.
func (m *Machine) ProcessEvent(event AppEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	in := Inputs{Now: m.now(), ActiveProfileID: m.profile()}

	next, err := Transition(m.current, event, in)
	if err != nil {
		return err
	}

	prev := m.current
	m.current = next

	if m.sink != nil {
		n := notificationFor(prev, next, event, in.Now)
		if err := channels.SendNonBlock(m.sink, n); err != nil {
			slog.Debug("state notification dropped", "event", n.Event, "error", err)
		}
	}

	return nil
}

// Current returns the state as of the last completed transition.
func (m *Machine) Current() AppState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// IsRecording reports whether an active capture session exists.
func (m *Machine) IsRecording() bool { return IsRecording(m.Current()) }

// IsProcessing reports whether a pipeline stage is in flight.
func (m *Machine) IsProcessing() bool { return IsProcessing(m.Current()) }

// IsMainWindowVisible reports whether the main window should be shown.
func (m *Machine) IsMainWindowVisible() bool { return IsMainWindowVisible(m.Current()) }

// HasModalWindowOpen reports whether a settings or editor context is
// active.
func (m *Machine) HasModalWindowOpen() bool { return HasModalWindowOpen(m.Current()) }

// Flags snapshots all derived views at once.
func (m *Machine) Flags() Flags { return Snapshot(m.Current()) }
