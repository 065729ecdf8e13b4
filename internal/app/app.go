// Package app composes the dictation engine: the state machine at the
// center, the pipeline runner and UI as notification subscribers, and
// the command surface that feeds events in.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alkime/dictate/internal/clipboard"
	"github.com/alkime/dictate/internal/config"
	"github.com/alkime/dictate/internal/format"
	"github.com/alkime/dictate/internal/pipeline"
	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/server"
	"github.com/alkime/dictate/internal/state"
	"github.com/alkime/dictate/internal/transcribe"
	"github.com/alkime/dictate/internal/tui"
	"github.com/alkime/dictate/internal/workdir"
	"github.com/alkime/dictate/pkg/channels"
	tea "github.com/charmbracelet/bubbletea"
)

// Keys carries the resolved API credentials.
type Keys struct {
	OpenAI    string
	Anthropic string
}

// App owns the wired engine for one process lifetime.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	keys   Keys

	machine  *state.Machine
	profiles *profile.Manager
	commands *Commands
}

// New prepares the working directory and loads the profile store. The
// machine and subscribers are wired in Run, where the notification
// broadcaster gets its context.
func New(cfg *config.Config, logger *slog.Logger, keys Keys) (*App, error) {
	if err := workdir.Prep(); err != nil {
		return nil, fmt.Errorf("failed to prepare working directory: %w", err)
	}

	profilesPath, err := workdir.ProfilesPath()
	if err != nil {
		return nil, err
	}

	profiles, err := profile.NewManager(profile.NewStore(profilesPath), cfg.ActiveProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		keys:     keys,
		profiles: profiles,
	}, nil
}

// Run wires the machine to its subscribers and blocks on the terminal
// UI. Cancelling the context stops the broadcaster and the pipeline.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// One notification stream in, three subscribers out: the pipeline
	// runner, the UI, and the transition log each get their own
	// buffered channel.
	broadcaster := channels.NewBroadcaster[state.Notification]()
	pipeC := make(chan state.Notification, 64)
	tuiC := make(chan state.Notification, 64)
	logC := make(chan state.Notification, 64)
	broadcaster.Subscribe(pipeC)
	broadcaster.Subscribe(tuiC)
	broadcaster.Subscribe(logC)

	sink, err := broadcaster.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to start notification broadcaster: %w", err)
	}

	a.machine = state.NewMachine(
		state.WithNotifications(sink),
		state.WithActiveProfile(a.profiles.Active),
	)

	a.commands = NewCommands(a.machine, a.profiles, a.cfg, DefaultDevice(a.cfg), workdir.RecordingPath)

	runner := pipeline.NewRunner(
		a.machine,
		transcribe.NewClient(a.keys.OpenAI),
		format.NewClient(a.keys.Anthropic),
		clipboard.System(),
		a.profiles,
		pipeC,
	)

	var wg sync.WaitGroup

	wg.Go(func() { runner.Run(ctx) })
	wg.Go(func() { a.observeTransitions(ctx, logC) })

	if a.cfg.ControlServer {
		recordingsDir, err := workdir.RecordingsDir()
		if err != nil {
			return err
		}

		srv := server.New(a.cfg, a.logger, a.machine, a.profiles, a.commands, recordingsDir)

		go func() {
			if err := server.Run(srv); err != nil {
				a.logger.Error("Control server exited", "error", err)
			}
		}()
	}

	model := tui.New(a.commands, a.profiles, tuiC)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI exited: %w", err)
	}

	cancel()
	wg.Wait()

	return nil
}

// observeTransitions logs every state transition at debug level.
func (a *App) observeTransitions(ctx context.Context, ch <-chan state.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}

			a.logger.Debug("state transition",
				"from", n.Previous,
				"to", n.Current,
				"event", n.Event,
			)
		}
	}
}

// Commands exposes the command surface, available after Run has wired
// the machine.
func (a *App) Commands() *Commands {
	return a.commands
}
