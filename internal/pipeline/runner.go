// Package pipeline drives the dictation stages off state-machine
// notifications: when the machine enters a processing state, the runner
// launches the matching collaborator and raises exactly one completion
// or error event for it.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/alkime/dictate/internal/clipboard"
	"github.com/alkime/dictate/internal/format"
	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/state"
	"github.com/alkime/dictate/internal/transcribe"
)

// Runner consumes machine notifications and executes pipeline stages.
// It never calls the machine synchronously from within a transition; all
// stage work runs in its own goroutine and reports back through
// ProcessEvent.
type Runner struct {
	machine     *state.Machine
	transcriber transcribe.Transcriber
	formatter   format.Formatter
	clipboard   clipboard.Writer
	profiles    *profile.Manager
	notifs      <-chan state.Notification

	// launched is the last processing state a stage was started for.
	// It guards against relaunching when an unrelated transition (a
	// settings detour, a no-op profile select) lands back in the same
	// processing state.
	launched state.AppState
}

// NewRunner wires the stage collaborators to the machine.
func NewRunner(
	machine *state.Machine,
	transcriber transcribe.Transcriber,
	formatter format.Formatter,
	clip clipboard.Writer,
	profiles *profile.Manager,
	notifs <-chan state.Notification,
) *Runner {
	return &Runner{ //nolint:exhaustruct // launched starts empty
		machine:     machine,
		transcriber: transcriber,
		formatter:   formatter,
		clipboard:   clip,
		profiles:    profiles,
		notifs:      notifs,
	}
}

// Run blocks, dispatching stages until the context is cancelled or the
// notification channel closes.
func (r *Runner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-r.notifs:
			if !ok {
				return
			}

			r.dispatch(ctx)
		}
	}
}

// dispatch inspects the machine state after a transition and launches
// the stage it asks for, at most once per distinct processing state.
func (r *Runner) dispatch(ctx context.Context) {
	current := r.machine.Current()

	if current == r.launched {
		return
	}

	switch st := current.(type) {
	case state.ProcessingTranscription:
		r.launched = current

		go r.runTranscription(ctx, st)
	case state.ProcessingGPTFormatting:
		r.launched = current

		go r.runFormatting(ctx, st)
	case state.ProcessingClipboard:
		r.launched = current

		go r.runClipboard(st)
	default:
	}
}

func (r *Runner) runTranscription(ctx context.Context, st state.ProcessingTranscription) {
	file, err := os.Open(st.RecordingPath)
	if err != nil {
		r.raise(state.TranscriptionError{Err: err.Error()})
		return
	}
	defer file.Close()

	transcript, err := r.transcriber.TranscribeFile(ctx, file)
	if err != nil {
		r.raise(state.TranscriptionError{Err: err.Error()})
		return
	}

	// Raw-clipboard profiles bypass the formatting stage entirely.
	if r.profiles.ActiveProfile().SkipFormatting {
		r.raise(state.SkipFormattingToClipboard{Transcript: transcript})
		return
	}

	r.raise(state.TranscriptionComplete{Transcript: transcript})
}

func (r *Runner) runFormatting(ctx context.Context, st state.ProcessingGPTFormatting) {
	p, ok := r.profiles.Get(st.ProfileID)
	if !ok {
		r.raise(state.GPTFormattingError{Err: "unknown profile: " + st.ProfileID})
		return
	}

	// Reformatting with a raw profile passes the transcript through.
	if p.SkipFormatting {
		r.raise(state.GPTFormattingComplete{FormattedText: st.OriginalTranscript})
		return
	}

	formatted, err := r.formatter.Format(ctx, st.OriginalTranscript, p.Prompt)
	if err != nil {
		r.raise(state.GPTFormattingError{Err: err.Error()})
		return
	}

	r.raise(state.GPTFormattingComplete{FormattedText: formatted})
}

func (r *Runner) runClipboard(st state.ProcessingClipboard) {
	if err := r.clipboard.Write(st.Text); err != nil {
		r.raise(state.ClipboardError{Err: err.Error()})
		return
	}

	r.raise(state.ClipboardCopyComplete{})
}

// raise reports a stage outcome to the machine. A rejected event means
// the user moved the machine on (Reset, new recording) while the stage
// ran; the outcome is stale and dropped.
func (r *Runner) raise(event state.AppEvent) {
	if err := r.machine.ProcessEvent(event); err != nil {
		var invalid *state.InvalidTransitionError
		if errors.As(err, &invalid) {
			slog.Debug("stale stage outcome dropped", "event", event.String(), "state", invalid.From.String())
			return
		}

		slog.Error("failed to report stage outcome", "event", event.String(), "error", err)
	}
}
