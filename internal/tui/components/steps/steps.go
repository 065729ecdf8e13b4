// Package steps renders the dictation pipeline as a fixed progress
// trail: each stage is shown as done, running, or pending.
package steps

import (
	"strings"

	"github.com/alkime/dictate/internal/tui/style"
)

// markers per stage status.
const (
	markDone    = "✓"
	markCurrent = "●"
	markPending = "○"
)

// Model is a static stage trail. It has no Update; the owner sets the
// current index from its own state.
type Model struct {
	names   []string
	current int
	done    bool
}

// New creates a trail over the given stage names.
func New(names ...string) Model {
	return Model{names: names}
}

// WithCurrent returns a copy with the running stage set. Earlier stages
// render as done.
func (m Model) WithCurrent(idx int) Model {
	m.current = min(max(idx, 0), len(m.names)-1)
	m.done = false

	return m
}

// WithAllDone returns a copy with every stage completed.
func (m Model) WithAllDone() Model {
	m.done = true

	return m
}

// View renders the trail on one line.
func (m Model) View() string {
	parts := make([]string, 0, len(m.names))

	for i, name := range m.names {
		switch {
		case m.done || i < m.current:
			parts = append(parts, style.StepDone.Render(markDone+" "+name))
		case i == m.current:
			parts = append(parts, style.StepCurrent.Render(markCurrent+" "+name))
		default:
			parts = append(parts, style.StepPending.Render(markPending+" "+name))
		}
	}

	return strings.Join(parts, style.Muted.Render(" → "))
}
