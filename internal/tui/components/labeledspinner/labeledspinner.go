// Package labeledspinner renders a spinner with a title and help line.
package labeledspinner

import (
	"strings"

	"github.com/alkime/dictate/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner with title, subtitle, and help text. The
// pipeline stages all render through this while they wait on a remote
// call.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Help     string
}

// New creates a labeled spinner with the given configuration.
func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
	}
}

// Init returns the initial command for the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update handles spinner tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

		return ls, cmd
	}

	return ls, nil
}

// View renders the spinner with its static help text.
func (ls Model) View() string {
	return ls.ViewWithSubtitle(ls.Subtitle)
}

// ViewWithSubtitle renders with a subtitle computed at render time, for
// values like elapsed duration.
func (ls Model) ViewWithSubtitle(subtitle string) string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(ls.Title))
	sb.WriteString("\n")

	if subtitle != "" {
		sb.WriteString(style.Subtitle.Render(subtitle))
		sb.WriteString("\n")
	}

	if ls.Help != "" {
		sb.WriteString("\n")
		sb.WriteString(style.Help.Render(ls.Help))
	}

	return sb.String()
}
