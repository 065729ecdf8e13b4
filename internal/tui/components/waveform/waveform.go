// Package waveform renders live microphone amplitude as block characters.
package waveform

import (
	"math"
	"strings"
	"time"

	"github.com/alkime/dictate/internal/tui/style"
	"github.com/alkime/dictate/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// Eight fill levels per cell, bottom to top. Index 0 is empty.
const blockChars = " ▁▂▃▄▅▆▇█"

const tickInterval = 50 * time.Millisecond

// TickMsg triggers a waveform redraw.
type TickMsg struct{}

// Model displays recent audio samples as vertical bars, oldest on the
// left. The sample source is polled on every tick.
type Model struct {
	levels uictl.Levels[int16]
	width  int
	height int
}

// New creates a waveform of the given character dimensions.
func New(levels uictl.Levels[int16], width, height int) Model {
	return Model{
		levels: levels,
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Init returns the initial tick command.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles tick messages for animation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, m.tick()
	}

	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the waveform.
func (m Model) View() string {
	var samples []int16
	if m.levels != nil {
		samples = m.levels.Read()
	}

	if len(samples) == 0 {
		return m.baseline()
	}

	levels := m.columnLevels(samples)
	runes := []rune(blockChars)

	rows := make([]string, m.height)

	for row := range m.height {
		var sb strings.Builder

		// Row 0 is the top; each row covers eight fill levels.
		base := (m.height - 1 - row) * 8

		for col := range m.width {
			fill := levels[col] - base
			fill = min(max(fill, 0), 8)
			sb.WriteRune(runes[fill])
		}

		rows[row] = style.Waveform.Render(sb.String())
	}

	return strings.Join(rows, "\n")
}

// columnLevels buckets the samples into one peak level per column, in
// the range 0..height*8.
func (m Model) columnLevels(samples []int16) []int {
	levels := make([]int, m.width)
	bucket := max(1, len(samples)/m.width)

	for col := range m.width {
		start := col * bucket
		if start >= len(samples) {
			break
		}

		end := min(start+bucket, len(samples))
		levels[col] = m.scale(peak(samples[start:end]))
	}

	return levels
}

// scale maps an absolute amplitude to a display level. Square-root
// scaling keeps quiet speech visible.
func (m Model) scale(amp int16) int {
	if amp == 0 {
		return 0
	}

	maxLevel := m.height * 8
	normalized := float64(amp) / math.MaxInt16
	scaled := math.Sqrt(normalized) * float64(maxLevel)

	return min(int(scaled), maxLevel)
}

func (m Model) baseline() string {
	rows := make([]string, m.height)

	for row := range m.height {
		ch := " "
		if row == m.height-1 {
			ch = "▁"
		}

		rows[row] = style.Muted.Render(strings.Repeat(ch, m.width))
	}

	return strings.Join(rows, "\n")
}

// peak returns the largest absolute amplitude in the slice.
func peak(samples []int16) int16 {
	var p int16

	for _, s := range samples {
		// The most negative sample has no positive counterpart.
		if s == math.MinInt16 {
			return math.MaxInt16
		}

		if s < 0 {
			s = -s
		}

		if s > p {
			p = s
		}
	}

	return p
}
