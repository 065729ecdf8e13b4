package tui

import (
	"strings"

	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/tui/style"
)

// settingsModel is the profile list shown in the settings window.
type settingsModel struct {
	items  []profile.Profile
	active string
	cursor int
}

func newSettingsModel(items []profile.Profile, active string) settingsModel {
	s := settingsModel{items: items, active: active}

	for i, p := range items {
		if p.ID == active {
			s.cursor = i
			break
		}
	}

	return s
}

func (s settingsModel) moveUp() settingsModel {
	if s.cursor > 0 {
		s.cursor--
	}

	return s
}

func (s settingsModel) moveDown() settingsModel {
	if s.cursor < len(s.items)-1 {
		s.cursor++
	}

	return s
}

func (s settingsModel) selected() (profile.Profile, bool) {
	if len(s.items) == 0 {
		return profile.Profile{}, false
	}

	return s.items[s.cursor], true
}

func (s settingsModel) view(keys KeyMap) string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("Settings"))
	sb.WriteString("\n\n")
	sb.WriteString(style.Subtitle.Render("Formatting profiles"))
	sb.WriteString("\n")

	for i, p := range s.items {
		marker := "  "
		if i == s.cursor {
			marker = style.Selected.Render("> ")
		}

		name := p.Name
		if i == s.cursor {
			name = style.Selected.Render(name)
		}

		sb.WriteString(marker)
		sb.WriteString(name)

		if p.ID == s.active {
			sb.WriteString(" ")
			sb.WriteString(style.Active.Render("(active)"))
		}

		if p.SkipFormatting {
			sb.WriteString(" ")
			sb.WriteString(style.Muted.Render("[raw]"))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpLine(keys.Up, keys.Down, keys.NewProfile, keys.EditProfile, keys.Cancel))

	return style.Modal.Render(sb.String())
}
