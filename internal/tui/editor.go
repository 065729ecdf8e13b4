package tui

import (
	"strings"

	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editor focus order.
const (
	focusID = iota
	focusName
	focusPrompt
	focusCount
)

// editorModel edits one formatting profile. The ID field is only
// editable for new profiles.
type editorModel struct {
	isNew  bool
	id     textinput.Model
	name   textinput.Model
	prompt textarea.Model
	skip   bool
	focus  int
}

func newEditorModel(p profile.Profile, isNew bool) editorModel {
	id := textinput.New()
	id.Placeholder = "profile-id"
	id.CharLimit = 64
	id.SetValue(p.ID)

	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 64
	name.SetValue(p.Name)

	prompt := textarea.New()
	prompt.Placeholder = "Formatting instructions sent to the model"
	prompt.SetWidth(60)
	prompt.SetHeight(6)
	prompt.SetValue(p.Prompt)

	e := editorModel{
		isNew:  isNew,
		id:     id,
		name:   name,
		prompt: prompt,
		skip:   p.SkipFormatting,
	}

	if isNew {
		e.focus = focusID
	} else {
		e.focus = focusName
	}

	return e.applyFocus()
}

// update routes key and tick messages to the focused field. Focus
// cycling and the skip toggle are handled here; save, cancel, and
// delete stay with the root model.
func (e editorModel) update(msg tea.Msg, keys KeyMap) (editorModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.NextField):
			return e.cycleFocus(1), nil
		case key.Matches(km, keys.PrevField):
			return e.cycleFocus(-1), nil
		case key.Matches(km, keys.ToggleSkip):
			e.skip = !e.skip
			return e, nil
		}
	}

	var cmd tea.Cmd

	switch e.focus {
	case focusID:
		e.id, cmd = e.id.Update(msg)
	case focusName:
		e.name, cmd = e.name.Update(msg)
	case focusPrompt:
		e.prompt, cmd = e.prompt.Update(msg)
	}

	return e, cmd
}

func (e editorModel) cycleFocus(dir int) editorModel {
	first := focusID
	if !e.isNew {
		first = focusName
	}

	e.focus += dir
	if e.focus >= focusCount {
		e.focus = first
	}

	if e.focus < first {
		e.focus = focusCount - 1
	}

	return e.applyFocus()
}

func (e editorModel) applyFocus() editorModel {
	e.id.Blur()
	e.name.Blur()
	e.prompt.Blur()

	switch e.focus {
	case focusID:
		e.id.Focus()
	case focusName:
		e.name.Focus()
	case focusPrompt:
		e.prompt.Focus()
	}

	return e
}

// result assembles the profile as currently edited.
func (e editorModel) result() profile.Profile {
	return profile.Profile{
		ID:             strings.TrimSpace(e.id.Value()),
		Name:           strings.TrimSpace(e.name.Value()),
		Prompt:         strings.TrimSpace(e.prompt.Value()),
		SkipFormatting: e.skip,
	}
}

func (e editorModel) view(keys KeyMap) string {
	var sb strings.Builder

	title := "Edit profile"
	if e.isNew {
		title = "New profile"
	}

	sb.WriteString(style.Title.Render(title))
	sb.WriteString("\n\n")

	if e.isNew {
		sb.WriteString(style.Subtitle.Render("ID"))
		sb.WriteString("\n")
		sb.WriteString(e.id.View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(style.Subtitle.Render("Name"))
	sb.WriteString("\n")
	sb.WriteString(e.name.View())
	sb.WriteString("\n\n")

	sb.WriteString(style.Subtitle.Render("Prompt"))
	sb.WriteString("\n")
	sb.WriteString(e.prompt.View())
	sb.WriteString("\n\n")

	formatting := style.Active.Render("GPT formatting on")
	if e.skip {
		formatting = style.Muted.Render("GPT formatting off (raw transcript)")
	}

	sb.WriteString(formatting)
	sb.WriteString("\n\n")

	bindings := []key.Binding{keys.NextField, keys.ToggleSkip, keys.Save, keys.Cancel}
	if !e.isNew {
		bindings = append(bindings, keys.Delete)
	}

	sb.WriteString(helpLine(bindings...))

	return style.Modal.Render(sb.String())
}
