package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldCount
)

// fieldSet is the three-input bar shared by add and edit.
type fieldSet struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newFieldSet(title, description, due string) fieldSet {
	var f fieldSet
	f.inputs[fieldTitle] = newInput("Title:       ", "What needs doing?", 200)
	f.inputs[fieldDescription] = newInput("Description: ", "optional", 500)
	f.inputs[fieldDue] = newInput("Due date:    ", model.DateLayout, len(model.DateLayout))
	f.inputs[fieldTitle].SetValue(title)
	f.inputs[fieldDescription].SetValue(description)
	f.inputs[fieldDue].SetValue(due)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f fieldSet) values() (title, description, due string) {
	return f.inputs[fieldTitle].Value(),
		f.inputs[fieldDescription].Value(),
		strings.TrimSpace(f.inputs[fieldDue].Value())
}

// move shifts focus by delta, wrapping around.
func (f *fieldSet) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f fieldSet) update(msg tea.Msg) (fieldSet, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f fieldSet) view(heading string) string {
	if f.err != "" {
		heading += "  " + errorStyle.Render(f.err)
	}
	lines := []string{heading}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	return barStyle.Render(strings.Join(lines, "\n"))
}
