package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

// todoItem adapts model.Todo to bubbles/list.Item
type todoItem struct {
	todo model.Todo
}

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return i.todo.Description }
func (i todoItem) FilterValue() string { return i.todo.Title }

func toListItems(todos []model.Todo) []list.Item {
	out := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoItem{todo: t})
	}
	return out
}

// itemDelegate renders a todo on two lines: title, then due date and
// description.
type itemDelegate struct {
	now func() time.Time
}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}

	prefix := "  "
	title := it.todo.Title
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
		title = titleStyle.Render(title)
	}

	due := model.FormatDueDate(it.todo.DueDate)
	dueStyled := dueStyle.Render("due " + due)
	if d.overdue(it.todo.DueDate) {
		dueStyled = overdueStyle.Render("due " + due)
	}
	if due == "" {
		dueStyled = mutedStyle.Render("no due date")
	}
	detail := dueStyled
	if it.todo.Description != "" {
		detail += "  " + mutedStyle.Render(it.todo.Description)
	}

	fmt.Fprintln(w, prefix+title)
	fmt.Fprint(w, "  "+detail)
}

// overdue reports whether due is a calendar day before today.
func (d itemDelegate) overdue(due time.Time) bool {
	if due.IsZero() {
		return false
	}
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	return model.FormatDueDate(due) < model.FormatDueDate(now())
}
