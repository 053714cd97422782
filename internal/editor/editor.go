// Package editor is the per-item toggle between viewing a todo and editing
// it inline.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/tada/internal/listsync"
	"github.com/idilsaglam/tada/internal/model"
)

// Mode of one item row.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

// ErrNotEditing is returned by Save outside of Editing.
var ErrNotEditing = errors.New("item is not being edited")

// Updater is the write side of the gateway the editor needs.
type Updater interface {
	Update(ctx context.Context, id string, d model.Draft) (model.Todo, error)
}

// Fields holds the draft as typed; DueDate is a YYYY-MM-DD calendar date.
type Fields struct {
	Title       string
	Description string
	DueDate     string
}

// Editor owns one item and, while Editing, its draft.
type Editor struct {
	Mode  Mode
	Item  model.Todo
	Draft Fields
}

func New(item model.Todo) Editor {
	return Editor{Item: item}
}

// Begin switches to Editing with the draft seeded from the item.
func (e Editor) Begin() Editor {
	e.Mode = Editing
	e.Draft = Fields{
		Title:       e.Item.Title,
		Description: e.Item.Description,
		DueDate:     model.FormatDueDate(e.Item.DueDate),
	}
	return e
}

// Cancel drops the draft and returns to Viewing.
func (e Editor) Cancel() Editor {
	e.Mode = Viewing
	e.Draft = Fields{}
	return e
}

// Save sends the draft. On success the editor returns to Viewing with the
// item replaced, and the returned event asks the list to refetch. On failure
// the editor stays in Editing with the draft intact.
func (e Editor) Save(ctx context.Context, u Updater) (Editor, *listsync.Updated, error) {
	if e.Mode != Editing {
		return e, nil, ErrNotEditing
	}
	due, err := model.ParseDueDate(e.Draft.DueDate)
	if err != nil {
		return e, nil, err
	}
	d := model.Draft{Title: e.Draft.Title, Description: e.Draft.Description, DueDate: due}
	if err := d.Validate(); err != nil {
		return e, nil, err
	}

	updated, err := u.Update(ctx, e.Item.ID, d)
	if err != nil {
		return e, nil, fmt.Errorf("update %s: %w", e.Item.ID, err)
	}
	e.Item = updated
	e = e.Cancel()
	return e, &listsync.Updated{Todo: updated}, nil
}
