// Package form collects a new todo and submits it to the collection.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/tada/internal/listsync"
	"github.com/idilsaglam/tada/internal/model"
)

// Creator is the create side of the gateway.
type Creator interface {
	Create(ctx context.Context, d model.Draft) (model.Todo, error)
}

// Form holds the fields as typed. DueDate is a YYYY-MM-DD calendar date.
type Form struct {
	Title       string
	Description string
	DueDate     string
}

// Draft validates the fields and normalizes the due date to local midnight.
func (f Form) Draft() (model.Draft, error) {
	d := model.Draft{Title: f.Title, Description: f.Description}
	if err := d.Validate(); err != nil && !errors.Is(err, model.ErrDueDateRequired) {
		return model.Draft{}, err
	}
	due, err := model.ParseDueDate(f.DueDate)
	if err != nil {
		return model.Draft{}, err
	}
	d.DueDate = due
	return d, nil
}

// Submit creates the todo. Invalid fields never reach the gateway. Only a
// successful create clears the form and yields the Created event the list
// uses to refetch; a failed one keeps the fields for another attempt.
func (f Form) Submit(ctx context.Context, c Creator) (Form, *listsync.Created, error) {
	d, err := f.Draft()
	if err != nil {
		return f, nil, err
	}
	created, err := c.Create(ctx, d)
	if err != nil {
		return f, nil, fmt.Errorf("create todo: %w", err)
	}
	return Form{}, &listsync.Created{Todo: created}, nil
}
