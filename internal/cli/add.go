package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/form"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

func newAddCmd(app *App) *cobra.Command {
	var f form.Form

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a todo",
		Args:  exactArgs(0, `todo add --title "Buy milk" --due 2025-03-01 [--description text]`),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, created, err := f.Submit(cmd.Context(), app.client)
			if err != nil {
				if isValidation(err) {
					return usageError{err: err}
				}
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %q (%s)", created.Todo.Title, created.Todo.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.DueDate, "due", "", "Due date as YYYY-MM-DD (required)")
	return cmd
}

func isValidation(err error) bool {
	return errors.Is(err, model.ErrEmptyTitle) ||
		errors.Is(err, model.ErrDueDateRequired) ||
		errors.Is(err, model.ErrBadDueDate)
}
