package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/editor"
	"github.com/idilsaglam/tada/internal/ui"
)

func newEditCmd(app *App) *cobra.Command {
	var fields editor.Fields

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo's title, description or due date",
		Long: "Fetches the todo, applies the given flags to it and sends the whole\n" +
			"todo back. Fields without a flag keep their current value.",
		Args: exactArgs(1, `todo edit <id> [--title text] [--description text] [--due YYYY-MM-DD]`),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("description") && !flags.Changed("due") {
				return usagef("nothing to change: pass --title, --description or --due")
			}

			current, err := app.client.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ed := editor.New(current).Begin()
			if flags.Changed("title") {
				ed.Draft.Title = fields.Title
			}
			if flags.Changed("description") {
				ed.Draft.Description = fields.Description
			}
			if flags.Changed("due") {
				ed.Draft.DueDate = fields.DueDate
			}

			_, updated, err := ed.Save(cmd.Context(), app.client)
			if err != nil {
				if isValidation(err) {
					return usageError{err: err}
				}
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("updated %q (%s)", updated.Todo.Title, updated.Todo.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Title, "title", "", "New title")
	cmd.Flags().StringVar(&fields.Description, "description", "", "New description (empty clears it)")
	cmd.Flags().StringVar(&fields.DueDate, "due", "", "New due date as YYYY-MM-DD")
	return cmd
}
