package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/ui"
)

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    exactArgs(1, "todo rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.client.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "deleted "+args[0])
			return nil
		},
	}
}
