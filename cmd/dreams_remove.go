package cmd

import (
	"context"

	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Delete one dream",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		Logger.Infof("Starting remove command for %s", id)

		spinner, cleanup := startSpinner("Removing dream...", verbose)
		defer cleanup()

		j, err := openJournal()
		if err != nil {
			return finishWithError(spinner, err)
		}
		defer j.Close()

		if err := workflows.DeleteDream(context.Background(), j.store, id); err != nil {
			return finishWithError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed dream " + ui.Highlight.Sprint(id)
		return nil
	},
}
