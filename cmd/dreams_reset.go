package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/utils"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
}

// resetResetCommandState resets the reset command's global state for testing.
func resetResetCommandState() {
	resetYes = false
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every dream",
	Long: `Deletes every dream in the journal. This cannot be undone.

Export a backup first with ` + "`dreamlog dreams export --all`" + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting reset command")

		if !resetYes {
			ok, err := utils.Confirm(os.Stdin, os.Stdout, ui.Warning.Sprint("⚠")+" Delete every dream? This cannot be undone [y/N]: ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read confirmation: %v", err)
			}
			if !ok {
				fmt.Println(ui.Info.Sprint("ℹ") + " Nothing was deleted")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Clearing journal...", verbose)
		defer cleanup()

		j, err := openJournal()
		if err != nil {
			return finishWithError(spinner, err)
		}
		defer j.Close()

		removed, err := workflows.ResetDreams(context.Background(), j.store)
		if err != nil {
			return finishWithError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Removed %d dreams", removed)
		return nil
	},
}
