package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	bindDreamFields(editCmd.Flags())
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a recorded dream",
	Long: `Changes the fields of a recorded dream. Only the flags you pass are changed.

The dream's id and the date it was recorded never change.

Examples:
  dreamlog dreams edit dream_1717171717171_abc123 --type nightmare
  dreamlog dreams edit dream_1717171717171_abc123 --tone "" --hashtags sea,sky`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		Logger.Infof("Starting edit command for %s", id)

		if !anyDreamFieldChanged(cmd) {
			fmt.Println(ui.Warning.Sprint("⚠") + " Nothing to change")
			fmt.Println(ui.Info.Sprint("→") + " Pass at least one field flag, see " + ui.Code.Sprint("dreamlog dreams edit --help"))
			return nil
		}

		spinner, cleanup := startSpinner("Saving changes...", verbose)
		defer cleanup()

		j, err := openJournal()
		if err != nil {
			return finishWithError(spinner, err)
		}
		defer j.Close()

		updated, err := workflows.EditDream(context.Background(), j.store, id, func(d *dreams.Dream) error {
			return applyDreamFields(cmd, d)
		})
		if err != nil {
			return finishWithError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Updated dream " + ui.Highlight.Sprint(updated.ID)
		return nil
	},
}
