package cmd

import (
	"context"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	bindDreamFields(addCmd.Flags())
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new dream",
	Long: `Records a new dream in the journal.

The dream gets a fresh id and today's date. The sleep date defaults to now.

Examples:
  dreamlog dreams add --text "Flying over the sea" --type lucid
  dreamlog dreams add -t "Chased through a maze" --type nightmare --tone negative --hashtags maze,run
  echo "Long dream..." | dreamlog dreams add --text - --sleep-date 2024-03-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")

		draft := dreams.Dream{}
		if err := applyDreamFields(cmd, &draft); err != nil {
			return Logger.ErrorfAndReturn("Invalid dream: %v", err)
		}

		spinner, cleanup := startSpinner("Saving dream...", verbose)
		defer cleanup()

		j, err := openJournal()
		if err != nil {
			return finishWithError(spinner, err)
		}
		defer j.Close()

		created, err := workflows.CreateDream(context.Background(), j.store, draft)
		if err != nil {
			return finishWithError(spinner, err)
		}

		Logger.Infof("Created dream %s", created.ID)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Recorded dream " + ui.Highlight.Sprint(created.ID)
		return nil
	},
}
