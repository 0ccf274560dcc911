package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/utils"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	listTypes  string
	listNewest bool
	listLimit  int
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVar(&listTypes, "type", "", "only show these categories (comma-separated: lucid, nightmare, normal)")
	listCmd.Flags().BoolVar(&listNewest, "newest", false, "most recent sleep date first")
	listCmd.Flags().IntVarP(&listLimit, "number", "n", 0, "limit number of dreams shown")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listTypes = ""
	listNewest = false
	listLimit = 0
	listJSON = false
	showJSON = false
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded dreams",
	Long: `Lists the dreams in the journal, in the order they were recorded.

Examples:
  dreamlog dreams list
  dreamlog dreams list --type lucid,nightmare --newest -n 10
  dreamlog dreams list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		opts := workflows.ListOptions{Newest: listNewest, Limit: listLimit}
		for _, name := range utils.ParseList(listTypes) {
			t, err := dreams.ParseDreamType(name)
			if err != nil {
				return Logger.ErrorfAndReturn("Invalid --type: %v", err)
			}
			opts.Types = append(opts.Types, t)
		}

		j, err := openJournal()
		if err != nil {
			return printError(err)
		}
		defer j.Close()

		list, err := workflows.ListDreams(context.Background(), j.store, opts)
		if errors.Is(err, kerrors.ErrStoreUnreadable) {
			Logger.WarnfAlways("Stored dreams are unreadable; showing an empty journal")
		} else if err != nil {
			return printError(err)
		}

		Logger.Debugf("Listing %d dreams", len(list))
		if listJSON {
			return outputJSON(list)
		}

		if len(list) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " No dreams recorded yet")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("dreamlog dreams add --text \"...\"") + " to record one")
			return nil
		}

		for _, d := range list {
			fmt.Println(formatDreamLine(d))
		}
		return nil
	},
}
