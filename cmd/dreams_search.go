package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	searchQuery workflows.SearchQuery
	searchJSON  bool
)

func init() {
	searchCmd.Flags().StringVar(&searchQuery.Hashtag, "hashtag", "", "match hashtag labels")
	searchCmd.Flags().StringVar(&searchQuery.Character, "character", "", "match characters")
	searchCmd.Flags().StringVar(&searchQuery.Location, "location", "", "match the location")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON array")
}

// resetSearchCommandState resets the search command's global state for testing.
func resetSearchCommandState() {
	searchQuery = workflows.SearchQuery{}
	searchJSON = false
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find dreams by hashtag, character or location",
	Long: `Finds dreams whose hashtags, characters or location contain the given text.
Matching ignores case. When several criteria are given, a dream must match all of them.

Examples:
  dreamlog dreams search --hashtag sea
  dreamlog dreams search --character alice --location house`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting search command")
		Logger.Debugf("Query: %+v", searchQuery)

		if searchQuery.IsEmpty() {
			fmt.Println(ui.Warning.Sprint("⚠") + " Nothing to search for")
			fmt.Println(ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--hashtag") + ", " + ui.Flag.Sprint("--character") + " or " + ui.Flag.Sprint("--location"))
			return nil
		}

		j, err := openJournal()
		if err != nil {
			return printError(err)
		}
		defer j.Close()

		list, err := workflows.ListDreams(context.Background(), j.store, workflows.ListOptions{})
		if err != nil {
			return printError(err)
		}

		results := workflows.SearchDreams(list, searchQuery)
		if searchJSON {
			return outputJSON(results)
		}

		if len(results) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " No dreams match")
			return nil
		}

		for _, d := range results {
			fmt.Println(formatDreamLine(d))
		}
		fmt.Println(ui.Muted.Sprint(fmt.Sprintf("%d of %d dreams", len(results), len(list))))
		return nil
	},
}
