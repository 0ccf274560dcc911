package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the record as JSON")
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display one dream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command for %s", args[0])

		j, err := openJournal()
		if err != nil {
			return printError(err)
		}
		defer j.Close()

		d, err := workflows.GetDream(context.Background(), j.store, args[0])
		if err != nil {
			return printError(err)
		}

		if showJSON {
			return outputJSON(d)
		}
		fmt.Print(formatDream(*d))
		return nil
	},
}

// printError prints err for commands that run without a spinner.
func printError(err error) error {
	fmt.Println(formatDreamError(err))
	if isUnexpectedError(err) {
		return err
	}
	return nil
}
