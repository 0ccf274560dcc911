package cmd

import (
	logger "github.com/PolarWolf314/dreamlog/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	DreamsCmd = &cobra.Command{
		Use:   "dreams",
		Short: "Record, browse and share dreams",
		Long: `Provides creating, editing, listing, searching, summarizing, exporting and
importing of journaled dreams.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing dreams command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	DreamsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	DreamsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	DreamsCmd.AddCommand(addCmd)
	DreamsCmd.AddCommand(editCmd)
	DreamsCmd.AddCommand(showCmd)
	DreamsCmd.AddCommand(listCmd)
	DreamsCmd.AddCommand(removeCmd)
	DreamsCmd.AddCommand(resetCmd)
	DreamsCmd.AddCommand(searchCmd)
	DreamsCmd.AddCommand(statsCmd)
	DreamsCmd.AddCommand(exportCmd)
	DreamsCmd.AddCommand(importCmd)
	DreamsCmd.AddCommand(logCmd)
}

// GetDreamsCmd returns the DreamsCmd for testing.
func GetDreamsCmd() *cobra.Command {
	return DreamsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetDreamFieldState()
	resetListCommandState()
	resetResetCommandState()
	resetSearchCommandState()
	resetStatsCommandState()
	resetExportCommandState()
	resetImportCommandState()
	resetLogCommandState()
	resetDreamsCobraFlagState()
}

// resetDreamsCobraFlagState marks every flag as unset again. Commands that
// apply only the flags given rely on this between test runs.
func resetDreamsCobraFlagState() {
	for _, c := range append([]*cobra.Command{DreamsCmd}, DreamsCmd.Commands()...) {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
