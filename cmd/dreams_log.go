package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/audit"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logDreamID   string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logDreamID, "dream", "", "only entries about this dream id")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logDreamID = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of journal changes, exports and imports.

Operations: create, edit, remove, reset, export, import, migrate.

Examples:
  dreamlog dreams log                            # View full log
  dreamlog dreams log -n 10                      # Last 10 entries
  dreamlog dreams log --reverse                  # Most recent first
  dreamlog dreams log --operation export,import  # Filter by operation
  dreamlog dreams log --since 2024-01-01         # Filter by date
  dreamlog dreams log --json                     # JSON output`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		DreamID:    logDreamID,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	spinner.FinalMSG = ""
	if len(result.Entries) == 0 {
		fmt.Println("No audit log entries found matching the filters.")
		return nil
	}

	if logJSON {
		return outputJSON(result.Entries)
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	if errors.Is(err, kerrors.ErrNoFilesFound) {
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once you add, change, export or import dreams.\n"
	}
	return formatDreamError(err)
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-8s  %s\n", datetime, e.Operation, details)
	}
}
