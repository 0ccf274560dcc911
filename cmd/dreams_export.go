package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	exportAll     bool
	exportEncrypt bool
	exportDir     string
	exportStdout  bool
)

func init() {
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export the whole journal as one backup file")
	exportCmd.Flags().BoolVarP(&exportEncrypt, "encrypt", "e", false, "protect the export with a password")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "directory to write the file to (default: export.dir from the config)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "write the export to stdout instead of a file")
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportAll = false
	exportEncrypt = false
	exportDir = ""
	exportStdout = false
}

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a dream to a file",
	Long: `Exports one dream, or the whole journal with --all, as a JSON file.

With --encrypt the file is protected with a password (PBKDF2-SHA256 and
AES-256-GCM). You are asked for the password; set DREAMLOG_PASSWORD to
supply it without a terminal. Declining the password exports nothing.

Files are named <id>.json or <id>.enc.json, and backups
dreams-YYYY-MM-DD.json or dreams-YYYY-MM-DD.enc.json.

Examples:
  dreamlog dreams export dream_1717171717171_abc123
  dreamlog dreams export dream_1717171717171_abc123 --encrypt --dir ~/Desktop
  dreamlog dreams export --all --encrypt
  dreamlog dreams export dream_1717171717171_abc123 --stdout | dreamlog dreams import -`,
	Args: func(cmd *cobra.Command, args []string) error {
		if exportAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		Logger.Debugf("Flags: all=%t, encrypt=%t, dir=%q, stdout=%t", exportAll, exportEncrypt, exportDir, exportStdout)

		// The spinner and final message would corrupt the export on stdout.
		quiet := verbose || exportStdout
		spinner, cleanup := startSpinner("Exporting...", quiet)
		defer cleanup()

		j, err := openJournal()
		if err != nil {
			return finishExport(spinner, finishWithError(spinner, err))
		}
		defer j.Close()

		opts := workflows.ExportOptions{
			All:      exportAll,
			Encrypt:  exportEncrypt,
			Observer: pauseSpinner(spinner, !quiet && !debug),
		}
		if !exportAll {
			opts.DreamID = args[0]
		}
		if exportEncrypt {
			opts.Prompter = passwordPrompter(j.env.Password, exportStdout)
		}

		dirDeliverer := &workflows.DirDeliverer{Dir: exportDir}
		if dirDeliverer.Dir == "" {
			dirDeliverer.Dir = j.config.Export.Dir
		}
		if exportStdout {
			opts.Deliverer = workflows.WriterDeliverer{W: os.Stdout}
		} else {
			opts.Deliverer = dirDeliverer
		}

		result, err := workflows.Export(context.Background(), j.store, opts)
		if err != nil {
			return finishExport(spinner, finishWithError(spinner, err))
		}

		if result.Cancelled {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Export cancelled: no password given"
			return finishExport(spinner, nil)
		}

		Logger.Infof("Exported %d dreams (%d bytes)", result.RecordsCount, result.Size)

		if exportStdout {
			spinner.FinalMSG = ""
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + " Exported " + pluralDreams(result.RecordsCount) + " to " + ui.Path.Sprint(dirDeliverer.Written)
		if result.Encrypted {
			finalMessage += "\n" + ui.Info.Sprint("→") + " The file is encrypted; you will need the same password to import it"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

// finishExport moves the final message to stderr when the export itself
// goes to stdout.
func finishExport(s *spinner.Spinner, err error) error {
	if exportStdout && s.FinalMSG != "" {
		fmt.Fprintln(os.Stderr, s.FinalMSG)
		s.FinalMSG = ""
	}
	return err
}

func pluralDreams(n int) string {
	if n == 1 {
		return "1 dream"
	}
	return fmt.Sprintf("%d dreams", n)
}
