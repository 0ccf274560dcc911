package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/utils"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "show what would be imported without making changes")
}

// resetImportCommandState resets the import command's global state for testing.
func resetImportCommandState() {
	importDryRun = false
}

var importCmd = &cobra.Command{
	Use:   "import <file|dir|glob>... | -",
	Short: "Import dreams from exported files",
	Long: `Imports dreams from files written by export, plain or encrypted.

Each argument may be a file, a directory (every .json file in it) or a glob
pattern such as "exports/**/*.json". Use - to read one export from stdin.

Dreams whose id already exists replace the stored dream; others are added.
Encrypted files ask for their password; set DREAMLOG_PASSWORD to supply it
without a terminal. Declining the password skips that file.

Examples:
  dreamlog dreams import dream_1717171717171_abc123.enc.json
  dreamlog dreams import ~/Downloads/*.json --dry-run
  dreamlog dreams import backups/
  cat dream.json | dreamlog dreams import -`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		Logger.Debugf("Args: %v, dry-run=%t", args, importDryRun)

		fromStdin := len(args) == 1 && args[0] == "-"

		var files []string
		if !fromStdin {
			cwd, err := os.Getwd()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to get working directory: %v", err)
			}
			files, err = utils.ResolveImportFiles(args, cwd)
			if err != nil {
				return printError(err)
			}
			Logger.Infof("Resolved %d files:%s", len(files), utils.FormatPaths(files))
		}

		j, err := openJournal()
		if err != nil {
			return printError(err)
		}
		defer j.Close()

		prompter := passwordPrompter(j.env.Password, fromStdin)

		if fromStdin {
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("%v", err)
			}
			return importOne(j, prompter, "stdin", data)
		}

		var failed error
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Println(ui.Error.Sprint("✗") + " Failed to read " + ui.Path.Sprint(path) + ": " + err.Error())
				failed = err
				continue
			}
			if err := importOne(j, prompter, filepath.Base(path), data); err != nil {
				failed = err
			}
		}
		return failed
	},
}

// importOne imports one export and prints its outcome. It returns an error
// only for failures that should fail the command.
func importOne(j *journal, prompter workflows.PasswordPrompter, source string, data []byte) error {
	spinner, cleanup := startSpinner("Importing "+source+"...", verbose)
	defer cleanup()

	// The password prompt must not share the line with the spinner.
	running := !verbose && !debug
	prompt := prompter
	if prompter != nil && running {
		prompt = workflows.PromptFunc(func(ctx context.Context, label string) (string, bool, error) {
			spinner.Stop()
			defer spinner.Start()
			return prompter.Ask(ctx, label)
		})
	}

	result, err := workflows.Import(context.Background(), j.store, workflows.ImportOptions{
		Data:     data,
		Source:   source,
		Prompter: prompt,
		DryRun:   importDryRun,
	})
	if err != nil {
		Logger.Debugf("Import of %s failed: %v", source, err)
		return finishWithError(spinner, fmt.Errorf("%s: %w", source, err))
	}

	switch result.Status {
	case workflows.ImportCancelled:
		spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Skipped " + ui.Path.Sprint(source) + ": no password given"
		return nil
	case workflows.ImportNoValidRecords:
		spinner.FinalMSG = ui.Warning.Sprint("⚠") + " " + ui.Path.Sprint(source) + " holds no dreams"
		return nil
	}

	Logger.Infof("Imported %d records from %s (encrypted=%t)", len(result.Records), source, result.Encrypted)

	verb := "Imported"
	if result.DryRun {
		verb = "Would import"
	}
	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" %s %s from ", verb, pluralDreams(len(result.Records))) + ui.Path.Sprint(source) +
		" " + ui.Muted.Sprint(fmt.Sprintf("%d added, %d replaced, %d total", result.Added, result.Replaced, result.Total))
	return nil
}
