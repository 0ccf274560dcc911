package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/configs"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/store"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/utils"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/awnumar/memguard"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
// Uses the global debug flag from the dreams command.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	return startSpinnerWithFlags(message, verbose, debug)
}

// startSpinnerWithFlags creates and starts a spinner with explicit verbose and debug flags.
// Config commands use it with their own flag variables.
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debugFlag
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops s while the user types a password and resumes it once
// packaging starts. It is meant to be used as an export observer. A spinner
// that is not running is left alone.
func pauseSpinner(s *spinner.Spinner, running bool) func(workflows.ExportState) {
	return func(state workflows.ExportState) {
		Logger.Debugf("Export state: %s", state)
		if !running {
			return
		}
		switch state {
		case workflows.ExportAwaitingPassword:
			s.Stop()
		case workflows.ExportPackaging:
			s.Start()
		}
	}
}

// journal is the opened store together with the settings it came from.
type journal struct {
	store  *store.Store
	config *configs.Config
	env    configs.Env
}

// openJournal loads the config (creating the install UUID on first use),
// applies environment overrides and opens the configured backend.
func openJournal() (*journal, error) {
	Logger.Debugf("Loading config from %s", configs.DreamlogSettings.ConfigPath())
	config, err := configs.EnsureConfig()
	if err != nil {
		return nil, err
	}

	env, err := configs.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}

	resolved, err := configs.Resolve(config, env)
	if err != nil {
		return nil, err
	}

	Logger.Infof("Opening %s store at %s (key %q)", resolved.Storage.Backend, resolved.Storage.Path, resolved.Storage.Key)
	s, err := store.Open(store.Config{
		Backend: resolved.Storage.Backend,
		Path:    resolved.Storage.Path,
		Key:     resolved.Storage.Key,
		Logger:  Logger,
	})
	if err != nil {
		return nil, err
	}

	return &journal{store: s, config: resolved, env: env}, nil
}

// Close closes the store, logging instead of failing the command.
func (j *journal) Close() {
	if err := j.store.Close(); err != nil {
		Logger.Warnf("Failed to close store: %v", err)
	}
}

// terminalPrompter reads passwords without echo. When useTTY is set the
// password comes from /dev/tty so stdin stays free for piped content.
func terminalPrompter(useTTY bool) workflows.PasswordPrompter {
	return workflows.PromptFunc(func(ctx context.Context, label string) (string, bool, error) {
		read := utils.ReadPassphrase
		if useTTY {
			read = utils.ReadPassphraseFromTTY
		}

		raw, err := read(label + ": ")
		if err != nil {
			return "", false, err
		}
		defer memguard.WipeBytes(raw)

		return string(raw), len(raw) > 0, nil
	})
}

// passwordPrompter picks the password source for a command. An explicit
// password (from a flag or the environment) wins over the terminal.
func passwordPrompter(password string, stdinBusy bool) workflows.PasswordPrompter {
	if password != "" {
		Logger.Debugf("Using password supplied on the command line or environment")
		return workflows.StaticPassword(password)
	}
	if stdinBusy || !utils.IsTerminal() {
		if utils.IsTTYAvailable() {
			return terminalPrompter(true)
		}
		Logger.Warnf("No terminal available for password entry")
		return nil
	}
	return terminalPrompter(false)
}

// formatDreamError formats a workflow error for display to the user.
func formatDreamError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrDreamNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("dreamlog dreams list") + " to see stored dreams"

	case errors.Is(err, kerrors.ErrStoreUnreadable):
		return ui.Error.Sprint("✗") + " Stored dreams could not be decoded\n" +
			ui.Info.Sprint("→") + " Restore the store from a backup, or run " + ui.Code.Sprint("dreamlog dreams reset") + " to start over"

	case errors.Is(err, kerrors.ErrInvalidConfig), errors.Is(err, kerrors.ErrUnknownBackend):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check " + ui.Path.Sprint(configs.DreamlogSettings.ConfigPath()) + " or run " + ui.Code.Sprint("dreamlog config show")

	case errors.Is(err, kerrors.ErrAuthFailed):
		return ui.Error.Sprint("✗") + " Decryption failed: wrong password or corrupted file"

	case errors.Is(err, kerrors.ErrUnknownFormat):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The file was exported by a newer or different version"

	case errors.Is(err, kerrors.ErrMalformedImport):
		return ui.Error.Sprint("✗") + " The file is not a dream export: " + err.Error()

	case errors.Is(err, kerrors.ErrFileNotFound), errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrStorageRead), errors.Is(err, kerrors.ErrStorageWrite):
		return ui.Error.Sprint("✗") + " Storage failure: " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrDreamNotFound),
		errors.Is(err, kerrors.ErrAuthFailed),
		errors.Is(err, kerrors.ErrUnknownFormat),
		errors.Is(err, kerrors.ErrMalformedImport),
		errors.Is(err, kerrors.ErrFileNotFound),
		errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidConfig),
		errors.Is(err, kerrors.ErrUnknownBackend),
		errors.Is(err, kerrors.ErrStoreUnreadable):
		return false
	default:
		return true
	}
}

// finishWithError sets the spinner's final message for err and returns err
// only when it should fail the command.
func finishWithError(s *spinner.Spinner, err error) error {
	s.FinalMSG = formatDreamError(err)
	if isUnexpectedError(err) {
		return err
	}
	return nil
}
