// Package workflows provides high-level orchestration for dreamlog commands.
//
// Workflows coordinate the store, the codec, the crypto engine and the audit
// log to implement complete user-facing features. Each workflow handles a
// single command's logic, independent of CLI concerns like flag parsing,
// spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds the collaborators (store, prompter, deliverer)
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading and saving the collection
//   - Validating that the targeted dream exists
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - CreateDream, EditDream, DeleteDream, ResetDreams, GetDream, ListDreams
//   - SearchDreams, ComputeStats: pure functions over a loaded list
//   - Export: packages one dream (or all) as plain JSON or an encrypted packet
//   - Import: merges plain or encrypted exports into the journal by id
//   - Log: reads and filters the audit log
//
// # Export and Import
//
// Export moves through Idle, AwaitingPassword (encrypted only), Packaging and
// Delivering, then back to Idle. Passwords come from a [PasswordPrompter] so
// a terminal prompt, a fixed value, or an [AsyncPrompter] driven by another
// goroutine all share one code path. Packaged data goes to a [Deliverer].
//
// Declining a password is an outcome, not an error: Export reports
// Cancelled and Import reports ImportCancelled, and neither touches the store.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Import(ctx, st, opts)
//	if errors.Is(err, kerrors.ErrAuthFailed) {
//	    // Wrong password or corrupted file
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Crypto runs on its own goroutine and is abandoned when the context ends.
package workflows
