// Package errors provides typed error values for the dreamlog application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Import errors: content that cannot become records (ErrMalformedImport, ErrUnknownFormat)
//   - Crypto errors: packet failures (ErrAuthFailed, ErrCryptoUnavailable, ErrUnencryptedOutput)
//   - Storage errors: backend failures (ErrStorageRead, ErrStorageWrite, ErrStoreUnreadable)
//   - Record errors: missing dreams (ErrDreamNotFound)
//   - Config errors: ErrInvalidConfig, ErrUnknownBackend, ErrInvalidDateFormat
//   - File errors: file system issues (ErrNoFilesFound, ErrFileNotFound)
//
// ErrAuthFailed covers both a wrong password and tampered
// ciphertext. Callers must not try to tell the two apart.
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Import(ctx, st, opts)
//	if errors.Is(err, kerrors.ErrAuthFailed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading dream %s: %w", id, errors.ErrDreamNotFound)
package errors
