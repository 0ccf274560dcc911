package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/audit"
	"github.com/PolarWolf314/dreamlog/internal/codec"
	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/secrets"
	"github.com/PolarWolf314/dreamlog/internal/store"
)

// ImportStatus is how an import ended when it did not fail.
type ImportStatus int

const (
	// ImportCompleted means records were merged (or would be, on a dry run).
	ImportCompleted ImportStatus = iota
	// ImportCancelled means the password was declined.
	ImportCancelled
	// ImportNoValidRecords means the content held nothing that normalizes to a dream.
	ImportNoValidRecords
)

func (s ImportStatus) String() string {
	switch s {
	case ImportCancelled:
		return "cancelled"
	case ImportNoValidRecords:
		return "no-valid-records"
	}
	return "completed"
}

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Data is the raw file content.
	Data []byte

	// Source names the content in prompts and the audit log.
	Source string

	// Prompter supplies the password for encrypted content. A nil prompter declines.
	Prompter PasswordPrompter

	// DryRun computes the merge without saving it.
	DryRun bool
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Status ImportStatus

	// Encrypted reports whether the content was a packet.
	Encrypted bool

	// Records are the normalized records found in the content.
	Records []dreams.Dream

	// Added and Replaced count records by id against the existing collection.
	Added    int
	Replaced int

	// Total is the size of the collection after the merge.
	Total int

	// DryRun is set when nothing was saved.
	DryRun bool
}

// Import merges exported records into the store by id. Incoming records
// replace existing ones with the same id; the rest are appended.
//
// Plain content is parsed directly. Encrypted content needs a password;
// declining it returns ImportCancelled and leaves the store untouched, as do
// content with no valid records and every error below.
//
// Returns ErrMalformedImport if the content (or decrypted content) is not JSON.
// Returns ErrUnknownFormat if the content is an envelope of another version.
// Returns ErrAuthFailed if the password is wrong or the packet was altered.
// Returns ErrStorageRead, ErrStoreUnreadable or ErrStorageWrite on storage failures.
func Import(ctx context.Context, s *store.Store, opts ImportOptions) (*ImportResult, error) {
	env, err := secrets.Sniff(opts.Data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{DryRun: opts.DryRun}

	switch env.Format {
	case secrets.FormatUnknownEnvelope:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownFormat, env.Discriminator)

	case secrets.FormatEncrypted:
		result.Encrypted = true

		password, ok, err := askImportPassword(ctx, opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Status = ImportCancelled
			return result, nil
		}

		plaintext, err := secrets.DefaultEngine.DecryptContext(ctx, env.Packet, password)
		if err != nil {
			return nil, err
		}

		result.Records, err = codec.DecodeRecords([]byte(plaintext))
		if err != nil {
			return nil, err
		}

	default:
		result.Records = codec.Records(env.Value)
	}

	if len(result.Records) == 0 {
		result.Status = ImportNoValidRecords
		return result, nil
	}

	existing, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	merged, added, replaced := store.Merge(existing, result.Records)
	result.Added, result.Replaced, result.Total = added, replaced, len(merged)

	if opts.DryRun {
		return result, nil
	}

	if err := s.Save(ctx, merged); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithInstall("import")
	auditEntry.Filename = opts.Source
	auditEntry.Encrypted = result.Encrypted
	auditEntry.RecordsCount = len(result.Records)
	auditEntry.Added = added
	auditEntry.Replaced = replaced
	audit.Log(auditEntry)

	return result, nil
}

func askImportPassword(ctx context.Context, opts ImportOptions) (string, bool, error) {
	if opts.Prompter == nil {
		return "", false, nil
	}
	label := "Password"
	if opts.Source != "" {
		label = "Password for " + opts.Source
	}
	return opts.Prompter.Ask(ctx, label)
}
