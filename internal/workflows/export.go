package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/audit"
	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/secrets"
	"github.com/PolarWolf314/dreamlog/internal/store"
)

// ExportState is a step of the export flow.
type ExportState int

const (
	ExportIdle ExportState = iota
	ExportAwaitingPassword
	ExportPackaging
	ExportDelivering
)

func (s ExportState) String() string {
	switch s {
	case ExportAwaitingPassword:
		return "awaiting-password"
	case ExportPackaging:
		return "packaging"
	case ExportDelivering:
		return "delivering"
	}
	return "idle"
}

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// DreamID is the record to export. Ignored when All is set.
	DreamID string

	// All exports the whole collection as a single backup file.
	All bool

	// Encrypt protects the export with a password from Prompter.
	Encrypt bool

	// Prompter supplies the password when encrypting. A nil prompter declines.
	Prompter PasswordPrompter

	// Deliverer receives the packaged data.
	Deliverer Deliverer

	// Observer, if set, is told about every state change.
	Observer func(ExportState)

	// Now stamps backup file names. Defaults to time.Now.
	Now func() time.Time
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// Filename is the suggested name of the delivered file.
	Filename string

	// Encrypted reports whether the delivered data is a packet.
	Encrypted bool

	// Cancelled is set when the password was declined. Nothing was delivered.
	Cancelled bool

	// RecordsCount is the number of records in the export.
	RecordsCount int

	// Size is the number of bytes delivered.
	Size int
}

// ExportPlain packages d as indented JSON named <id>.json.
func ExportPlain(d dreams.Dream) ([]byte, string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encoding dream: %w", err)
	}
	return data, exportFilename(d.ID, false), nil
}

// ExportEncrypted packages d as a password-protected packet named
// <id>.enc.json.
//
// Returns ErrUnencryptedOutput if the result does not read back as a packet.
func ExportEncrypted(ctx context.Context, d dreams.Dream, password string) ([]byte, string, error) {
	data, err := encryptValue(ctx, d, password)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename(d.ID, true), nil
}

// encryptValue serializes v compactly, encrypts it and checks that the
// output is recognized as a packet before returning it.
func encryptValue(ctx context.Context, v any, password string) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}

	packet, err := secrets.DefaultEngine.EncryptContext(ctx, string(plaintext), password)
	if err != nil {
		return nil, err
	}

	data, err := packet.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encoding packet: %w", err)
	}

	env, err := secrets.Sniff(data)
	if err != nil || env.Format != secrets.FormatEncrypted {
		return nil, kerrors.ErrUnencryptedOutput
	}

	return data, nil
}

func exportFilename(id string, encrypted bool) string {
	if id == "" {
		id = "dream"
	}
	if encrypted {
		return id + ".enc.json"
	}
	return id + ".json"
}

func backupFilename(now time.Time, encrypted bool) string {
	return exportFilename(fmt.Sprintf("dreams-%s", now.Format("2006-01-02")), encrypted)
}

// Export packages one record, or the whole collection, and delivers it.
//
// When encrypting, the password is requested first; declining it returns a
// result with Cancelled set and no side effects.
//
// Returns ErrDreamNotFound if the record does not exist or the collection is
// empty.
// Returns ErrStorageRead or ErrStoreUnreadable if the collection cannot be loaded.
// Returns ErrCryptoUnavailable or ErrUnencryptedOutput if encryption fails.
func Export(ctx context.Context, s *store.Store, opts ExportOptions) (*ExportResult, error) {
	observe := opts.Observer
	if observe == nil {
		observe = func(ExportState) {}
	}
	defer observe(ExportIdle)

	list, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	var (
		payload  any
		single   dreams.Dream
		count    int
		filename string
	)
	if opts.All {
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: the journal is empty", kerrors.ErrDreamNotFound)
		}
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		payload, count = list, len(list)
		filename = backupFilename(now(), opts.Encrypt)
	} else {
		d, i := store.Find(list, opts.DreamID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrDreamNotFound, opts.DreamID)
		}
		single, payload, count = d, d, 1
		filename = exportFilename(d.ID, opts.Encrypt)
	}

	var password string
	if opts.Encrypt {
		observe(ExportAwaitingPassword)
		if opts.Prompter == nil {
			return &ExportResult{Cancelled: true}, nil
		}
		var ok bool
		password, ok, err = opts.Prompter.Ask(ctx, "Password to protect "+filename)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &ExportResult{Cancelled: true}, nil
		}
	}

	observe(ExportPackaging)
	var data []byte
	switch {
	case opts.Encrypt:
		data, err = encryptValue(ctx, payload, password)
	case opts.All:
		data, err = json.MarshalIndent(payload, "", "  ")
	default:
		data, _, err = ExportPlain(single)
	}
	if err != nil {
		return nil, err
	}

	observe(ExportDelivering)
	if opts.Deliverer == nil {
		return nil, fmt.Errorf("no destination for export")
	}
	if err := opts.Deliverer.Deliver(ctx, data, filename); err != nil {
		return nil, fmt.Errorf("delivering export: %w", err)
	}

	auditEntry := audit.LogWithInstall("export")
	auditEntry.DreamID = single.ID
	auditEntry.Filename = filename
	auditEntry.Encrypted = opts.Encrypt
	auditEntry.RecordsCount = count
	audit.Log(auditEntry)

	return &ExportResult{
		Filename:     filename,
		Encrypted:    opts.Encrypt,
		RecordsCount: count,
		Size:         len(data),
	}, nil
}
