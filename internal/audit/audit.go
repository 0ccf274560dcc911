package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/configs"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp   string `json:"ts"`   // RFC3339 with microseconds.
	InstallUUID string `json:"uuid"` // Install performing the action.
	Operation   string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	DreamID      string `json:"dream_id,omitempty"`      // For add/edit/remove.
	Filename     string `json:"filename,omitempty"`      // For export/import.
	Encrypted    bool   `json:"encrypted,omitempty"`     // For export/import.
	RecordsCount int    `json:"records_count,omitempty"` // For export/import/reset.
	Added        int    `json:"added,omitempty"`         // For import.
	Replaced     int    `json:"replaced,omitempty"`      // For import.
	Backend      string `json:"backend,omitempty"`       // Storage backend in use.
}

// Log appends an entry to the audit log.
// Failures are swallowed: an operation never fails because auditing did.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithInstall returns an entry for op with the install UUID and storage
// backend filled in from the config file.
func LogWithInstall(op string) Entry {
	entry := Entry{Operation: op}

	config, err := configs.LoadConfig()
	if err != nil {
		return entry
	}
	entry.InstallUUID = config.Install.UUID
	entry.Backend = config.Storage.Backend

	return entry
}

// LogPath returns the path to the audit log file, or "" when no data
// directory is known.
func LogPath() string {
	if configs.DreamlogSettings == nil || configs.DreamlogSettings.DataDir == "" {
		return ""
	}
	return configs.DreamlogSettings.AuditPath()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// ParseTimestamp parses an entry timestamp, accepting plain RFC3339 as well.
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}
