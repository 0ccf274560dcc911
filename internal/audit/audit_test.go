package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/dreamlog/internal/configs"
)

// withDataDir points the settings at a temp data dir and returns it.
func withDataDir(t *testing.T) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "dreamlog-audit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	original := configs.DreamlogSettings
	configs.DreamlogSettings = &configs.Settings{
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
	}
	t.Cleanup(func() {
		configs.DreamlogSettings = original
		os.RemoveAll(tempDir)
	})

	return configs.DreamlogSettings.DataDir
}

func readLines(t *testing.T, dataDir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dataDir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLog_CreatesFile(t *testing.T) {
	dataDir := withDataDir(t)

	Log(Entry{InstallUUID: "test-uuid", Operation: "add", DreamID: "dream_1"})

	info, err := os.Stat(filepath.Join(dataDir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	dataDir := withDataDir(t)

	Log(Entry{Operation: "add"})
	Log(Entry{Operation: "edit"})
	Log(Entry{Operation: "export"})

	if lines := readLines(t, dataDir); len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSON(t *testing.T) {
	dataDir := withDataDir(t)

	Log(Entry{
		InstallUUID:  "test-uuid",
		Operation:    "import",
		Filename:     "dream_1.enc.json",
		Encrypted:    true,
		RecordsCount: 3,
		Added:        2,
		Replaced:     1,
	})

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t, dataDir)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.Operation != "import" || parsed.Filename != "dream_1.enc.json" {
		t.Errorf("Unexpected entry %+v", parsed)
	}
	if !parsed.Encrypted || parsed.Added != 2 || parsed.Replaced != 1 {
		t.Errorf("Expected import counts to survive, got %+v", parsed)
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	dataDir := withDataDir(t)

	Log(Entry{Operation: "reset"})

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t, dataDir)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if !strings.HasSuffix(parsed.Timestamp, "Z") || !strings.Contains(parsed.Timestamp, ".") {
		t.Errorf("Expected UTC timestamp with microseconds, got %s", parsed.Timestamp)
	}
	if _, err := ParseTimestamp(parsed.Timestamp); err != nil {
		t.Errorf("Timestamp does not parse: %v", err)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	dataDir := withDataDir(t)

	Log(Entry{Operation: "reset"})

	line := readLines(t, dataDir)[0]
	for _, field := range []string{`"dream_id"`, `"filename"`, `"encrypted"`, `"added"`} {
		if strings.Contains(line, field) {
			t.Errorf("Empty field %s should be omitted: %s", field, line)
		}
	}
}

func TestLog_NoDataDir(t *testing.T) {
	original := configs.DreamlogSettings
	configs.DreamlogSettings = &configs.Settings{}
	defer func() {
		configs.DreamlogSettings = original
	}()

	Log(Entry{Operation: "add"})

	if LogPath() != "" {
		t.Errorf("Expected empty log path, got %s", LogPath())
	}
}

func TestLogWithInstall(t *testing.T) {
	withDataDir(t)

	config, err := configs.EnsureConfig()
	if err != nil {
		t.Fatalf("Failed to ensure config: %v", err)
	}

	entry := LogWithInstall("export")
	if entry.Operation != "export" {
		t.Errorf("Expected op export, got %s", entry.Operation)
	}
	if entry.InstallUUID != config.Install.UUID {
		t.Errorf("Expected uuid %s, got %s", config.Install.UUID, entry.InstallUUID)
	}
	if entry.Backend != config.Storage.Backend {
		t.Errorf("Expected backend %s, got %s", config.Storage.Backend, entry.Backend)
	}
}

func TestReadEntries(t *testing.T) {
	withDataDir(t)

	entries, err := ReadEntries()
	if err != nil || entries != nil {
		t.Fatalf("Expected no entries before logging, got %v, %v", entries, err)
	}

	Log(Entry{Operation: "add", DreamID: "a"})
	Log(Entry{Operation: "remove", DreamID: "a"})

	entries, err = ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[1].Operation != "remove" {
		t.Errorf("Expected add then remove, got %+v", entries)
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","uuid":"u","op":"add"}
{"ts":"2024-01-15T10:35:00.456789Z","uuid":"u","op":"export"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "add" || entries[1].Operation != "export" {
		t.Errorf("Unexpected operations %s, %s", entries[0].Operation, entries[1].Operation)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","op":"add"}
this is not valid json
{"ts":"2024-01-15T10:35:00.456789Z","op":"edit"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}
