package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	type TestStruct struct {
		Backend string
		Dir     string
	}

	originalData := TestStruct{Backend: "sqlite", Dir: "/tmp/exports"}

	if err := SaveTOML(testFile, originalData); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	if err := LoadTOML(testFile, &loadedData); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loadedData != originalData {
		t.Errorf("Expected %+v, got %+v", originalData, loadedData)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	tempDir := t.TempDir()

	var data struct{ Name string }
	if err := LoadTOML(filepath.Join(tempDir, "nonexistent.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "typo.toml")
	if err := os.WriteFile(testFile, []byte("Name = \"a\"\nNmae = \"b\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var data struct{ Name string }
	err := LoadTOML(testFile, &data)
	if err == nil || !strings.Contains(err.Error(), "Nmae") {
		t.Errorf("Expected unknown key error naming Nmae, got %v", err)
	}
}

func TestSaveTOMLCreatesDirectoryWithPrivateMode(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "subdir", "test.toml")

	if err := SaveTOML(testFile, struct{ Name string }{Name: "Test"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("File was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(testFile))
	if len(entries) != 1 {
		t.Errorf("Expected no leftover temp files, found %d entries", len(entries))
	}
}
