// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output and running the CLI in-process.
package shared

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/dreamlog/cmd"
	"github.com/PolarWolf314/dreamlog/internal/configs"
	"github.com/PolarWolf314/dreamlog/internal/dreams"
	logger "github.com/PolarWolf314/dreamlog/internal/logging"
	"github.com/PolarWolf314/dreamlog/internal/store"
	"github.com/spf13/cobra"
)

// SetupTestEnvironment points the config and data directories at a fresh
// temp directory, changes into it and clears any DREAMLOG_* overrides. It
// returns the temp directory.
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "dreamlog-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	originalSettings := configs.DreamlogSettings
	configs.DreamlogSettings = &configs.Settings{
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
	}

	for _, name := range []string{"BACKEND", "STORAGE_PATH", "STORAGE_KEY", "EXPORT_DIR", "PASSWORD"} {
		t.Setenv(configs.EnvPrefix+"_"+name, "")
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.DreamlogSettings = originalSettings
		cmd.ResetGlobalState()
		cmd.ResetConfigState()
		os.RemoveAll(tempDir)
	})

	return tempDir
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI creates a complete CLI instance for testing. args are the
// arguments after the program name, e.g. "dreams", "add", "--text", "x".
func CreateTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.ResetGlobalState()
	cmd.ResetConfigState()

	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := &cobra.Command{
		Use:   "dreamlog",
		Short: "dreamlog - A command-line dream journal.",
	}
	rootCmd.AddCommand(cmd.GetDreamsCmd())
	rootCmd.AddCommand(cmd.GetConfigCmd())
	rootCmd.SetArgs(args)

	if err := cmd.GetDreamsCmd().PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := cmd.GetDreamsCmd().PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// RunCLI runs the CLI with args and returns its combined output.
func RunCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return CaptureOutput(func() error {
		return CreateTestCLI(args, false, false).Execute()
	})
}

// MustRunCLI runs the CLI with args and fails the test on error.
func MustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	output, err := RunCLI(t, args...)
	if err != nil {
		t.Fatalf("Command %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}

// LoadDreams reads the journal the CLI writes to with the default config.
func LoadDreams(t *testing.T) []dreams.Dream {
	t.Helper()

	s, err := store.Open(store.Config{
		Backend: store.BackendFile,
		Path:    configs.DreamlogSettings.StoreDir(),
	})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	list, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load dreams: %v", err)
	}
	return list
}
