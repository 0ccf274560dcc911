package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PolarWolf314/dreamlog/internal/configs"
	"github.com/PolarWolf314/dreamlog/internal/store"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configInitBackend   string
	configInitPath      string
	configInitKey       string
	configInitExportDir string
)

func init() {
	configInitCmd.Flags().StringVar(&configInitBackend, "backend", "", "storage backend: "+strings.Join(store.Backends, ", "))
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "storage directory")
	configInitCmd.Flags().StringVar(&configInitKey, "key", "", "name of the dream collection inside the store")
	configInitCmd.Flags().StringVar(&configInitExportDir, "export-dir", "", "default directory for exports")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitBackend = ""
	configInitPath = ""
	configInitKey = ""
	configInitExportDir = ""
}

// promptForInput prompts the user for input with an optional default value.
func promptForInput(reader *bufio.Reader, prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the configuration file",
	Long: `Creates or updates the configuration file and generates this install's id.

Without flags, and when run in a terminal, the command asks for each setting.
With flags, only the given settings change.

Examples:
  # Interactive setup
  dreamlog config init

  # Non-interactive setup
  dreamlog config init --backend badger --path ~/dreams
  dreamlog config init --export-dir ~/Desktop`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		flagsGiven := cmd.Flags().Changed("backend") || cmd.Flags().Changed("path") ||
			cmd.Flags().Changed("key") || cmd.Flags().Changed("export-dir")

		switch {
		case flagsGiven:
			if configInitBackend != "" {
				config.Storage.Backend = configInitBackend
			}
			if configInitPath != "" {
				config.Storage.Path = configInitPath
			}
			if configInitKey != "" {
				config.Storage.Key = configInitKey
			}
			if configInitExportDir != "" {
				config.Export.Dir = configInitExportDir
			}

		case utils.IsTerminal():
			reader := bufio.NewReader(os.Stdin)
			fmt.Println(ui.Info.Sprint("Welcome to dreamlog!") + " Let's decide where your dreams live.\n")

			prompts := []struct {
				label string
				value *string
			}{
				{"Storage backend (" + strings.Join(store.Backends, ", ") + ")", &config.Storage.Backend},
				{"Storage directory", &config.Storage.Path},
				{"Collection key", &config.Storage.Key},
				{"Export directory", &config.Export.Dir},
			}
			for _, p := range prompts {
				answer, err := promptForInput(reader, p.label, *p.value)
				if err != nil {
					return ConfigLogger.ErrorfAndReturn("%v", err)
				}
				*p.value = answer
			}

		default:
			ConfigLogger.Infof("No flags and no terminal, keeping current settings")
		}

		if config.Install.UUID == "" {
			config.Install.UUID = configs.GenerateInstallUUID()
			ConfigLogger.Debugf("Generated install UUID %s", config.Install.UUID)
		}

		if err := config.Validate(); err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
			return nil
		}

		if err := configs.SaveConfig(config); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save config: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Configuration saved to " + ui.Path.Sprint(configs.DreamlogSettings.ConfigPath()))
		fmt.Println()
		printConfig(config)
		return nil
	},
}
