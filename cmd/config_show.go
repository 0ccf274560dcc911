package cmd

import (
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/configs"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configShowJSON bool
	configShowFile bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configShowCmd.Flags().BoolVar(&configShowFile, "file", false, "show the file as written, without environment overrides")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
	configShowFile = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the configuration in effect: the config file with DREAMLOG_*
environment overrides applied. Use --file to see the file alone.

Examples:
  dreamlog config show
  dreamlog config show --file
  dreamlog config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		ConfigLogger.Debugf("Flags: json=%t, file=%t", configShowJSON, configShowFile)

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if !configShowFile {
			env, err := configs.LoadEnv()
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to read environment: %v", err)
			}
			resolved, err := configs.Resolve(config, env)
			if err != nil {
				fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
				fmt.Println(ui.Info.Sprint("→") + " Fix " + ui.Path.Sprint(configs.DreamlogSettings.ConfigPath()) + " or the DREAMLOG_* environment")
				return nil
			}
			config = resolved
		}

		if configShowJSON {
			return outputJSON(config)
		}

		fmt.Println(ui.Info.Sprint("Configuration") + " (" + configs.DreamlogSettings.ConfigPath() + "):")
		fmt.Println()
		printConfig(config)
		return nil
	},
}

// printConfig prints config in human-readable format.
func printConfig(config *configs.Config) {
	fmt.Printf("  %-16s %s\n", "Backend:", ui.Success.Sprint(config.Storage.Backend))
	fmt.Printf("  %-16s %s\n", "Storage path:", ui.Path.Sprint(config.Storage.Path))
	fmt.Printf("  %-16s %s\n", "Collection key:", ui.Success.Sprint(config.Storage.Key))
	fmt.Printf("  %-16s %s\n", "Export dir:", ui.Path.Sprint(config.Export.Dir))
	if config.Install.UUID != "" {
		fmt.Printf("  %-16s %s\n", "Install ID:", ui.Warning.Sprint(config.Install.UUID))
	}
	fmt.Printf("  %-16s %s\n", "Audit log:", ui.Path.Sprint(configs.DreamlogSettings.AuditPath()))
}
