package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/dreamlog/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dreamlog",
	Short: "dreamlog - A command-line dream journal.",
	Long: `dreamlog records your dreams, helps you find and summarize them, and moves
them between devices as plain or password-protected files.

Usage:
  dreamlog <command> [flags]

Available Commands:
  dreams    Record, browse and share dreams
  config    Manage dreamlog configuration

Run 'dreamlog help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to dreamlog! Run 'dreamlog --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.DreamsCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
