package cmd

import (
	"fmt"
	"os"

	"github.com/northloop/chatgpt-backup/internal"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	sourceDir string
	version   string = "dev"
	commit    string = "unknown"
	date      string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatgpt-backup",
	Short: "Extract ChatGPT iOS backup conversations into forensic reports",
	Long: `A CLI tool to reconstruct conversations from ChatGPT iOS backup files.

The app stores each conversation as a branching node tree in a per-device
conversations-v3-* directory. This tool reconstructs the linear transcript
from each tree, hashes every source file for chain of custody, and renders
examiner-ready reports (HTML, JSON, CSV, Markdown).

Quick Start:
  chatgpt-backup extract --source <dir>          # Extract and write a report
  chatgpt-backup list --source <dir>             # List conversations
  chatgpt-backup show <id> --source <dir>        # View one transcript
  chatgpt-backup verify --source <dir>           # Re-check evidence hashes`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&sourceDir, "source", "s", "", "Conversations directory (conversations-v3-*)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// requireSource resolves the conversations directory or fails with a usage
// hint. Auto-discovery walks the surrounding Application Support layout
// when --source was not given.
func requireSource() (string, error) {
	if sourceDir != "" {
		return sourceDir, nil
	}
	dir, err := internal.DiscoverConversationsDir(".")
	if err != nil {
		return "", fmt.Errorf("no conversations directory found (use --source): %w", err)
	}
	internal.LogInfo("Using conversations directory: %s", dir)
	return dir, nil
}
