package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "facturio",
	Short: "Turn a free-text description of billable work into an invoice PDF",
	Long: `Facturio drives a document-authoring session from the command line:
it sends your prompt to the parsing service, shows the structured line
item table, applies your edits, and asks the rendering service for a PDF.

Example:
  facturio generate --prompt "2x Widget A at $10, 5x Widget B at $20" --type Invoice`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/config.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	_ = gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
