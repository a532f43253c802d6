package main

import (
	"github.com/spf13/cobra"

	"facturio/internal/session"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the facturio version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("facturio %s\n", version)
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported document types",
	Run: func(cmd *cobra.Command, args []string) {
		for i, t := range session.DocumentTypes() {
			if i == 0 {
				cmd.Printf("%s (default)\n", t)
				continue
			}
			cmd.Println(t.String())
		}
	},
}
