package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/sail"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sail",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sail version %s\n", strings.TrimSpace(sail.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
