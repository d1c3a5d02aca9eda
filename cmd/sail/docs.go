package main

import (
	"fmt"

	"github.com/aretw0/sail/internal/presentation/tui"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the function reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		md := "# SAIL Functions\n\n" + dsl.Markdown()
		if raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		out, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
