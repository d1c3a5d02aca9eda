package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/sail/internal/cli"
	"github.com/spf13/cobra"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [id]",
	Short: "List the example library, or print one example's source",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dir") {
			cfg.Playground.ExamplesDir, _ = cmd.Flags().GetString("dir")
		}
		lib, err := cli.OpenLibrary(cfg.Playground.ExamplesDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			ex, err := lib.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ex.Source)
			return nil
		}

		examples, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")
		for _, ex := range examples {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", ex.ID, ex.Title, ex.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.Flags().String("dir", "", "Directory of example snippets")
}
