package main

import (
	"github.com/aretw0/sail/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-render a document every time it is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		sets, _ := cmd.Flags().GetStringArray("set")
		state, err := cli.ParseAssignments(sets)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.RunWatch(sigCtx, cmd.OutOrStdout(), args[0], cli.EvalOptions{
			State:  state,
			Logger: logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringArray("set", nil, "Seed a field value (key=value, repeatable)")
}
