package main

import (
	"os"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/cli"
	"github.com/aretw0/sail/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl [file]",
	Short: "Edit a document and type into its fields interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		source := cfg.Playground.InitialSource
		if len(args) > 0 {
			if source, err = cli.ReadSource(args[0], os.Stdin); err != nil {
				return err
			}
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		out := cmd.OutOrStdout()
		tui.PrintBanner(out, sail.Version)
		pg := sail.New(sigCtx, source,
			sail.WithLogger(logger),
			sail.WithDumpMode(cfg.DumpMode()),
		)
		return cli.RunREPL(sigCtx, cli.NewREPL(pg, out), os.Stdin)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
