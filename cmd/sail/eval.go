package main

import (
	"os"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/cli"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [file|-]",
	Short: "Evaluate a document once and print the result",
	Long: `Evaluates a SAIL document and prints the rendered form as an outline.
Use --format to print JSON, HTML, the structure dump or a Mermaid diagram instead, and --query to
extract one value from the JSON result with a gjson path (e.g. ast.props.label).
Without a file argument the built-in demo form is evaluated.`,
	Args: cobra.MaximumNArgs(1),
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

		sets, _ := cmd.Flags().GetStringArray("set")
		state, err := cli.ParseAssignments(sets)
		if err != nil {
			return err
		}

		mode := cfg.DumpMode()
		if cmd.Flags().Changed("mode") {
			raw, _ := cmd.Flags().GetString("mode")
			if mode, err = sail.ParseDumpMode(raw); err != nil {
				return err
			}
		}

		format, _ := cmd.Flags().GetString("format")
		query, _ := cmd.Flags().GetString("query")

		return cli.Eval(cmd.Context(), cmd.OutOrStdout(), cli.EvalOptions{
			Source: source,
			State:  state,
			Mode:   mode,
			Format: format,
			Query:  query,
			Logger: logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringArray("set", nil, "Seed a field value (key=value, repeatable)")
	evalCmd.Flags().StringP("format", "f", cli.FormatOutline, "Output format: outline, json, html, dump or mermaid")
	evalCmd.Flags().String("mode", "", "Dump mode: history or latest")
	evalCmd.Flags().StringP("query", "q", "", "gjson path applied to the JSON result")
}
