package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/sail/internal/cli"
	"github.com/aretw0/sail/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sail",
	Short: "Sail is a live playground for SAIL form documents",
	Long: `Sail evaluates small SAIL documents (calls like a_formLayout and a_textField)
into a component tree and renders it as an interactive form, in the terminal
or in the browser.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a sail.yaml (or .json) config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// setup loads the configuration and builds the logger for a command.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
