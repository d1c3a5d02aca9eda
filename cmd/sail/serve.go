package main

import (
	"github.com/aretw0/sail/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser playground",
	Long: `Starts the HTTP server: the playground page at /, a JSON API for sessions,
an SSE stream at /events and Prometheus metrics at /metrics.

With --redis (or server.redis_url) sessions live in Redis so several
replicas can serve the same session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetString("port")
		}
		if cmd.Flags().Changed("examples") {
			cfg.Playground.ExamplesDir, _ = cmd.Flags().GetString("examples")
		}
		if cmd.Flags().Changed("redis") {
			cfg.Server.RedisURL, _ = cmd.Flags().GetString("redis")
		}
		if cmd.Flags().Changed("no-validate") {
			cfg.Server.ValidateRequests = false
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.Serve(sigCtx, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("examples", "", "Directory of example snippets (markdown with frontmatter)")
	serveCmd.Flags().String("redis", "", "Share sessions through Redis (redis://host:port/db)")
	serveCmd.Flags().Bool("no-validate", false, "Disable OpenAPI request validation")
}
