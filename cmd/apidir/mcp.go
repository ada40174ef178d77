package main

import (
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the directory as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			opts.app.WatchConfig(ctx)
			return opts.app.Gateway().Run(ctx)
		},
	}
}
