package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.app.Config()
			return writeOutput(cmd.OutOrStdout(), opts.format, cfg, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "baseUrl=%s\nrequestTimeout=%s\nsummaryConcurrency=%d\nmetricsListenAddress=%s\nlogLevel=%s\n",
					cfg.BaseURL, cfg.RequestTimeout, cfg.SummaryConcurrency, cfg.MetricsListenAddress, cfg.LogLevel)
				return err
			})
		},
	}
}
