package main

import (
	"io"

	"github.com/spf13/cobra"

	"apidir/internal/infra/directory"
	"apidir/internal/infra/render"
)

type providersOutput struct {
	Providers []directory.ProviderListing `json:"providers" yaml:"providers" toml:"providers"`
	Count     int                         `json:"count" yaml:"count" toml:"count"`
}

func newProvidersCmd(opts *cliOptions) *cobra.Command {
	var (
		summaries   bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the providers in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client := opts.app.Directory()
			ids, err := client.ListProviders(ctx)
			if err != nil {
				return asExitError(err)
			}

			listings := make([]directory.ProviderListing, 0, len(ids))
			if summaries {
				limit := concurrency
				if limit <= 0 {
					limit = opts.app.Config().SummaryConcurrency
				}
				listings, err = client.Summaries(ctx, ids, limit)
				if err != nil {
					return asExitError(err)
				}
			} else {
				for _, id := range ids {
					listings = append(listings, directory.ProviderListing{ID: id})
				}
			}

			out := providersOutput{Providers: listings, Count: len(listings)}
			return writeOutput(cmd.OutOrStdout(), opts.format, out, func(w io.Writer) error {
				return render.RenderListings(w, listings)
			})
		},
	}
	cmd.Flags().BoolVar(&summaries, "summaries", false, "fetch each provider's descriptor and include its title")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel descriptor fetches for --summaries (default from config)")
	return cmd
}
