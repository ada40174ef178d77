package directory

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
)

// ProviderListing is a provider id with the summary its drawer entry would show.
type ProviderListing struct {
	ID      domain.ProviderID      `json:"id" yaml:"id" toml:"id"`
	Summary domain.ProviderSummary `json:"summary" yaml:"summary" toml:"summary"`
}

// Summaries resolves the summary of every provider with at most concurrency
// requests in flight. A provider whose fetch fails gets an empty summary, the
// same as a failed expansion. Only cancellation or expiry of ctx aborts the
// batch.
func (c *Client) Summaries(ctx context.Context, ids []domain.ProviderID, concurrency int) ([]ProviderListing, error) {
	if concurrency <= 0 {
		concurrency = domain.DefaultSummaryConcurrency
	}
	out := make([]ProviderListing, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, id := range ids {
		out[i].ID = id
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			res, err := c.FetchDescriptor(groupCtx, id)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				c.logger.Debug("summary unavailable", telemetry.ProviderField(string(id)), zap.Error(err))
				return nil
			}
			out[i].Summary = domain.SummarizeDescriptor(res.Descriptor)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
