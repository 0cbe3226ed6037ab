package collector

import (
	"context"
	"fmt"

	"PulseBoard/internal/model"

	"golang.org/x/time/rate"
)

// RateLimitedMarketFetcher wraps a MarketFetcher with rate limiting so several
// tickers fetched in the same cycle do not hit the provider at once.
type RateLimitedMarketFetcher struct {
	fetcher MarketFetcher
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedMarketFetcher creates a new rate limited market fetcher.
// rps is the maximum requests per second allowed (can be fractional).
func NewRateLimitedMarketFetcher(fetcher MarketFetcher, rps float64, burst int) *RateLimitedMarketFetcher {
	return &RateLimitedMarketFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", fetcher.Name()),
	}
}

// FetchCloses waits for limiter permission, then forwards to the wrapped fetcher.
func (r *RateLimitedMarketFetcher) FetchCloses(ctx context.Context, symbol string, lookbackDays int) (model.PriceSeries, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: rate limit wait canceled: %w", ErrDataUnavailable, err)
	}
	return r.fetcher.FetchCloses(ctx, symbol, lookbackDays)
}

func (r *RateLimitedMarketFetcher) Name() string { return r.name }

var _ MarketFetcher = (*RateLimitedMarketFetcher)(nil)
