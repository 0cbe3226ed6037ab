package collector

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"PulseBoard/internal/model"
)

// YahooFetcher implements MarketFetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL   string
	SymbolMap map[string]string // configured symbol -> Yahoo ticker, e.g. SPX -> ^GSPC

	http *providerClient
	now  func() time.Time
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	return &YahooFetcher{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SymbolMap: map[string]string{},
		http:      newProviderClient("yahoo", proxyURL, timeout),
		now:       time.Now,
	}
}

// WithBreaker replaces the default circuit breaker settings.
func (f *YahooFetcher) WithBreaker(b Breaker) *YahooFetcher {
	f.http.setBreaker(b)
	return f
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Closes are pointers because Yahoo reports null for days without trading.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchCloses returns the daily closes of symbol over the trailing lookbackDays
// calendar days, ascending by date.
func (f *YahooFetcher) FetchCloses(ctx context.Context, symbol string, lookbackDays int) (model.PriceSeries, error) {
	if strings.TrimSpace(symbol) == "" {
		return model.PriceSeries{}, fmt.Errorf("%w: empty symbol", ErrInvalidArgument)
	}
	if lookbackDays <= 0 {
		return model.PriceSeries{}, fmt.Errorf("%w: lookback must be positive, got %d", ErrInvalidArgument, lookbackDays)
	}

	now := f.now()
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprint(now.AddDate(0, 0, -lookbackDays).Unix()))
	q.Set("period2", fmt.Sprint(now.Unix()))
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), q.Encode())

	var chart yahooChart
	if err := f.http.getJSON(ctx, endpoint, &chart); err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: %w: api error: %s", symbol, ErrDataUnavailable, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: %w: no data returned", symbol, ErrDataUnavailable)
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // skip null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	if len(points) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: %w: no closes in window", symbol, ErrDataUnavailable)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return model.PriceSeries{Symbol: symbol, Points: points, FetchedAt: now}, nil
}
