package collector

import (
	"context"
	"errors"

	"PulseBoard/internal/model"
)

var (
	// ErrDataUnavailable marks any failure to obtain usable provider data:
	// transport errors, timeouts, bad status codes, malformed or empty payloads.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInvalidArgument is returned for requests that can never succeed.
	ErrInvalidArgument = errors.New("invalid argument")
)

// MarketFetcher retrieves daily closing prices for a ticker.
type MarketFetcher interface {
	FetchCloses(ctx context.Context, symbol string, lookbackDays int) (model.PriceSeries, error)
	Name() string
}

// WeatherFetcher retrieves a daily forecast for a coordinate.
type WeatherFetcher interface {
	FetchForecast(ctx context.Context, lat, lon float64) (model.WeatherForecast, error)
	Name() string
}
