package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"PulseBoard/internal/model"

	"golang.org/x/sync/errgroup"
)

// MockMarketFetcher returns controllable fixed data for development and testing.
// Series takes precedence; symbols missing from it get a generated series, and
// symbols listed in Errors fail.
type MockMarketFetcher struct {
	Price  float64
	Series map[string]model.PriceSeries
	Errors map[string]error
}

func (m *MockMarketFetcher) Name() string { return "mock" }

func (m *MockMarketFetcher) FetchCloses(_ context.Context, symbol string, lookbackDays int) (model.PriceSeries, error) {
	if err, ok := m.Errors[symbol]; ok {
		return model.PriceSeries{}, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return generateMockSeries(symbol, m.Price, lookbackDays), nil
}

func generateMockSeries(symbol string, basePrice float64, count int) model.PriceSeries {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Date:  time.Now().AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return model.PriceSeries{Symbol: symbol, Points: points, FetchedAt: time.Now()}
}

// MockWeatherFetcher returns Forecast, or Err when set.
type MockWeatherFetcher struct {
	Forecast model.WeatherForecast
	Err      error
}

func (m *MockWeatherFetcher) Name() string { return "mock" }

func (m *MockWeatherFetcher) FetchForecast(_ context.Context, _, _ float64) (model.WeatherForecast, error) {
	if m.Err != nil {
		return model.WeatherForecast{}, m.Err
	}
	return m.Forecast, nil
}

// Snapshot is the raw data gathered in one cycle. Series is in the same order
// as the collector's symbols.
type Snapshot struct {
	Series  []model.Fetched[model.PriceSeries]
	Weather model.Fetched[model.WeatherForecast]
}

// Collector fetches all market and weather data for one refresh cycle.
type Collector struct {
	Market       MarketFetcher
	Weather      WeatherFetcher
	Symbols      []string
	LookbackDays int
	Latitude     float64
	Longitude    float64
	Timeout      time.Duration
}

// NewCollector creates a new Collector.
func NewCollector(market MarketFetcher, weather WeatherFetcher, symbols []string, lookbackDays int, lat, lon float64, timeout time.Duration) *Collector {
	return &Collector{
		Market:       market,
		Weather:      weather,
		Symbols:      symbols,
		LookbackDays: lookbackDays,
		Latitude:     lat,
		Longitude:    lon,
		Timeout:      timeout,
	}
}

// Collect fetches every ticker and the forecast concurrently. It never fails:
// each provider error is kept in its slot of the snapshot.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	snap := Snapshot{Series: make([]model.Fetched[model.PriceSeries], len(c.Symbols))}

	var g errgroup.Group
	for i, symbol := range c.Symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			callCtx, cancel := c.callContext(ctx)
			defer cancel()
			series, err := c.Market.FetchCloses(callCtx, symbol, c.LookbackDays)
			if err != nil {
				log.Printf("[WARN] fetch %s from %s: %v", symbol, c.Market.Name(), err)
				snap.Series[i] = model.Failed[model.PriceSeries](unavailable(err))
				return nil
			}
			snap.Series[i] = model.Succeeded(series)
			return nil
		})
	}
	g.Go(func() error {
		callCtx, cancel := c.callContext(ctx)
		defer cancel()
		fc, err := c.Weather.FetchForecast(callCtx, c.Latitude, c.Longitude)
		if err != nil {
			log.Printf("[WARN] fetch forecast from %s: %v", c.Weather.Name(), err)
			snap.Weather = model.Failed[model.WeatherForecast](unavailable(err))
			return nil
		}
		snap.Weather = model.Succeeded(fc)
		return nil
	})
	_ = g.Wait()

	return snap
}

func (c *Collector) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}

// unavailable makes sure every fetch failure is classified as ErrDataUnavailable.
func unavailable(err error) error {
	if errors.Is(err, ErrDataUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
}
