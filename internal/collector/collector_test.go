package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"PulseBoard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowMarket struct{ delay time.Duration }

func (s slowMarket) Name() string { return "slow" }

func (s slowMarket) FetchCloses(ctx context.Context, symbol string, _ int) (model.PriceSeries, error) {
	select {
	case <-ctx.Done():
		return model.PriceSeries{}, ctx.Err()
	case <-time.After(s.delay):
		return model.PriceSeries{Symbol: symbol}, nil
	}
}

func TestCollector_Collect(t *testing.T) {
	market := &MockMarketFetcher{Price: 100}
	weather := &MockWeatherFetcher{Forecast: model.WeatherForecast{Days: []model.DailyForecast{{PrecipProbability: model.Float(30)}}}}
	c := NewCollector(market, weather, []string{"MSFT", "TSLA"}, 7, 47.6, -122.3, time.Second)

	snap := c.Collect(context.Background())

	require.Len(t, snap.Series, 2)
	require.True(t, snap.Series[0].Ok())
	require.True(t, snap.Series[1].Ok())
	assert.Equal(t, "MSFT", snap.Series[0].Value.Symbol)
	assert.Equal(t, "TSLA", snap.Series[1].Value.Symbol)
	assert.Len(t, snap.Series[0].Value.Points, 7)
	require.True(t, snap.Weather.Ok())
	assert.Len(t, snap.Weather.Value.Days, 1)
}

func TestCollector_PartialFailure(t *testing.T) {
	market := &MockMarketFetcher{Price: 100, Errors: map[string]error{"TSLA": errors.New("boom")}}
	weather := &MockWeatherFetcher{Err: errors.New("connection refused")}
	c := NewCollector(market, weather, []string{"MSFT", "TSLA"}, 7, 0, 0, time.Second)

	snap := c.Collect(context.Background())

	assert.True(t, snap.Series[0].Ok())
	assert.False(t, snap.Series[1].Ok())
	assert.ErrorIs(t, snap.Series[1].Err, ErrDataUnavailable)
	assert.False(t, snap.Weather.Ok())
	assert.ErrorIs(t, snap.Weather.Err, ErrDataUnavailable)
}

func TestCollector_TimeoutBoundsEachCall(t *testing.T) {
	c := NewCollector(slowMarket{delay: time.Second}, &MockWeatherFetcher{}, []string{"MSFT"}, 7, 0, 0, 30*time.Millisecond)

	start := time.Now()
	snap := c.Collect(context.Background())

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.ErrorIs(t, snap.Series[0].Err, ErrDataUnavailable)
	assert.ErrorIs(t, snap.Series[0].Err, context.DeadlineExceeded)
}

func TestRateLimitedMarketFetcher(t *testing.T) {
	rl := NewRateLimitedMarketFetcher(&MockMarketFetcher{Price: 10}, 1000, 1)
	assert.Equal(t, "mock [Rate Limited]", rl.Name())

	s, err := rl.FetchCloses(context.Background(), "MSFT", 3)
	require.NoError(t, err)
	assert.Len(t, s.Points, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := NewRateLimitedMarketFetcher(&MockMarketFetcher{Price: 10}, 0.001, 1)
	_, _ = slow.FetchCloses(context.Background(), "MSFT", 3) // consume the burst
	_, err = slow.FetchCloses(ctx, "MSFT", 3)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
