package collector

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PulseBoard/internal/model"
)

// OpenMeteoFetcher implements WeatherFetcher using the Open-Meteo forecast API.
type OpenMeteoFetcher struct {
	BaseURL  string
	Timezone string

	http *providerClient
	now  func() time.Time
}

// NewOpenMeteoFetcher creates a fetcher reporting dates in the given IANA timezone.
func NewOpenMeteoFetcher(baseURL, timezone, proxyURL string, timeout time.Duration) *OpenMeteoFetcher {
	return &OpenMeteoFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Timezone: timezone,
		http:     newProviderClient("open-meteo", proxyURL, timeout),
		now:      time.Now,
	}
}

func (f *OpenMeteoFetcher) Name() string { return "open-meteo" }

// WithBreaker replaces the default circuit breaker settings.
func (f *OpenMeteoFetcher) WithBreaker(b Breaker) *OpenMeteoFetcher {
	f.http.setBreaker(b)
	return f
}

// openMeteoResponse mirrors the parts of the forecast payload we use. The
// daily arrays are positionally aligned by date index.
type openMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     *struct {
		Time              []string   `json:"time"`
		TemperatureMax    []*float64 `json:"temperature_2m_max"`
		TemperatureMin    []*float64 `json:"temperature_2m_min"`
		PrecipProbability []*float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// FetchForecast returns the daily max/min temperature (Fahrenheit) and max
// precipitation probability for the coordinate.
func (f *OpenMeteoFetcher) FetchForecast(ctx context.Context, lat, lon float64) (model.WeatherForecast, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return model.WeatherForecast{}, fmt.Errorf("%w: coordinate %.4f,%.4f out of range", ErrInvalidArgument, lat, lon)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("timezone", f.Timezone)
	endpoint := fmt.Sprintf("%s/v1/forecast?%s", f.BaseURL, q.Encode())

	var resp openMeteoResponse
	if err := f.http.getJSON(ctx, endpoint, &resp); err != nil {
		return model.WeatherForecast{}, fmt.Errorf("open-meteo: %w", err)
	}
	if resp.Error {
		return model.WeatherForecast{}, fmt.Errorf("open-meteo: %w: api error: %s", ErrDataUnavailable, resp.Reason)
	}
	days, err := normalizeDaily(resp)
	if err != nil {
		return model.WeatherForecast{}, fmt.Errorf("open-meteo: %w: %w", ErrDataUnavailable, err)
	}

	return model.WeatherForecast{
		Latitude:  lat,
		Longitude: lon,
		Timezone:  f.Timezone,
		Days:      days,
		FetchedAt: f.now(),
	}, nil
}

func normalizeDaily(resp openMeteoResponse) ([]model.DailyForecast, error) {
	d := resp.Daily
	if d == nil || len(d.Time) == 0 {
		return nil, fmt.Errorf("missing daily block")
	}
	n := len(d.Time)
	if len(d.TemperatureMax) != n || len(d.TemperatureMin) != n || len(d.PrecipProbability) != n {
		return nil, fmt.Errorf("daily arrays misaligned: time=%d max=%d min=%d precip=%d",
			n, len(d.TemperatureMax), len(d.TemperatureMin), len(d.PrecipProbability))
	}

	loc := time.UTC
	if l, err := time.LoadLocation(resp.Timezone); err == nil && resp.Timezone != "" {
		loc = l
	}

	days := make([]model.DailyForecast, 0, n)
	for i, raw := range d.Time {
		date, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", raw, err)
		}
		days = append(days, model.DailyForecast{
			Date:              date,
			MaxTempF:          d.TemperatureMax[i],
			MinTempF:          d.TemperatureMin[i],
			PrecipProbability: d.PrecipProbability[i],
		})
	}
	return days, nil
}
