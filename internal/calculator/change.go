package calculator

import (
	"errors"
	"math"

	"PulseBoard/internal/model"
)

var (
	// ErrInsufficientData is returned when a series is too short for the metric.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrZeroBase is returned when the first price of a series is zero.
	ErrZeroBase = errors.New("first price is zero")
)

// PercentageChange returns (last - first) / first * 100 over the series.
// At least two points are required.
func PercentageChange(series model.PriceSeries) (float64, error) {
	if len(series.Points) < 2 {
		return 0, ErrInsufficientData
	}
	first := series.First()
	if first == 0 {
		return 0, ErrZeroBase
	}
	return (series.Last() - first) / first * 100, nil
}

// MaxPrecipitation returns the highest precipitation probability over the
// forecast horizon. Days without a value are skipped.
func MaxPrecipitation(forecast model.WeatherForecast) (float64, error) {
	max := math.Inf(-1)
	for _, d := range forecast.Days {
		if d.PrecipProbability != nil && *d.PrecipProbability > max {
			max = *d.PrecipProbability
		}
	}
	if math.IsInf(max, -1) {
		return 0, ErrInsufficientData
	}
	return max, nil
}
