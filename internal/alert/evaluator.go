package alert

import (
	"fmt"
	"math"

	"PulseBoard/internal/model"
)

// Mode selects how a stock change is compared against its threshold.
type Mode string

const (
	// ModeSigned compares the signed change, so only rises trigger an alert.
	// This matches the behaviour of the dashboard this replaces, where the
	// check was written as change >= abs(10).
	ModeSigned Mode = "signed"
	// ModeAbsolute compares |change|, so large drops alert too.
	ModeAbsolute Mode = "absolute"
)

// ParseMode converts a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSigned, ModeAbsolute:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown stock alert mode %q", s)
	}
}

// Thresholds are fixed for the lifetime of the process.
type Thresholds struct {
	StockChangePct    float64
	PrecipProbability float64
	Mode              Mode
}

// DefaultThresholds returns 10% stock change, 50% precipitation, signed comparison.
func DefaultThresholds() Thresholds {
	return Thresholds{StockChangePct: 10, PrecipProbability: 50, Mode: ModeSigned}
}

// StockChange is the weekly percentage change of one ticker.
type StockChange struct {
	Symbol string
	Change float64
}

// Input holds the derived metrics of one cycle. Tickers whose data was
// unavailable are simply left out of StockChanges; MaxPrecip is nil when the
// forecast was unavailable.
type Input struct {
	StockChanges []StockChange
	MaxPrecip    *float64
}

// Evaluate returns one event per crossed threshold, stocks first in input
// order, then weather. Comparisons are inclusive.
func Evaluate(in Input, th Thresholds) []model.AlertEvent {
	var events []model.AlertEvent
	for _, sc := range in.StockChanges {
		if stockTriggered(sc.Change, th) {
			events = append(events, model.AlertEvent{Kind: model.AlertStock, Symbol: sc.Symbol, Value: sc.Change})
		}
	}
	if in.MaxPrecip != nil && *in.MaxPrecip >= th.PrecipProbability {
		events = append(events, model.AlertEvent{Kind: model.AlertWeather, Value: *in.MaxPrecip})
	}
	return events
}

func stockTriggered(change float64, th Thresholds) bool {
	if th.Mode == ModeAbsolute {
		return math.Abs(change) >= th.StockChangePct
	}
	return change >= math.Abs(th.StockChangePct)
}
