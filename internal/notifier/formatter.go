package notifier

import (
	"fmt"

	"PulseBoard/internal/model"
)

var displayNames = map[string]string{
	"MSFT": "Microsoft",
	"TSLA": "Tesla",
}

// DisplayName returns the company name for known tickers and the symbol otherwise.
func DisplayName(symbol string) string {
	if name, ok := displayNames[symbol]; ok {
		return name
	}
	return symbol
}

// FormatAlert returns the mail subject and body for an alert event.
func FormatAlert(evt model.AlertEvent) (subject, body string) {
	switch evt.Kind {
	case model.AlertStock:
		name := DisplayName(evt.Symbol)
		return fmt.Sprintf("%s large price change alert", name),
			fmt.Sprintf("%s changed %.2f%% in the last seven days", name, evt.Value)
	case model.AlertWeather:
		return "Rain alert",
			fmt.Sprintf("There is %g%% chance of rain in the coming seven days", evt.Value)
	default:
		return fmt.Sprintf("%s alert", evt.Kind), fmt.Sprintf("value %g", evt.Value)
	}
}

// FormatWeeklyChange returns the summary text shown under the chart.
func FormatWeeklyChange(symbol string, change float64) string {
	return fmt.Sprintf("%s Weekly Change: %.2f%%", symbol, change)
}

// FormatWeeklyChangeUnavailable is shown when a ticker's data could not be fetched.
func FormatWeeklyChangeUnavailable(symbol string) string {
	return fmt.Sprintf("%s Weekly Change: unavailable", symbol)
}
