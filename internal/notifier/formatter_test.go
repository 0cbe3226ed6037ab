package notifier

import (
	"testing"

	"PulseBoard/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFormatAlert(t *testing.T) {
	tests := []struct {
		evt         model.AlertEvent
		wantSubject string
		wantBody    string
	}{
		{
			model.AlertEvent{Kind: model.AlertStock, Symbol: "MSFT", Value: 12.3456},
			"Microsoft large price change alert",
			"Microsoft changed 12.35% in the last seven days",
		},
		{
			model.AlertEvent{Kind: model.AlertStock, Symbol: "TSLA", Value: -15},
			"Tesla large price change alert",
			"Tesla changed -15.00% in the last seven days",
		},
		{
			model.AlertEvent{Kind: model.AlertStock, Symbol: "NVDA", Value: 10},
			"NVDA large price change alert",
			"NVDA changed 10.00% in the last seven days",
		},
		{
			model.AlertEvent{Kind: model.AlertWeather, Value: 60},
			"Rain alert",
			"There is 60% chance of rain in the coming seven days",
		},
	}
	for _, tt := range tests {
		subject, body := FormatAlert(tt.evt)
		assert.Equal(t, tt.wantSubject, subject)
		assert.Equal(t, tt.wantBody, body)
	}
}

func TestFormatWeeklyChange(t *testing.T) {
	assert.Equal(t, "MSFT Weekly Change: 1.23%", FormatWeeklyChange("MSFT", 1.2345))
	assert.Equal(t, "TSLA Weekly Change: -4.50%", FormatWeeklyChange("TSLA", -4.5))
	assert.Equal(t, "TSLA Weekly Change: unavailable", FormatWeeklyChangeUnavailable("TSLA"))
}
