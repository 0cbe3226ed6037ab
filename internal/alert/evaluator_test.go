package alert

import (
	"testing"

	"PulseBoard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func precip(v float64) *float64 { return &v }

func TestEvaluate_StockThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		change float64
		want   int
	}{
		{"signed rise", ModeSigned, 12.0, 1},
		{"signed crash ignored", ModeSigned, -12.0, 0},
		{"signed boundary", ModeSigned, 10.0, 1},
		{"signed below", ModeSigned, 9.999, 0},
		{"absolute rise", ModeAbsolute, 12.0, 1},
		{"absolute crash", ModeAbsolute, -12.0, 1},
		{"absolute negative boundary", ModeAbsolute, -10.0, 1},
		{"absolute small drop", ModeAbsolute, -9.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			th.Mode = tt.mode
			events := Evaluate(Input{StockChanges: []StockChange{{Symbol: "MSFT", Change: tt.change}}}, th)
			require.Len(t, events, tt.want)
			if tt.want == 1 {
				assert.Equal(t, model.AlertEvent{Kind: model.AlertStock, Symbol: "MSFT", Value: tt.change}, events[0])
			}
		})
	}
}

func TestEvaluate_OnlyMSFTAlerts(t *testing.T) {
	events := Evaluate(Input{StockChanges: []StockChange{
		{Symbol: "MSFT", Change: 12.0},
		{Symbol: "TSLA", Change: 3.1},
	}, MaxPrecip: precip(20)}, DefaultThresholds())

	require.Len(t, events, 1)
	assert.Equal(t, model.AlertStock, events[0].Kind)
	assert.Equal(t, "MSFT", events[0].Symbol)
}

func TestEvaluate_PrecipBoundary(t *testing.T) {
	events := Evaluate(Input{MaxPrecip: precip(50.0)}, DefaultThresholds())
	require.Len(t, events, 1)
	assert.Equal(t, model.AlertEvent{Kind: model.AlertWeather, Value: 50.0}, events[0])

	assert.Empty(t, Evaluate(Input{MaxPrecip: precip(49.999)}, DefaultThresholds()))
}

func TestEvaluate_MissingWeather(t *testing.T) {
	assert.Empty(t, Evaluate(Input{MaxPrecip: nil}, DefaultThresholds()))
}

func TestEvaluate_AllThreeInOrder(t *testing.T) {
	events := Evaluate(Input{
		StockChanges: []StockChange{{Symbol: "MSFT", Change: 15}, {Symbol: "TSLA", Change: 22}},
		MaxPrecip:    precip(80),
	}, DefaultThresholds())

	require.Len(t, events, 3)
	assert.Equal(t, "MSFT", events[0].Symbol)
	assert.Equal(t, "TSLA", events[1].Symbol)
	assert.Equal(t, model.AlertWeather, events[2].Kind)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("absolute")
	require.NoError(t, err)
	assert.Equal(t, ModeAbsolute, m)

	_, err = ParseMode("loose")
	assert.Error(t, err)
}
