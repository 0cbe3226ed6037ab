package model

// AlertKind indicates which threshold was crossed.
type AlertKind string

const (
	AlertStock   AlertKind = "STOCK"
	AlertWeather AlertKind = "WEATHER"
)

// AlertEvent is emitted by the evaluator for every crossed threshold.
// Value is the percentage change for stock alerts and the precipitation
// probability for weather alerts.
type AlertEvent struct {
	Kind   AlertKind `json:"kind"`
	Symbol string    `json:"symbol,omitempty"`
	Value  float64   `json:"value"`
}
