package model

import "time"

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds the closing prices of one ticker over the lookback window,
// ascending by trading date.
type PriceSeries struct {
	Symbol    string       `json:"symbol"`
	Points    []PricePoint `json:"points"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// First returns the oldest close in the series.
func (s PriceSeries) First() float64 { return s.Points[0].Close }

// Last returns the most recent close in the series.
func (s PriceSeries) Last() float64 { return s.Points[len(s.Points)-1].Close }
