package model

import "time"

// DailyForecast is a single forecast day. Temperatures are in Fahrenheit,
// precipitation probability in percent. A nil value means the provider had
// no value for that day.
type DailyForecast struct {
	Date              time.Time `json:"date"`
	MaxTempF          *float64  `json:"max_temp_f"`
	MinTempF          *float64  `json:"min_temp_f"`
	PrecipProbability *float64  `json:"precip_probability"`
}

// WeatherForecast is a multi-day forecast for one location.
type WeatherForecast struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Days      []DailyForecast `json:"days"`
	FetchedAt time.Time       `json:"fetched_at"`
}
