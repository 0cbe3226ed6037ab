package scheduler

import (
	"fmt"
	"time"

	"PulseBoard/internal/model"
	"PulseBoard/internal/notifier"
)

const (
	dashboardTitle = "Personalized Dashboard"
	dateLayout     = "2006-01-02"
	forecastDays   = 7
)

// buildBundle lays out one price panel per ticker followed by the temperature
// and precipitation panels. Missing data leaves a panel without points, and a
// day the forecast has no value for stays a gap.
func buildBundle(id string, at time.Time, lookbackDays int, tickers []tickerResult, weather model.Fetched[model.WeatherForecast], events []model.AlertEvent) *model.RenderBundle {
	fig := model.Figure{Title: dashboardTitle}
	summaries := make([]model.Summary, 0, len(tickers))

	for _, t := range tickers {
		fig.Panels = append(fig.Panels, pricePanel(t, lookbackDays))
		text := notifier.FormatWeeklyChangeUnavailable(t.Symbol)
		if t.Ok {
			text = notifier.FormatWeeklyChange(t.Symbol, t.Change)
		}
		summaries = append(summaries, model.Summary{Symbol: t.Symbol, Text: text})
	}
	fig.Panels = append(fig.Panels, weatherPanels(weather)...)

	return &model.RenderBundle{
		CycleID:     id,
		GeneratedAt: at,
		Figure:      fig,
		Summaries:   summaries,
		Alerts:      events,
	}
}

func pricePanel(t tickerResult, lookbackDays int) model.Panel {
	s := model.Series{Name: t.Symbol}
	if t.Series.Ok() {
		for _, p := range t.Series.Value.Points {
			s.X = append(s.X, p.Date.Format(dateLayout))
			s.Y = append(s.Y, model.Float(p.Close))
		}
	}
	return model.Panel{
		Title:  fmt.Sprintf("%s over %d days", t.Symbol, lookbackDays),
		XLabel: "Date",
		YLabel: "Price in USD",
		Kind:   model.PanelLine,
		Series: []model.Series{s},
	}
}

func weatherPanels(weather model.Fetched[model.WeatherForecast]) []model.Panel {
	minTemp := model.Series{Name: "Min Temp"}
	maxTemp := model.Series{Name: "Max Temp"}
	precip := model.Series{Name: "Precipitation Probability"}
	if weather.Ok() {
		for _, d := range weather.Value.Days {
			day := d.Date.Format(dateLayout)
			minTemp.X = append(minTemp.X, day)
			minTemp.Y = append(minTemp.Y, d.MinTempF)
			maxTemp.X = append(maxTemp.X, day)
			maxTemp.Y = append(maxTemp.Y, d.MaxTempF)
			precip.X = append(precip.X, day)
			precip.Y = append(precip.Y, d.PrecipProbability)
		}
	}
	return []model.Panel{
		{
			Title:  fmt.Sprintf("Temperature for next %d days", forecastDays),
			XLabel: "Date",
			YLabel: "Fahrenheit",
			Kind:   model.PanelLine,
			Series: []model.Series{minTemp, maxTemp},
		},
		{
			Title:  "Precipitation Probability",
			XLabel: "Date",
			YLabel: "Probability Percentage",
			Kind:   model.PanelBar,
			Series: []model.Series{precip},
		},
	}
}
