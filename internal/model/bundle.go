package model

import "time"

// PanelKind selects how a panel is drawn.
type PanelKind string

const (
	PanelLine PanelKind = "line"
	PanelBar  PanelKind = "bar"
)

// Series is one named trace within a panel. A nil Y value is a gap.
type Series struct {
	Name string     `json:"name"`
	X    []string   `json:"x"`
	Y    []*float64 `json:"y"`
}

// Float returns a pointer to v, for building series values.
func Float(v float64) *float64 { return &v }

// Panel is one subplot of the dashboard figure.
type Panel struct {
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Kind   PanelKind `json:"kind"`
	Series []Series  `json:"series"`
}

// Empty reports whether the panel has no values at all.
func (p Panel) Empty() bool {
	for _, s := range p.Series {
		for _, v := range s.Y {
			if v != nil {
				return false
			}
		}
	}
	return true
}

// Figure describes the composite chart independently of any rendering library.
type Figure struct {
	Title  string  `json:"title"`
	Panels []Panel `json:"panels"`
}

// Summary is the short weekly-change text shown for one ticker.
type Summary struct {
	Symbol string `json:"symbol"`
	Text   string `json:"text"`
}

// RenderBundle is everything the dashboard needs to display one refresh cycle.
type RenderBundle struct {
	CycleID     string       `json:"cycle_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Figure      Figure       `json:"figure"`
	Summaries   []Summary    `json:"summaries"`
	Alerts      []AlertEvent `json:"alerts"`
}
