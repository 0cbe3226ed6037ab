package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"PulseBoard/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	panelWidth  = "480px"
	panelHeight = "360px"
)

var summaryTmpl = template.Must(template.New("summary").Parse(`
<div style="display:flex;justify-content:center;gap:20px;width:1000px;margin:auto;">
{{range .Summaries}}  <div class="summary" style="width:40%;font-size:20px;text-align:center;border:1px solid #ddd;padding:20px;background-color:#f9f9f9;">{{.Text}}</div>
{{end}}</div>
<p style="text-align:center;color:#888;">Updated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
`))

// RenderPage writes the full dashboard: one chart per panel followed by the
// weekly change summaries. A positive refresh makes an open tab reload itself
// on that interval so it picks up later cycles.
func RenderPage(w io.Writer, bundle *model.RenderBundle, refresh time.Duration) error {
	page := components.NewPage()
	page.PageTitle = bundle.Figure.Title
	page.SetLayout(components.PageFlexLayout)
	for _, p := range bundle.Figure.Panels {
		page.AddCharts(panelChart(p))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	var summary bytes.Buffer
	if err := summaryTmpl.Execute(&summary, bundle); err != nil {
		return fmt.Errorf("render summaries: %w", err)
	}

	html := insertBefore(buf.Bytes(), "</body>", summary.Bytes())
	if meta := refreshMeta(refresh); meta != nil {
		html = insertBefore(html, "</head>", meta)
	}
	_, err := w.Write(html)
	return err
}

// refreshMeta returns the meta tag reloading the page every d, or nil when d
// is below one second.
func refreshMeta(d time.Duration) []byte {
	secs := int(d / time.Second)
	if secs <= 0 {
		return nil
	}
	return []byte(fmt.Sprintf(`<meta http-equiv="refresh" content="%d">`+"\n", secs))
}

// insertBefore places extra right before the last occurrence of tag, or at
// the end when tag is absent.
func insertBefore(html []byte, tag string, extra []byte) []byte {
	i := bytes.LastIndex(html, []byte(tag))
	if i < 0 {
		return append(html, extra...)
	}
	out := make([]byte, 0, len(html)+len(extra))
	out = append(out, html[:i]...)
	out = append(out, extra...)
	return append(out, html[i:]...)
}

func panelChart(p model.Panel) components.Charter {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: panelWidth, Height: panelHeight}),
		charts.WithTitleOpts(opts.Title{Title: p.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: p.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: p.YLabel}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
	}

	var xs []string
	if len(p.Series) > 0 {
		xs = p.Series[0].X
	}

	if p.Kind == model.PanelBar {
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(xs)
		for _, s := range p.Series {
			data := make([]opts.BarData, len(s.Y))
			for i, v := range s.Y {
				data[i] = opts.BarData{Value: chartValue(v)}
			}
			bar.AddSeries(s.Name, data)
		}
		return bar
	}

	line := charts.NewLine()
	line.SetGlobalOptions(global...)
	line.SetXAxis(xs)
	for _, s := range p.Series {
		data := make([]opts.LineData, len(s.Y))
		for i, v := range s.Y {
			data[i] = opts.LineData{Value: chartValue(v)}
		}
		line.AddSeries(s.Name, data)
	}
	return line
}

// chartValue maps a missing value to "-", which echarts draws as a gap.
func chartValue(v *float64) any {
	if v == nil {
		return "-"
	}
	return *v
}
