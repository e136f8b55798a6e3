package api

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"salarydash/internal/models"
)

// Render dimensions. Wide enough for thirty histogram bars, short enough
// to embed in a dashboard panel.
const (
	chartWidth  = 1024
	chartHeight = 512

	// pngCountryLimit keeps the per-country bar chart readable; the JSON
	// endpoint still carries every country.
	pngCountryLimit = 20
)

func renderTopTitlesPNG(data models.TopTitlesChart) ([]byte, error) {
	bars := make([]chart.Value, 0, len(data.Items))
	for _, it := range data.Items {
		bars = append(bars, chart.Value{Label: it.Title, Value: it.MeanSalary})
	}
	graph := chart.BarChart{
		Title:    "Top job titles by mean salary (USD)",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	return renderPNG(graph.Render)
}

func renderHistogramPNG(data models.HistogramChart) ([]byte, error) {
	bars := make([]chart.Value, 0, len(data.Bins))
	for i, bin := range data.Bins {
		v := chart.Value{Value: float64(bin.Count)}
		// Labeling every bin crowds the axis at thirty bars.
		if i%5 == 0 {
			v.Label = fmt.Sprintf("%.0f", bin.Low)
		}
		bars = append(bars, v)
	}
	graph := chart.BarChart{
		Title:      "Salary distribution (USD)",
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   20,
		BarSpacing: 8,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	return renderPNG(graph.Render)
}

func renderWorkModesPNG(data models.WorkModesChart) ([]byte, error) {
	values := make([]chart.Value, 0, len(data.Items))
	for _, it := range data.Items {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", it.Mode, it.Percent),
			Value: float64(it.Count),
		})
	}
	graph := chart.DonutChart{
		Title:  "Work mode share",
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return renderPNG(graph.Render)
}

func renderCountryMeansPNG(data models.CountryMeansChart) ([]byte, error) {
	items := make([]models.CountryMean, len(data.Items))
	copy(items, data.Items)
	sort.Slice(items, func(i, j int) bool {
		if items[i].MeanSalary != items[j].MeanSalary {
			return items[i].MeanSalary > items[j].MeanSalary
		}
		return items[i].Country < items[j].Country
	})
	if len(items) > pngCountryLimit {
		items = items[:pngCountryLimit]
	}

	bars := make([]chart.Value, 0, len(items))
	for _, it := range items {
		bars = append(bars, chart.Value{Label: it.Country, Value: it.MeanSalary})
	}
	graph := chart.BarChart{
		Title:    fmt.Sprintf("Mean salary by country: %s", data.Title),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 36,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	return renderPNG(graph.Render)
}

// renderPNG buffers the chart so a render failure surfaces as an error
// response instead of a half-written image body.
func renderPNG(render func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}
