package render

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// legendFontSize is shared by every chart so legends look the same across exports.
const legendFontSize = 9.0

// legendEntryWidth is a rough per-entry width (swatch + label) for sizing the band.
const legendEntryWidth = 150

// legendStyle is the uniform legend look.
func legendStyle() chart.Style {
	return chart.Style{
		FillColor:   drawing.Color{R: 255, G: 255, B: 255, A: 230},
		FontColor:   drawing.Color{R: 40, G: 40, B: 40, A: 255},
		FontSize:    legendFontSize,
		StrokeColor: drawing.Color{R: 180, G: 180, B: 180, A: 255},
	}
}

// legendHeight estimates the pixel height of a horizontal legend with n entries.
func legendHeight(n, width int) int {
	if n <= 0 {
		return 0
	}
	perRow := width / legendEntryWidth
	if perRow < 1 {
		perRow = 1
	}
	rows := (n + perRow - 1) / perRow
	return rows*18 + 8
}

// attachLegend adds a legend listing only the given series. Horizontal layouts
// get the thin legend drawn in the top padding; anything else the boxed one.
func attachLegend(c *chart.Chart, entries []chart.Series, layout Layout) {
	if len(entries) == 0 {
		return
	}
	shadow := *c
	shadow.Series = entries
	if layout.LegendAbove() {
		c.Elements = append(c.Elements, chart.LegendThin(&shadow, legendStyle()))
		return
	}
	c.Elements = append(c.Elements, chart.Legend(&shadow, legendStyle()))
}
