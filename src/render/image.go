package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/google/uuid"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/RubricViewer/src/types"
)

// Viewport is the visible data window of a chart.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

// minViewportSpan stops zooming before the ticks degenerate.
const minViewportSpan = 0.01

func viewportFromLayout(l Layout) Viewport {
	return Viewport{XMin: l.XAxis.Range[0], XMax: l.XAxis.Range[1], YMin: l.YAxis.Range[0], YMax: l.YAxis.Range[1]}
}

// Zoom scales the window around its centre (factor < 1 zooms in) and keeps
// it inside bounds.
func (v Viewport) Zoom(factor float64, bounds Viewport) Viewport {
	zoomAxis := func(lo, hi, blo, bhi float64) (float64, float64) {
		c := (lo + hi) / 2
		half := math.Max((hi-lo)*factor, minViewportSpan) / 2
		if half*2 >= bhi-blo {
			return blo, bhi
		}
		lo, hi = c-half, c+half
		if lo < blo {
			lo, hi = blo, blo+2*half
		}
		if hi > bhi {
			lo, hi = bhi-2*half, bhi
		}
		return lo, hi
	}
	out := v
	out.XMin, out.XMax = zoomAxis(v.XMin, v.XMax, bounds.XMin, bounds.XMax)
	out.YMin, out.YMax = zoomAxis(v.YMin, v.YMax, bounds.YMin, bounds.YMax)
	return out
}

type frame struct {
	series []types.Series
	layout Layout
	view   Viewport
	img    image.Image
}

// ImageCharter renders charts to images with go-chart. Each handle keeps its
// own viewport, so Update swaps the data without resetting the zoom.
type ImageCharter struct {
	// Size returns the pixel size of the render target.
	Size func() (int, int)
	// OnFrame receives every freshly drawn image.
	OnFrame   func(h *Handle, img image.Image)
	ShowHints bool

	frames map[uuid.UUID]*frame
}

// NewImageCharter returns a charter drawing at the size reported by size
// (nil means 900×900).
func NewImageCharter(size func() (int, int), onFrame func(*Handle, image.Image)) *ImageCharter {
	return &ImageCharter{Size: size, OnFrame: onFrame, frames: map[uuid.UUID]*frame{}}
}

func (c *ImageCharter) frameFor(h *Handle) (*frame, bool) {
	if c == nil {
		return nil, false
	}
	if c.frames == nil {
		c.frames = map[uuid.UUID]*frame{}
	}
	f, ok := c.frames[h.ID]
	return f, ok
}

func (c *ImageCharter) Initialize(h *Handle, series []types.Series, layout Layout, _ RenderConfig) error {
	if c == nil {
		return ErrNoBackend
	}
	if c.frames == nil {
		c.frames = map[uuid.UUID]*frame{}
	}
	f := &frame{series: series, layout: layout, view: viewportFromLayout(layout)}
	c.frames[h.ID] = f
	c.draw(h, f)
	return nil
}

func (c *ImageCharter) Update(h *Handle, series []types.Series, layout Layout, cfg RenderConfig) error {
	if c == nil {
		return ErrNoBackend
	}
	f, ok := c.frameFor(h)
	if !ok {
		return c.Initialize(h, series, layout, cfg)
	}
	f.series = series
	f.layout = layout
	c.draw(h, f)
	return nil
}

func (c *ImageCharter) Resize(h *Handle) error {
	if c == nil {
		return ErrNoBackend
	}
	f, ok := c.frameFor(h)
	if !ok {
		return fmt.Errorf("no chart for %s", h.Target)
	}
	c.draw(h, f)
	return nil
}

// Viewport returns the current data window of h.
func (c *ImageCharter) Viewport(h *Handle) (Viewport, bool) {
	f, ok := c.frameFor(h)
	if !ok {
		return Viewport{}, false
	}
	return f.view, true
}

// SetViewport changes the data window of an existing chart and redraws it.
func (c *ImageCharter) SetViewport(h *Handle, v Viewport) error {
	if c == nil {
		return ErrNoBackend
	}
	f, ok := c.frameFor(h)
	if !ok {
		return fmt.Errorf("no chart for %s", h.Target)
	}
	f.view = v
	c.draw(h, f)
	return nil
}

// Zoom scales the window of h by factor within the layout's axis ranges.
func (c *ImageCharter) Zoom(h *Handle, factor float64) error {
	if c == nil {
		return ErrNoBackend
	}
	f, ok := c.frameFor(h)
	if !ok {
		return fmt.Errorf("no chart for %s", h.Target)
	}
	return c.SetViewport(h, f.view.Zoom(factor, viewportFromLayout(f.layout)))
}

// ResetZoom restores the layout's axis ranges.
func (c *ImageCharter) ResetZoom(h *Handle) error {
	if c == nil {
		return ErrNoBackend
	}
	f, ok := c.frameFor(h)
	if !ok {
		return fmt.Errorf("no chart for %s", h.Target)
	}
	return c.SetViewport(h, viewportFromLayout(f.layout))
}

// Image returns the last image drawn for h.
func (c *ImageCharter) Image(h *Handle) image.Image {
	if f, ok := c.frameFor(h); ok {
		return f.img
	}
	return nil
}

func (c *ImageCharter) size() (int, int) {
	if c.Size == nil {
		return 900, 900
	}
	return c.Size()
}

func (c *ImageCharter) draw(h *Handle, f *frame) {
	w, hh := c.size()
	if f.layout.EqualAspect() {
		side := w
		if hh < side {
			side = hh
		}
		w, hh = side, side
	}
	f.img = renderImage(f.series, f.layout, f.view, w, hh, c.ShowHints)
	if c.OnFrame != nil {
		c.OnFrame(h, f.img)
	}
}

// hintText is the caption drawn when hints are enabled.
const hintText = "Hint: k<1 pays out early and flattens the middle; k>1 saves payout for top scores."

// renderImage draws the chart, falling back to a blank frame when go-chart
// cannot render (e.g. nothing visible in the viewport).
func renderImage(series []types.Series, layout Layout, view Viewport, w, h int, hints bool) image.Image {
	ch, ok := buildChart(series, layout, view, w, h)
	if !ok {
		return drawHint(blank(w, h), "No curves selected.")
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		log.Warnf("chart render error: %v; showing blank fallback", err)
		return drawHint(blank(w, h), "Chart could not be rendered.")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		log.Warnf("chart decode error: %v; showing blank fallback", err)
		return blank(w, h)
	}
	if hints {
		return drawHint(img, hintText)
	}
	return img
}

// palette follows the common Plotly trace colours so PNG and Plotly output match.
var palette = []drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
	{R: 0xd6, G: 0x27, B: 0x28, A: 255},
	{R: 0x94, G: 0x67, B: 0xbd, A: 255},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 255},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 255},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 255},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 255},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 255},
}

// dashArrays maps dash names to go-chart stroke patterns.
var dashArrays = map[string][]float64{
	"dot":      {2, 4},
	"dash":     {8, 6},
	"longdash": {14, 6},
	"dashdot":  {8, 4, 2, 4},
}

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color, size float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    size / 2,
		DotColor:    col,
	}
}

func seriesStyle(i int, s types.Series) chart.Style {
	if s.Kind == types.KindMarkers {
		return pointStyle(chart.ColorAlternateGray, s.Marker.Size)
	}
	return chart.Style{
		StrokeColor:     palette[i%len(palette)],
		StrokeWidth:     s.Line.Width,
		StrokeDashArray: dashArrays[s.Line.Dash],
	}
}

// clipToView keeps points with x inside the window and clamps y into it.
func clipToView(pts []types.Sample, v Viewport) ([]float64, []float64) {
	xs := make([]float64, 0, len(pts))
	ys := make([]float64, 0, len(pts))
	for _, p := range pts {
		if p.X < v.XMin || p.X > v.XMax {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, math.Max(v.YMin, math.Min(v.YMax, p.Y)))
	}
	return xs, ys
}

// buildChart maps series to go-chart series. It reports false when no series
// has at least two visible points.
func buildChart(series []types.Series, layout Layout, view Viewport, w, h int) (chart.Chart, bool) {
	var all, legend []chart.Series
	for i, s := range series {
		xs, ys := clipToView(s.Points, view)
		if len(xs) < 2 {
			continue
		}
		cs := chart.ContinuousSeries{Name: s.Label, XValues: xs, YValues: ys, Style: seriesStyle(i, s)}
		all = append(all, cs)
		if s.ShowLegend {
			legend = append(legend, cs)
		}
	}
	if len(all) == 0 {
		return chart.Chart{}, false
	}
	ch := chart.Chart{
		Title:  layout.Title,
		Width:  w,
		Height: h,
		Background: chart.Style{Padding: chart.Box{
			Top:    padTop(len(legend), layout, w),
			Left:   padLeft,
			Right:  padRight,
			Bottom: padBottom,
		}},
		XAxis: chart.XAxis{
			Name:  layout.XAxis.Title,
			Range: &chart.ContinuousRange{Min: view.XMin, Max: view.XMax},
			Ticks: niceTicks(view.XMin, view.XMax, 6),
		},
		YAxis: chart.YAxis{
			Name:  layout.YAxis.Title,
			Range: &chart.ContinuousRange{Min: view.YMin, Max: view.YMax},
			Ticks: niceTicks(view.YMin, view.YMax, 6),
		},
		Series: all,
	}
	attachLegend(&ch, legend, layout)
	return ch, true
}

const (
	padLeft   = 16
	padRight  = 12
	padBottom = 28
	// approximate room go-chart takes for tick labels and axis names
	axisGutterRight  = 64
	axisGutterBottom = 44
)

// padTop leaves room for the title band, then the legend band when it sits
// above the plot.
func padTop(legendEntries int, layout Layout, w int) int {
	if layout.LegendAbove() && legendEntries > 0 {
		return 60 + legendHeight(legendEntries, w)
	}
	return 28
}

// PlotArea approximates the pixel rectangle of the plot inside a w×h frame
// drawn for series. Pointer readouts use it to map pixels back to data.
func PlotArea(series []types.Series, layout Layout, w, h int) image.Rectangle {
	n := 0
	for _, s := range series {
		if s.ShowLegend {
			n++
		}
	}
	return image.Rect(padLeft, padTop(n, layout, w), w-padRight-axisGutterRight, h-padBottom-axisGutterBottom)
}
