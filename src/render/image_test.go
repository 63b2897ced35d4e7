package render

import (
	"image"
	"testing"

	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

func smallCharter(frames *int) *ImageCharter {
	return NewImageCharter(func() (int, int) { return 480, 360 }, func(*Handle, image.Image) { *frames++ })
}

func TestImageCharterSquareFrame(t *testing.T) {
	frames := 0
	c := smallCharter(&frames)
	d := NewDriver(traces.Default(), c)
	h := NewHandle("rubric-chart")
	if err := d.Render(h, traces.Selection{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	img := c.Image(h)
	if img == nil {
		t.Fatalf("no image drawn")
	}
	b := img.Bounds()
	if b.Dx() != 360 || b.Dy() != 360 {
		t.Fatalf("expected square 360x360 frame, got %dx%d", b.Dx(), b.Dy())
	}
	if frames != 1 {
		t.Fatalf("OnFrame called %d times, want 1", frames)
	}
}

func TestImageCharterKeepsZoomAcrossUpdates(t *testing.T) {
	frames := 0
	c := smallCharter(&frames)
	d := NewDriver(traces.Default(), c)
	h := NewHandle("rubric-chart")
	_ = d.Render(h, traces.Selection{})
	if err := c.Zoom(h, 0.5); err != nil {
		t.Fatalf("zoom: %v", err)
	}
	zoomed, _ := c.Viewport(h)
	if zoomed.XMax-zoomed.XMin > 0.51 {
		t.Fatalf("zoom did not narrow the window: %+v", zoomed)
	}
	_ = d.Render(h, traces.Selection{IDs: []types.CurveID{"hyb-band"}})
	after, _ := c.Viewport(h)
	if after != zoomed {
		t.Fatalf("update reset the viewport: before %+v after %+v", zoomed, after)
	}
	if err := c.ResetZoom(h); err != nil {
		t.Fatalf("reset: %v", err)
	}
	reset, _ := c.Viewport(h)
	if reset != (Viewport{0, 1, 0, 1}) {
		t.Fatalf("reset viewport = %+v", reset)
	}
	if frames != 4 {
		t.Fatalf("frames = %d, want 4 (init, zoom, update, reset)", frames)
	}
}

func TestImageCharterEmptySelectionDrawsBlank(t *testing.T) {
	frames := 0
	c := smallCharter(&frames)
	d := NewDriver(traces.Default(), c)
	h := NewHandle("rubric-chart")
	_ = d.Render(h, traces.Selection{IDs: []types.CurveID{"k-99"}})
	img := c.Image(h)
	if img == nil || img.Bounds().Dx() != 360 {
		t.Fatalf("expected blank fallback frame")
	}
}

func TestImageCharterResizeUnknownHandle(t *testing.T) {
	c := NewImageCharter(nil, nil)
	if err := c.Resize(NewHandle("x")); err == nil {
		t.Fatalf("expected error for unknown handle")
	}
}

func TestViewportZoomStaysInBounds(t *testing.T) {
	full := Viewport{0, 1, 0, 1}
	v := Viewport{0.8, 1, 0.8, 1}.Zoom(0.5, full)
	if v.XMax > 1 || v.XMin < 0.8 {
		t.Fatalf("zoomed window escaped: %+v", v)
	}
	out := Viewport{0.4, 0.6, 0.4, 0.6}.Zoom(10, full)
	if out != full {
		t.Fatalf("zooming out past bounds should clamp to full range: %+v", out)
	}
	tiny := full
	for i := 0; i < 20; i++ {
		tiny = tiny.Zoom(0.1, full)
	}
	if tiny.XMax-tiny.XMin < minViewportSpan-1e-12 {
		t.Fatalf("zoom went below the minimum span: %+v", tiny)
	}
}

func TestBuildChartLegendSkipsHiddenSeries(t *testing.T) {
	series := traces.Build(traces.Default(), traces.Selection{IDs: []types.CurveID{"k-1", "baseline"}})
	ch, ok := buildChart(series, DefaultLayout(), Viewport{0, 1, 0, 1}, 600, 600)
	if !ok {
		t.Fatalf("expected chart")
	}
	if len(ch.Series) != 2 {
		t.Fatalf("expected both series drawn, got %d", len(ch.Series))
	}
	if len(ch.Elements) != 1 {
		t.Fatalf("expected one legend element, got %d", len(ch.Elements))
	}
	if ch.Series[1].GetStyle().StrokeWidth >= 0 {
		t.Fatalf("baseline markers should not draw a stroke")
	}
}

func TestClipToView(t *testing.T) {
	pts := []types.Sample{{X: 0.1, Y: 0.1}, {X: 0.5, Y: 0.9}, {X: 0.9, Y: 0.95}}
	xs, ys := clipToView(pts, Viewport{0.2, 1, 0, 0.5})
	if len(xs) != 2 || xs[0] != 0.5 {
		t.Fatalf("xs = %v", xs)
	}
	if ys[0] != 0.5 || ys[1] != 0.5 {
		t.Fatalf("ys not clamped: %v", ys)
	}
}

func TestPlotAreaInsideFrame(t *testing.T) {
	series := traces.Build(traces.Default(), traces.Selection{})
	withLegend := PlotArea(series, DefaultLayout(), 800, 800)
	if withLegend.Empty() || !withLegend.In(image.Rect(0, 0, 800, 800)) {
		t.Fatalf("plot area %v outside frame", withLegend)
	}
	bare := PlotArea(nil, DefaultLayout(), 800, 800)
	if bare.Min.Y >= withLegend.Min.Y {
		t.Fatalf("legend band should push the plot down: bare %v legend %v", bare, withLegend)
	}
}
