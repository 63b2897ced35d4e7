package uihelpers

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/iafilius/RubricViewer/src/rubric"
	"github.com/iafilius/RubricViewer/src/types"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		w, h  int
		wantS int
	}{
		{100, 100, MinChartSide},
		{1200, 700, 700},
		{700, 1200, 700},
		{4000, 3000, MaxChartSide},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.w, c.h)
		if w != h {
			t.Fatalf("input %dx%d => %dx%d not square", c.w, c.h, w, h)
		}
		if w != c.wantS {
			t.Fatalf("input %dx%d => side %d want %d", c.w, c.h, w, c.wantS)
		}
	}
}

func TestCurveIDPrefsRoundTrip(t *testing.T) {
	ids := []types.CurveID{"k-0.333", "hyb-band", "baseline"}
	raw := EncodeCurveIDs(ids)
	if raw != "k-0.333,hyb-band,baseline" {
		t.Fatalf("encoded %q", raw)
	}
	back := DecodeCurveIDs(raw)
	if len(back) != 3 || back[1] != "hyb-band" {
		t.Fatalf("decoded %v", back)
	}
	if got := DecodeCurveIDs(" , ,"); len(got) != 0 {
		t.Fatalf("blank entries kept: %v", got)
	}
}

func TestParseLegacyPresets(t *testing.T) {
	vs, err := ParseLegacyPresets("0.5, 2 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vs) != 3 || vs[0] != 0.5 || vs[2] != 3 {
		t.Fatalf("values %v", vs)
	}
	if FormatLegacyPresets(vs) != "0.5,2,3" {
		t.Fatalf("format %q", FormatLegacyPresets(vs))
	}
	if vs, err := ParseLegacyPresets(""); err != nil || len(vs) != 0 {
		t.Fatalf("empty input: %v %v", vs, err)
	}
	if _, err := ParseLegacyPresets("2,abc"); err == nil || !strings.Contains(err.Error(), "abc") {
		t.Fatalf("expected parse error naming the bad preset, got %v", err)
	}
	if _, err := ParseLegacyPresets("-1"); !errors.Is(err, rubric.ErrInvalidExponent) {
		t.Fatalf("expected ErrInvalidExponent, got %v", err)
	}
}

func TestComputeContainRect(t *testing.T) {
	x, y, w, h, s := ComputeContainRect(600, 600, 1000, 600)
	if s != 1 || w != 600 || h != 600 || x != 200 || y != 0 {
		t.Fatalf("got x=%v y=%v w=%v h=%v s=%v", x, y, w, h, s)
	}
	_, _, w, h, s = ComputeContainRect(800, 800, 400, 1000)
	if s != 0.5 || w != 400 || h != 400 {
		t.Fatalf("downscale wrong: w=%v h=%v s=%v", w, h, s)
	}
}

func TestNearestSampleSkipsSeriesWithoutTooltip(t *testing.T) {
	series := []types.Series{
		{Label: "k=1", Tooltip: "x", Points: []types.Sample{{X: 0.1, Y: 0.1}, {X: 0.5, Y: 0.5}}},
		{Label: "baseline", Points: []types.Sample{{X: 0.5, Y: 0.51}}},
	}
	label, s, ok := NearestSample(series, 0.49, 0.51)
	if !ok || label != "k=1" || s.X != 0.5 {
		t.Fatalf("nearest = %q %+v %v", label, s, ok)
	}
	if !strings.Contains(HoverText(label, s), "x=0.500") {
		t.Fatalf("hover text %q", HoverText(label, s))
	}
	if _, _, ok := NearestSample(nil, 0, 0); ok {
		t.Fatalf("expected no match for empty series")
	}
}

func TestPixelToData(t *testing.T) {
	plot := image.Rect(100, 100, 300, 300)
	x, y, ok := PixelToData(200, 150, plot, 0, 1, 0, 1)
	if !ok || x != 0.5 || y != 0.75 {
		t.Fatalf("got %v,%v ok=%v", x, y, ok)
	}
	x, _, _ = PixelToData(100, 300, plot, 0.25, 0.75, 0, 1)
	if x != 0.25 {
		t.Fatalf("zoomed origin x=%v", x)
	}
	if _, _, ok := PixelToData(50, 150, plot, 0, 1, 0, 1); ok {
		t.Fatalf("pixel left of plot should not map")
	}
}
