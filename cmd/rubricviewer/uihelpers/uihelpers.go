package uihelpers

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/iafilius/RubricViewer/src/rubric"
	"github.com/iafilius/RubricViewer/src/types"
)

// Chart side clamp in pixels.
const (
	MinChartSide = 480
	MaxChartSide = 1400
)

// ComputeChartDimensions clamps the space left for the chart. The rubric
// chart is square, so both sides are limited by the smaller one.
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	side := rawW
	if rawH < side {
		side = rawH
	}
	if side < MinChartSide {
		side = MinChartSide
	}
	if side > MaxChartSide {
		side = MaxChartSide
	}
	return side, side
}

// EncodeCurveIDs joins ids for storage in a preference string.
func EncodeCurveIDs(ids []types.CurveID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// DecodeCurveIDs splits a preference string written by EncodeCurveIDs.
// Blank entries are dropped.
func DecodeCurveIDs(raw string) []types.CurveID {
	var out []types.CurveID
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, types.CurveID(p))
		}
	}
	return out
}

// ParseLegacyPresets reads the older exponent preset list ("0.5, 2 3").
// Commas and spaces both separate values.
func ParseLegacyPresets(raw string) ([]float64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", f, err)
		}
		if err := rubric.ValidateExponent(v); err != nil {
			return nil, fmt.Errorf("preset %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatLegacyPresets is the inverse of ParseLegacyPresets.
func FormatLegacyPresets(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ComputeContainRect returns where an image of imgW×imgH is drawn inside a
// view of viewW×viewH with contain scaling: offset, drawn size and scale.
func ComputeContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	scale = float32(math.Min(float64(viewW/imgW), float64(viewH/imgH)))
	w, h = imgW*scale, imgH*scale
	return (viewW - w) / 2, (viewH - h) / 2, w, h, scale
}

// HoverText formats a data point the way the chart tooltip does.
func HoverText(label string, s types.Sample) string {
	return fmt.Sprintf("%s\nx=%.3f  π_T/D_t=%.3f", label, s.X, s.Y)
}

// NearestSample finds the sample closest to (x, y) across the series that
// show a tooltip. ok is false when no series has points.
func NearestSample(series []types.Series, x, y float64) (label string, s types.Sample, ok bool) {
	best := math.Inf(1)
	for _, ser := range series {
		if ser.Tooltip == "" {
			continue
		}
		for _, p := range ser.Points {
			d := math.Hypot(p.X-x, p.Y-y)
			if d < best {
				best, label, s, ok = d, ser.Label, p, true
			}
		}
	}
	return label, s, ok
}

// PixelToData maps an image pixel inside plot to data coordinates of the
// window [x0,x1]×[y0,y1]. ok is false outside the plot rectangle.
func PixelToData(px, py float32, plot image.Rectangle, x0, x1, y0, y1 float64) (x, y float64, ok bool) {
	if plot.Dx() <= 0 || plot.Dy() <= 0 {
		return 0, 0, false
	}
	fx := (float64(px) - float64(plot.Min.X)) / float64(plot.Dx())
	fy := (float64(plot.Max.Y) - float64(py)) / float64(plot.Dy())
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	return x0 + fx*(x1-x0), y0 + fy*(y1-y0), true
}
