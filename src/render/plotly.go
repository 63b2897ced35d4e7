package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iafilius/RubricViewer/src/types"
)

// PlotlyLine is the "line" object of a Plotly scatter trace.
type PlotlyLine struct {
	Width float64 `json:"width"`
	Dash  string  `json:"dash,omitempty"`
}

// PlotlyMarker is the "marker" object of a Plotly scatter trace.
type PlotlyMarker struct {
	Size   float64 `json:"size"`
	Symbol string  `json:"symbol"`
}

// PlotlyTrace is the wire shape of one series.
type PlotlyTrace struct {
	ID            string        `json:"id"`
	X             []float64     `json:"x"`
	Y             []float64     `json:"y"`
	Type          string        `json:"type,omitempty"`
	Mode          string        `json:"mode"`
	Line          *PlotlyLine   `json:"line,omitempty"`
	Marker        *PlotlyMarker `json:"marker,omitempty"`
	Name          string        `json:"name"`
	HoverTemplate string        `json:"hovertemplate,omitempty"`
	ShowLegend    bool          `json:"showlegend"`
	HoverInfo     string        `json:"hoverinfo,omitempty"`
}

// ToPlotly converts a series to its wire shape.
func ToPlotly(s types.Series) PlotlyTrace {
	xs, ys := s.XY()
	t := PlotlyTrace{
		ID:            string(s.ID),
		X:             xs,
		Y:             ys,
		Mode:          string(s.Kind),
		Name:          s.Label,
		HoverTemplate: s.Tooltip,
		ShowLegend:    s.ShowLegend,
		HoverInfo:     s.HoverInfo,
	}
	switch s.Kind {
	case types.KindMarkers:
		t.Type = "scatter"
		t.Marker = &PlotlyMarker{Size: s.Marker.Size, Symbol: s.Marker.Symbol}
	default:
		t.Line = &PlotlyLine{Width: s.Line.Width, Dash: s.Line.Dash}
	}
	return t
}

// PlotlyFigure is one call into Plotly: Op is "newPlot", "react" or "resize"
// (resize carries null data and no layout).
type PlotlyFigure struct {
	Target string        `json:"target"`
	Op     string        `json:"op"`
	Data   []PlotlyTrace `json:"data"`
	Layout *Layout       `json:"layout,omitempty"`
	Config *RenderConfig `json:"config,omitempty"`
}

// PlotlyCharter writes each render as a JSON figure line to W, for a page
// script to replay with Plotly.newPlot / Plotly.react / Plotly.Plots.resize.
type PlotlyCharter struct {
	W      io.Writer
	Indent bool
}

func (p *PlotlyCharter) Initialize(h *Handle, series []types.Series, layout Layout, cfg RenderConfig) error {
	return p.write(figure(h, "newPlot", series, layout, cfg))
}

func (p *PlotlyCharter) Update(h *Handle, series []types.Series, layout Layout, cfg RenderConfig) error {
	return p.write(figure(h, "react", series, layout, cfg))
}

func (p *PlotlyCharter) Resize(h *Handle) error {
	return p.write(PlotlyFigure{Target: h.Target, Op: "resize"})
}

func figure(h *Handle, op string, series []types.Series, layout Layout, cfg RenderConfig) PlotlyFigure {
	data := make([]PlotlyTrace, len(series))
	for i, s := range series {
		data[i] = ToPlotly(s)
	}
	return PlotlyFigure{Target: h.Target, Op: op, Data: data, Layout: &layout, Config: &cfg}
}

func (p *PlotlyCharter) write(f PlotlyFigure) error {
	if p == nil {
		return ErrNoBackend
	}
	if p.W == nil {
		return fmt.Errorf("plotly: no output writer")
	}
	enc := json.NewEncoder(p.W)
	// hover templates contain <br> and <extra>; keep them readable
	enc.SetEscapeHTML(false)
	if p.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("plotly: encode %s: %w", f.Op, err)
	}
	return nil
}
