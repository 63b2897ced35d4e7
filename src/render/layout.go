// Package render drives charting backends: it assembles the selected series,
// pairs them with the fixed chart layout and hands both to a Charter, first
// initializing a chart handle and then updating it in place.
package render

// Axis describes one chart axis. Field names follow the Plotly layout keys so
// the same value serializes into a Plotly figure unchanged.
type Axis struct {
	Title       string     `json:"title"`
	Range       [2]float64 `json:"range"`
	ZeroLine    bool       `json:"zeroline"`
	AutoMargin  bool       `json:"automargin"`
	ScaleAnchor string     `json:"scaleanchor,omitempty"`
	ScaleRatio  float64    `json:"scaleratio,omitempty"`
}

// Margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Legend placement. Y above 1 puts the legend over the plot area.
type Legend struct {
	Orientation string  `json:"orientation"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
}

// Layout is the axis/legend configuration passed with every render.
type Layout struct {
	Title     string `json:"title"`
	XAxis     Axis   `json:"xaxis"`
	YAxis     Axis   `json:"yaxis"`
	Margin    Margin `json:"margin"`
	Legend    Legend `json:"legend"`
	HoverMode string `json:"hovermode"`
	Height    int    `json:"height"`
}

// EqualAspect reports whether y is locked 1:1 to x.
func (l Layout) EqualAspect() bool {
	return l.YAxis.ScaleAnchor == "x" && l.YAxis.ScaleRatio == 1
}

// LegendAbove reports a horizontal legend placed over the plot.
func (l Layout) LegendAbove() bool {
	return l.Legend.Orientation == "h" && l.Legend.Y > 1
}

// RenderConfig carries backend options that are not part of the layout.
type RenderConfig struct {
	DisplayModeBar bool `json:"displayModeBar"`
	Responsive     bool `json:"responsive"`
}

// DefaultLayout is the rubric chart: both axes on [0,1], square plot,
// horizontal legend above.
func DefaultLayout() Layout {
	return Layout{
		Title: "Normalized Power Rubric for Different k",
		XAxis: Axis{
			Title:      "Normalized score  x = S / (mn)",
			Range:      [2]float64{0, 1},
			AutoMargin: true,
		},
		YAxis: Axis{
			Title:       "Payout fraction to T  (π_T / D_t)",
			Range:       [2]float64{0, 1},
			AutoMargin:  true,
			ScaleAnchor: "x",
			ScaleRatio:  1,
		},
		Margin:    Margin{L: 60, R: 20, T: 60, B: 120},
		Legend:    Legend{Orientation: "h", X: 0.5, Y: 1.12, XAnchor: "center"},
		HoverMode: "closest",
		Height:    800,
	}
}

// DefaultRenderConfig shows the mode bar and follows container size.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{DisplayModeBar: true, Responsive: true}
}
