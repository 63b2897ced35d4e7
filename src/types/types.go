// Package types holds the data model shared by the curve library, the trace
// registry and the render driver.
package types

import "sort"

// CurveID identifies one curve variant (e.g. "k-0.5", "hyb-band", "baseline").
type CurveID string

// Well-known curve identifiers.
const (
	IDPower0333    CurveID = "k-0.333"
	IDPower05      CurveID = "k-0.5"
	IDPower1       CurveID = "k-1"
	IDPower2       CurveID = "k-2"
	IDPower3       CurveID = "k-3"
	IDHybComposite CurveID = "hyb-composite"
	IDHybPiecewise CurveID = "hyb-piecewise"
	IDHybExotic    CurveID = "hyb-exotic"
	IDHybBand      CurveID = "hyb-band"
	IDBaseline     CurveID = "baseline"
)

// Sample is one (x, y) point of a curve.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RenderKind tells the charting collaborator how to draw a series.
type RenderKind string

const (
	KindLine    RenderKind = "lines"
	KindMarkers RenderKind = "markers"
)

// LineStyle applies to KindLine series. Dash is empty for solid lines,
// otherwise one of "dot", "dashdot", "longdash", "dash".
type LineStyle struct {
	Width float64
	Dash  string
}

// MarkerStyle applies to KindMarkers series.
type MarkerStyle struct {
	Size   float64
	Symbol string
}

// Series is one renderable trace. It is built fresh for every render and is
// not modified afterwards.
type Series struct {
	ID         CurveID
	Points     []Sample
	Kind       RenderKind
	Line       LineStyle
	Marker     MarkerStyle
	Label      string
	Tooltip    string
	ShowLegend bool
	HoverInfo  string // "skip" disables hover for the series
}

// XY splits the points into parallel coordinate slices.
func (s Series) XY() ([]float64, []float64) {
	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// IDSet is an unordered set of curve identifiers.
type IDSet map[CurveID]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...CurveID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id CurveID)    { s[id] = struct{}{} }
func (s IDSet) Remove(id CurveID) { delete(s, id) }
func (s IDSet) Len() int          { return len(s) }

func (s IDSet) Has(id CurveID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order (stable output for logs/prefs).
func (s IDSet) Sorted() []CurveID {
	out := make([]CurveID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
