// Package traces turns curve selections into renderable series: a registry of
// curve factories, the selection resolver and the canonical-order assembler.
package traces

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/iafilius/RubricViewer/src/rubric"
	"github.com/iafilius/RubricViewer/src/types"
)

// Tooltip is the hover format shared by every computed curve.
const Tooltip = "x=%{x:.3f}<br>π_T/D_t=%{y:.3f}<extra></extra>"

var (
	ErrDuplicateID    = errors.New("traces: duplicate curve id")
	ErrInvalidSamples = errors.New("traces: sample count must be > 0")
)

// Factory builds a fresh series for one curve.
type Factory func() types.Series

// Registry maps curve ids to factories. Registration order is the canonical
// display order used by Assemble.
type Registry struct {
	order   []types.CurveID
	entries map[types.CurveID]Factory
}

// NewEmptyRegistry returns a registry without entries.
func NewEmptyRegistry() *Registry {
	return &Registry{entries: map[types.CurveID]Factory{}}
}

// Register appends a curve at the end of the display order.
func (r *Registry) Register(id types.CurveID, f Factory) error {
	if _, dup := r.entries[id]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	r.entries[id] = f
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the factory for id.
func (r *Registry) Lookup(id types.CurveID) (Factory, bool) {
	f, ok := r.entries[id]
	return f, ok
}

// Order returns a copy of the display order.
func (r *Registry) Order() []types.CurveID {
	return append([]types.CurveID(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// Params are the curve parameters a registry is built from.
type Params struct {
	Exponents []float64
	Piecewise rubric.Piecewise
	Parts     []rubric.Part
	Band      rubric.BandPass
	Points    int
}

// DefaultParams reproduces the stock chart: five power curves and the hybrids
// with their documented defaults.
func DefaultParams() Params {
	return Params{
		Exponents: []float64{0.333, 0.5, 1, 2, 3},
		Piecewise: rubric.DefaultPiecewise(),
		Parts:     rubric.DefaultParts(),
		Band:      rubric.DefaultBandPass(),
		Points:    rubric.DefaultPoints,
	}
}

// Validate reports the first parameter outside the curve contracts.
func (p Params) Validate() error {
	if p.Points <= 0 {
		return fmt.Errorf("%w: points=%d", ErrInvalidSamples, p.Points)
	}
	for _, k := range p.Exponents {
		if err := rubric.ValidateExponent(k); err != nil {
			return fmt.Errorf("power curve: %w", err)
		}
	}
	if err := rubric.ValidateParts(p.Parts); err != nil {
		return fmt.Errorf("composite curve: %w", err)
	}
	if err := p.Band.Validate(); err != nil {
		return fmt.Errorf("band curve: %w", err)
	}
	return nil
}

// FormatExponent is the shortest decimal form of k ("0.333", "2").
func FormatExponent(k float64) string { return strconv.FormatFloat(k, 'f', -1, 64) }

// PowerID is the curve id of F_k.
func PowerID(k float64) types.CurveID { return types.CurveID("k-" + FormatExponent(k)) }

// NewRegistry validates p and registers every curve in canonical order:
// power curves by ascending exponent, then composite, piecewise, exotic, band
// and the baseline markers. The order of p.Exponents does not matter.
func NewRegistry(p Params) (*Registry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ks := append([]float64(nil), p.Exponents...)
	sort.Float64s(ks)
	r := NewEmptyRegistry()
	for _, k := range ks {
		if err := r.Register(PowerID(k), powerFactory(k, p.Points)); err != nil {
			return nil, err
		}
	}
	parts := append([]rubric.Part(nil), p.Parts...)
	entries := []struct {
		id types.CurveID
		f  Factory
	}{
		{types.IDHybComposite, compositeFactory(parts, p.Points)},
		{types.IDHybPiecewise, piecewiseFactory(p.Piecewise, p.Points)},
		{types.IDHybExotic, exoticFactory(p.Points)},
		{types.IDHybBand, bandFactory(p.Band)},
		{types.IDBaseline, baselineSeries},
	}
	for _, e := range entries {
		if err := r.Register(e.id, e.f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default is the registry of the stock chart.
func Default() *Registry {
	r, err := NewRegistry(DefaultParams())
	if err != nil {
		panic(fmt.Sprintf("traces: default params invalid: %v", err))
	}
	return r
}

func lineSeries(id types.CurveID, pts []types.Sample, width float64, dash, label string) types.Series {
	return types.Series{
		ID:         id,
		Points:     pts,
		Kind:       types.KindLine,
		Line:       types.LineStyle{Width: width, Dash: dash},
		Label:      label,
		Tooltip:    Tooltip,
		ShowLegend: true,
	}
}

func powerFactory(k float64, n int) Factory {
	return func() types.Series {
		return lineSeries(PowerID(k), rubric.SampleFunc(rubric.PowerFunc(k), n), 2, "", "k="+FormatExponent(k))
	}
}

func exoticFactory(n int) Factory {
	return func() types.Series {
		return lineSeries(types.IDHybExotic, rubric.SampleFunc(rubric.Exotic, n), 2, "dashdot", "Hybrid (exotic cubic)")
	}
}

func piecewiseFactory(p rubric.Piecewise, n int) Factory {
	return func() types.Series {
		return lineSeries(types.IDHybPiecewise, rubric.SampleFunc(p.Eval, n), 3, "dot", "Hybrid (piecewise)")
	}
}

func compositeFactory(parts []rubric.Part, n int) Factory {
	f := rubric.CompositeFunc(parts)
	return func() types.Series {
		return lineSeries(types.IDHybComposite, rubric.SampleFunc(f, n), 3, "", "Hybrid (composite from k)")
	}
}

func bandFactory(b rubric.BandPass) Factory {
	return func() types.Series {
		c := b.Build()
		return lineSeries(types.IDHybBand, c.Samples(), 3, "longdash", "Hybrid (band "+b.BandLabel()+")")
	}
}

func baselineSeries() types.Series {
	return types.Series{
		ID:         types.IDBaseline,
		Points:     rubric.BaselinePoints(),
		Kind:       types.KindMarkers,
		Marker:     types.MarkerStyle{Size: 7, Symbol: "circle-open"},
		Label:      "Baseline points",
		ShowLegend: false,
		HoverInfo:  "skip",
	}
}
