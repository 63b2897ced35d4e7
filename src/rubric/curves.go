// Package rubric implements the payout rubric curve family: the power rubric
// F_k and the hybrid curves built from it, plus the midpoint sampler used to
// discretize them for charting.
//
// All functions are pure. Curves are evaluated on the open interval (0,1);
// the power rubric is 0/0 at the end points for k != 1, which is why callers
// sample on midpoints (see MidpointGrid).
package rubric

import (
	"errors"
	"fmt"
	"math"

	"github.com/iafilius/RubricViewer/src/types"
)

var (
	// ErrInvalidExponent is returned for a power rubric exponent that is not a finite k > 0.
	ErrInvalidExponent = errors.New("rubric: exponent must be finite and > 0")
	// ErrEmptyParts is returned when a composite has no (k, w) parts.
	ErrEmptyParts = errors.New("rubric: composite needs at least one part")
	// ErrInvalidBand is returned for band-pass parameters that cannot produce a curve.
	ErrInvalidBand = errors.New("rubric: invalid band-pass parameters")
)

// Func is a scalar curve y = f(x).
type Func func(x float64) float64

// Power is the power rubric F_k(x) = x^k / (x^k + (1-x)^k).
// k must be > 0; see ValidateExponent.
func Power(x, k float64) float64 {
	xk := math.Pow(x, k)
	omxk := math.Pow(1-x, k)
	return xk / (xk + omxk)
}

// PowerFunc binds k.
func PowerFunc(k float64) Func {
	return func(x float64) float64 { return Power(x, k) }
}

// ValidateExponent rejects exponents outside the contract of Power.
func ValidateExponent(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidExponent, k)
	}
	return nil
}

// Exotic is the cubic hybrid 0.5 + 0.5(2x-1)^3: flat around the centre,
// steep towards both ends.
func Exotic(x float64) float64 {
	t := 2*x - 1
	return 0.5 + 0.5*t*t*t
}

// Piecewise breakpoints.
const (
	piecewiseP0 = 0.2
	piecewiseP1 = 0.4
	piecewiseP2 = 0.6
)

// Piecewise is the three segment hybrid: slope A below 0.2, slope B up to 0.4,
// then a plateau at 0.2(A+B) through 0.6. The upper half mirrors the lower one.
type Piecewise struct {
	A float64
	B float64
}

// DefaultPiecewise has a plateau level of exactly 0.5.
func DefaultPiecewise() Piecewise { return Piecewise{A: 0.5, B: 2.0} }

// FlatLevel is the plateau height.
func (p Piecewise) FlatLevel() float64 { return 0.2 * (p.A + p.B) }

// Eval returns G(x).
func (p Piecewise) Eval(x float64) float64 {
	if x <= piecewiseP2 {
		switch {
		case x < piecewiseP0:
			return p.A * x
		case x < piecewiseP1:
			return p.A*piecewiseP0 + p.B*(x-piecewiseP0)
		default:
			return p.FlatLevel()
		}
	}
	return 1 - p.Eval(1-x)
}

// Part is one (k, w) term of a composite.
type Part struct {
	K float64 `yaml:"k"`
	W float64 `yaml:"w"`
}

// DefaultParts mixes a flat-middle, a steep-middle and a steeper curve.
func DefaultParts() []Part {
	return []Part{
		{K: 0.5, W: 0.60},
		{K: 2.0, W: 0.30},
		{K: 3.0, W: 0.10},
	}
}

// ValidateParts checks that parts is non-empty and every exponent is valid.
func ValidateParts(parts []Part) error {
	if len(parts) == 0 {
		return ErrEmptyParts
	}
	for i, p := range parts {
		if err := ValidateExponent(p.K); err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
	}
	return nil
}

// Composite returns Σ (w_i/W)·F_{k_i}(x) where W is the sum of the weights.
// A zero weight sum uses divisor 1.
func Composite(x float64, parts []Part) float64 {
	wsum := 0.0
	for _, p := range parts {
		wsum += p.W
	}
	if wsum == 0 {
		wsum = 1
	}
	y := 0.0
	for _, p := range parts {
		y += (p.W / wsum) * Power(x, p.K)
	}
	return y
}

// CompositeFunc binds parts. The slice is copied.
func CompositeFunc(parts []Part) Func {
	ps := append([]Part(nil), parts...)
	return func(x float64) float64 { return Composite(x, ps) }
}

// BaselinePoints are the reference markers drawn on every chart that asks for them.
func BaselinePoints() []types.Sample {
	return []types.Sample{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 1}}
}
