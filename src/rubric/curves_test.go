package rubric

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testExponents = []float64{0.333, 0.5, 1, 2, 3, 7.5}

func TestPowerSymmetry(t *testing.T) {
	for _, k := range testExponents {
		for _, x := range MidpointGrid(DefaultPoints) {
			assert.InDeltaf(t, 1.0, Power(x, k)+Power(1-x, k), 1e-12, "k=%v x=%v", k, x)
		}
	}
}

func TestPowerIdentityAtOne(t *testing.T) {
	for _, x := range MidpointGrid(DefaultPoints) {
		require.InDelta(t, x, Power(x, 1), 1e-15)
	}
}

func TestPowerShape(t *testing.T) {
	// k<1 lifts the lower tail above the diagonal, k>1 pushes it below.
	assert.Greater(t, Power(0.1, 0.5), 0.1)
	assert.Less(t, Power(0.1, 2), 0.1)
	assert.InDelta(t, 0.5, Power(0.5, 3), 1e-15)
}

func TestValidateExponent(t *testing.T) {
	for _, k := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := ValidateExponent(k)
		require.Error(t, err, "k=%v", k)
		assert.True(t, errors.Is(err, ErrInvalidExponent))
	}
	assert.NoError(t, ValidateExponent(0.333))
}

func TestExoticOddSymmetry(t *testing.T) {
	assert.Equal(t, 0.5, Exotic(0.5))
	for _, x := range MidpointGrid(200) {
		assert.InDelta(t, 1.0, Exotic(x)+Exotic(1-x), 1e-12)
	}
	// flat near the centre, steep near the ends
	centre := Exotic(0.55) - Exotic(0.45)
	edge := Exotic(0.95) - Exotic(0.85)
	assert.Less(t, centre, edge)
}

func TestPiecewiseBreakpoints(t *testing.T) {
	p := DefaultPiecewise()
	require.Equal(t, 0.5, p.FlatLevel())
	assert.Equal(t, p.A*0.2, p.Eval(0.2))
	assert.Equal(t, p.FlatLevel(), p.Eval(0.5))
	assert.Equal(t, p.FlatLevel(), p.Eval(0.4))
	assert.Equal(t, p.FlatLevel(), p.Eval(0.6))
	assert.Equal(t, 0.05, p.Eval(0.1))
	for _, x := range MidpointGrid(DefaultPoints) {
		assert.InDeltaf(t, 1-p.Eval(x), p.Eval(1-x), 1e-12, "x=%v", x)
	}
}

func TestPiecewiseCustomSlopes(t *testing.T) {
	p := Piecewise{A: 1, B: 1}
	assert.InDelta(t, 0.4, p.FlatLevel(), 1e-15)
	assert.InDelta(t, 0.3, p.Eval(0.3), 1e-15)
}

func TestCompositeMatchesWeightedSum(t *testing.T) {
	parts := DefaultParts()
	for _, x := range MidpointGrid(DefaultPoints) {
		want := 0.6*Power(x, 0.5) + 0.3*Power(x, 2) + 0.1*Power(x, 3)
		require.InDelta(t, want, Composite(x, parts), 1e-12)
	}
}

func TestCompositeRenormalizesWeights(t *testing.T) {
	scaled := []Part{{K: 0.5, W: 6}, {K: 2, W: 3}, {K: 3, W: 1}}
	f := CompositeFunc(scaled)
	for _, x := range MidpointGrid(100) {
		assert.InDelta(t, Composite(x, DefaultParts()), f(x), 1e-12)
	}
}

func TestCompositeZeroWeights(t *testing.T) {
	parts := []Part{{K: 2, W: 0}, {K: 3, W: 0}}
	assert.Equal(t, 0.0, Composite(0.3, parts))
}

func TestValidateParts(t *testing.T) {
	assert.ErrorIs(t, ValidateParts(nil), ErrEmptyParts)
	assert.ErrorIs(t, ValidateParts([]Part{{K: -2, W: 1}}), ErrInvalidExponent)
	assert.NoError(t, ValidateParts(DefaultParts()))
}

func TestBaselinePoints(t *testing.T) {
	pts := BaselinePoints()
	require.Len(t, pts, 3)
	for _, p := range pts {
		assert.Equal(t, p.X, p.Y)
	}
	assert.Equal(t, 0.0, pts[0].X)
	assert.Equal(t, 1.0, pts[2].X)
}
