package rubric

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iafilius/RubricViewer/src/types"
)

// BandPass builds a monotone curve by integrating a slope profile made of two
// Gaussian bumps, one at Mu and one at its mirror 1-Mu, over a floor Eps.
// Payout grows slowly outside [Mu-2σ, Mu+2σ] (and the mirrored band) and
// sharply inside.
type BandPass struct {
	Mu    float64
	Sigma float64
	Eps   float64
	N     int
}

// DefaultBandPass is the band used by the "hyb-band" curve.
func DefaultBandPass() BandPass {
	return BandPass{Mu: 0.75, Sigma: 0.045, Eps: 0.008, N: DefaultBandPoints}
}

// Validate rejects parameters that would divide by zero or produce NaNs.
func (b BandPass) Validate() error {
	switch {
	case b.N <= 0:
		return fmt.Errorf("%w: n=%d", ErrInvalidBand, b.N)
	case math.IsNaN(b.Mu) || math.IsInf(b.Mu, 0):
		return fmt.Errorf("%w: mu=%v", ErrInvalidBand, b.Mu)
	case math.IsNaN(b.Sigma) || math.IsInf(b.Sigma, 0) || b.Sigma <= 0:
		return fmt.Errorf("%w: sigma=%v", ErrInvalidBand, b.Sigma)
	case math.IsNaN(b.Eps) || math.IsInf(b.Eps, 0) || b.Eps < 0:
		return fmt.Errorf("%w: eps=%v", ErrInvalidBand, b.Eps)
	}
	return nil
}

func gaussian(x, m, s float64) float64 {
	z := (x - m) / s
	return math.Exp(-0.5 * z * z)
}

// Weight is the raw, unnormalized slope profile w(x).
func (b BandPass) Weight(x float64) float64 {
	return gaussian(x, b.Mu, b.Sigma) + gaussian(x, 1-b.Mu, b.Sigma) + b.Eps
}

// BandCurve is the discretized result of BandPass.Build.
type BandCurve struct {
	X       []float64
	Y       []float64
	Weights []float64 // normalized so that sum(Weights)*Dx == 1
	Dx      float64
}

// Samples zips X and Y.
func (c BandCurve) Samples() []types.Sample {
	out := make([]types.Sample, len(c.X))
	for i := range c.X {
		out[i] = types.Sample{X: c.X[i], Y: c.Y[i]}
	}
	return out
}

// Build samples the weight profile on the midpoint grid, normalizes it to a
// unit discrete integral and integrates it with a running sum. The first value
// is clamped into [0,1] and the last is pinned to exactly 1.
func (b BandPass) Build() BandCurve {
	n := b.N
	if n <= 0 {
		return BandCurve{}
	}
	dx := 1 / float64(n)
	xs := MidpointGrid(n)
	w := make([]float64, n)
	sum := 0.0
	for i, x := range xs {
		w[i] = b.Weight(x)
		sum += w[i]
	}
	integral := sum * dx
	if integral == 0 {
		integral = 1
	}
	ys := make([]float64, n)
	c := 0.0
	for i := range w {
		w[i] /= integral
		c += w[i] * dx
		ys[i] = c
	}
	ys[0] = math.Max(0, math.Min(1, ys[0]))
	ys[n-1] = 1
	return BandCurve{X: xs, Y: ys, Weights: w, Dx: dx}
}

// Band returns the effective steep interval [max(0, μ-2σ), min(1, μ+2σ)].
func (b BandPass) Band() (float64, float64) {
	return math.Max(0, b.Mu-2*b.Sigma), math.Min(1, b.Mu+2*b.Sigma)
}

// BandLabel renders Band with two decimals, e.g. "0.66–0.84".
func (b BandPass) BandLabel() string {
	lo, hi := b.Band()
	return strconv.FormatFloat(lo, 'f', 2, 64) + "–" + strconv.FormatFloat(hi, 'f', 2, 64)
}
