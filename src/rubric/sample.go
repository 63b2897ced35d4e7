package rubric

import "github.com/iafilius/RubricViewer/src/types"

// Sampling resolutions.
const (
	DefaultPoints     = 800
	DefaultBandPoints = 1200
)

// MidpointGrid returns x_i = (i+0.5)/n for i in [0,n). It never contains 0 or 1.
func MidpointGrid(n int) []float64 {
	if n <= 0 {
		return nil
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = (float64(i) + 0.5) / float64(n)
	}
	return xs
}

// SampleFunc evaluates f on the n-point midpoint grid.
func SampleFunc(f Func, n int) []types.Sample {
	xs := MidpointGrid(n)
	out := make([]types.Sample, len(xs))
	for i, x := range xs {
		out[i] = types.Sample{X: x, Y: f(x)}
	}
	return out
}
