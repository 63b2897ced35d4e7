package render

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceTicks generates up to n tick marks on [min, max] using 1, 2, 2.5, 5
// steps scaled by a power of ten. Ticks outside [min, max] are dropped so a
// zoomed viewport never draws labels off the plot.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep-1e-9) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= max+bestStep*1e-6; v += bestStep {
		rv := round6(v)
		ticks = append(ticks, chart.Tick{Value: rv, Label: formatTick(rv, bestStep)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

// round6 rounds to 6 decimal places to keep accumulated steps stable.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// formatTick prints v with as many decimals as the step needs.
func formatTick(v, step float64) string {
	if v == 0 {
		return "0"
	}
	decimals := 0
	for s := step; decimals < 6 && math.Abs(s-math.Round(s)) > 1e-9; s *= 10 {
		decimals++
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
