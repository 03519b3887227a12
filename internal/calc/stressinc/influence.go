package stressinc

// Digitized Love influence chart for a uniformly loaded circular area,
// keyed by normalized depth z/R and normalized radial offset r/R. The
// tabulated value is the influence factor Δσv/q. Assembled once at process
// start and read-only afterwards.

var chartOffsets = []float64{0, 0.5, 0.75, 1.0, 1.25, 1.5}

type chartCurve struct {
	zOverR  float64
	factors []float64 // aligned with chartOffsets
}

var chartCurves = []chartCurve{
	{0.5, []float64{0.91, 0.85, 0.75, 0.50, 0.23, 0.10}},
	{1.0, []float64{0.65, 0.60, 0.52, 0.37, 0.22, 0.12}},
	{1.5, []float64{0.42, 0.40, 0.36, 0.29, 0.20, 0.13}},
	{2.0, []float64{0.29, 0.28, 0.26, 0.22, 0.17, 0.12}},
	{3.0, []float64{0.14, 0.14, 0.13, 0.12, 0.10, 0.08}},
}

// influenceFactor bilinearly interpolates the chart: first between the two
// depth curves bracketing zOverR, then along r/R in the blended curve.
// Queries outside the tabulated range clamp to the nearest tabulated value
// rather than extrapolate; the result is never negative.
func influenceFactor(zOverR, rOverR float64) float64 {
	lower := chartCurves[0]
	upper := chartCurves[len(chartCurves)-1]
	for _, c := range chartCurves {
		if c.zOverR <= zOverR && c.zOverR >= lower.zOverR {
			lower = c
		}
	}
	for i := len(chartCurves) - 1; i >= 0; i-- {
		c := chartCurves[i]
		if c.zOverR >= zOverR && c.zOverR <= upper.zOverR {
			upper = c
		}
	}
	blended := make([]float64, len(chartOffsets))
	if lower.zOverR == upper.zOverR {
		copy(blended, lower.factors)
	} else {
		wUpper := (zOverR - lower.zOverR) / (upper.zOverR - lower.zOverR)
		wLower := 1 - wUpper
		for i := range chartOffsets {
			blended[i] = wLower*lower.factors[i] + wUpper*upper.factors[i]
		}
	}

	factor := interpClamped(chartOffsets, blended, rOverR)
	if factor < 0 {
		factor = 0
	}
	return factor
}

// interpClamped linearly interpolates ys over ascending xs, clamping to the
// endpoint values outside the range.
func interpClamped(xs, ys []float64, x float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	for i := 1; i < len(xs); i++ {
		if x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[len(ys)-1]
}
