// Package compaction analyzes Proctor test data: dry unit weight per trial,
// a polynomial compaction curve fitted by least squares, the optimum
// moisture content and maximum dry unit weight read off that curve, and the
// full-saturation reference curve when Gs is known.
package compaction

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/soil"
)

const epsilon = 1e-9

// TrialPoint is one Proctor mold trial. Masses in grams, volume in cm³; the
// moisture weighings come from a separate tin.
type TrialPoint struct {
	MoldVolumeCm3 float64 `json:"mold_volume_cm3"`
	MoldMassG     float64 `json:"mold_mass_g"`
	WetTotalG     float64 `json:"wet_total_g"`

	WetWithTareG float64 `json:"wet_with_tare_g"`
	DryWithTareG float64 `json:"dry_with_tare_g"`
	TareG        float64 `json:"tare_g"`
}

type Input struct {
	Trials     []TrialPoint `json:"trials"`
	Gs         *float64     `json:"gs,omitempty"`
	GammaWKNM3 float64      `json:"gamma_w_kn_m3,omitempty"`
}

// CurvePoint pairs a moisture content with a dry unit weight.
type CurvePoint struct {
	MoisturePct float64 `json:"moisture_pct"`
	GammaDKNM3  float64 `json:"gamma_d_kn_m3"`
}

type Result struct {
	OptimumMoisturePct float64      `json:"optimum_moisture_pct"`
	GammaDMaxKNM3      float64      `json:"gamma_d_max_kn_m3"`
	CompactionCurve    []CurvePoint `json:"compaction_curve"`
	SaturationCurve    []CurvePoint `json:"saturation_curve,omitempty"`
}

// Calculate reduces the trials, fits the compaction curve (cubic with four
// or more points, parabola with three) and locates its peak from the
// derivative roots. If the fit has no interior maximum the highest measured
// trial is reported instead.
func Calculate(in Input) (Result, error) {
	gammaW := in.GammaWKNM3
	if gammaW == 0 {
		gammaW = soil.DefaultGammaW
	}
	if gammaW <= 0 {
		return Result{}, calcerr.Validationf("unit weight of water must be > 0")
	}
	if in.Gs != nil && *in.Gs <= 0 {
		return Result{}, calcerr.Validationf("Gs must be > 0")
	}
	if len(in.Trials) < 3 {
		return Result{}, calcerr.Validationf("at least 3 trials are required to draw the compaction curve")
	}

	points := make([]CurvePoint, 0, len(in.Trials))
	for i, tr := range in.Trials {
		if tr.MoldVolumeCm3 <= 0 {
			return Result{}, calcerr.Validationf("trial %d: mold volume must be > 0", i+1)
		}
		if tr.MoldMassG < 0 {
			return Result{}, calcerr.Validationf("trial %d: mold mass must be >= 0", i+1)
		}
		if tr.WetTotalG < tr.MoldMassG {
			return Result{}, calcerr.Validationf("trial %d: total wet mass below mold mass", i+1)
		}

		waterG := tr.WetWithTareG - tr.DryWithTareG
		solidsG := tr.DryWithTareG - tr.TareG
		if solidsG <= epsilon {
			return Result{}, calcerr.Validationf("trial %d: dry soil mass in the moisture tin is zero", i+1)
		}
		if waterG < 0 {
			return Result{}, calcerr.Validationf("trial %d: negative water mass in the moisture tin", i+1)
		}
		w := waterG / solidsG

		// Bulk density in g/cm³ equals the density ratio to water, so the
		// wet unit weight is that ratio times γw.
		rhoWet := (tr.WetTotalG - tr.MoldMassG) / tr.MoldVolumeCm3
		gammaD := rhoWet * gammaW / (1 + w)

		points = append(points, CurvePoint{MoisturePct: w * 100, GammaDKNM3: gammaD})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].MoisturePct < points[j].MoisturePct })

	ws := make([]float64, len(points))
	gds := make([]float64, len(points))
	for i, p := range points {
		ws[i] = p.MoisturePct
		gds[i] = p.GammaDKNM3
	}

	degree := 2
	if len(points) >= 4 {
		degree = 3
	}

	wOpt, gdMax := points[argmax(gds)].MoisturePct, gds[argmax(gds)]
	if coeffs, err := polyfit(ws, gds, degree); err == nil {
		if w, ok := curvePeak(coeffs, ws[0], ws[len(ws)-1]); ok {
			wOpt, gdMax = w, polyval(coeffs, w)
		}
	}

	res := Result{
		OptimumMoisturePct: wOpt,
		GammaDMaxKNM3:      gdMax,
		CompactionCurve:    points,
	}

	if in.Gs != nil {
		res.SaturationCurve = saturationCurve(*in.Gs, gammaW, ws[0], ws[len(ws)-1])
	}
	return res, nil
}

// polyfit solves the least squares Vandermonde system for ascending
// coefficients c0..cdeg.
func polyfit(xs, ys []float64, degree int) ([]float64, error) {
	n := len(xs)
	a := mat.NewDense(n, degree+1, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	b := mat.NewVecDense(n, ys)

	var qr mat.QR
	qr.Factorize(a)
	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, b); err != nil {
		return nil, calcerr.Computationf("compaction curve fit failed: %v", err)
	}

	coeffs := make([]float64, degree+1)
	for j := range coeffs {
		coeffs[j] = c.AtVec(j)
	}
	return coeffs, nil
}

func polyval(coeffs []float64, x float64) float64 {
	v := 0.0
	for j := len(coeffs) - 1; j >= 0; j-- {
		v = v*x + coeffs[j]
	}
	return v
}

// curvePeak returns the moisture of the first derivative root inside
// [lo, hi] where the second derivative is negative.
func curvePeak(coeffs []float64, lo, hi float64) (float64, bool) {
	var roots []float64
	switch len(coeffs) {
	case 4:
		// derivative 3c3·w² + 2c2·w + c1
		a, b, c := 3*coeffs[3], 2*coeffs[2], coeffs[1]
		if math.Abs(a) <= epsilon {
			roots = linearRoot(b, c)
		} else {
			disc := b*b - 4*a*c
			if disc >= 0 {
				sq := math.Sqrt(disc)
				roots = []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
			}
		}
	case 3:
		roots = linearRoot(2*coeffs[2], coeffs[1])
	}

	sort.Float64s(roots)
	for _, r := range roots {
		if r < lo || r > hi {
			continue
		}
		if secondDerivative(coeffs, r) < 0 {
			return r, true
		}
	}
	return 0, false
}

func linearRoot(a, b float64) []float64 {
	if math.Abs(a) <= epsilon {
		return nil
	}
	return []float64{-b / a}
}

func secondDerivative(coeffs []float64, x float64) float64 {
	v := 0.0
	if len(coeffs) > 3 {
		v += 6 * coeffs[3] * x
	}
	if len(coeffs) > 2 {
		v += 2 * coeffs[2]
	}
	return v
}

// saturationCurve samples γd = Gs·γw / (1 + Gs·w) over a range slightly
// wider than the measured moistures.
func saturationCurve(gs, gammaW, wMin, wMax float64) []CurvePoint {
	const samples = 20
	lo := math.Max(0, wMin-5)
	hi := wMax + 10
	step := (hi - lo) / (samples - 1)

	curve := make([]CurvePoint, 0, samples)
	for i := 0; i < samples; i++ {
		wPct := lo + float64(i)*step
		den := 1 + gs*wPct/100
		if math.Abs(den) <= epsilon {
			continue
		}
		curve = append(curve, CurvePoint{MoisturePct: wPct, GammaDKNM3: gs * gammaW / den})
	}
	return curve
}

func argmax(vs []float64) int {
	best := 0
	for i, v := range vs {
		if v > vs[best] {
			best = i
		}
	}
	return best
}
