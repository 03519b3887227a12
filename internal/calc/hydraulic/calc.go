// Package hydraulic analyzes one-dimensional seepage through stratified
// soil: equivalent permeability, Darcy velocities, stresses under steady
// vertical flow, and the critical gradient / liquefaction safety factor.
package hydraulic

import (
	"math"
	"sort"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/soil"
)

const epsilon = 1e-9

const (
	DirectionHorizontal = "horizontal"
	DirectionVertical   = "vertical"

	FlowUpward   = "upward"
	FlowDownward = "downward"
)

// FlowLayer is one stratum of the seepage column, top down.
type FlowLayer struct {
	ThicknessM   float64  `json:"thickness_m"`
	KMPerS       float64  `json:"k_m_per_s"`
	Porosity     *float64 `json:"porosity,omitempty"`
	GammaSatKNM3 *float64 `json:"gamma_sat_kn_m3,omitempty"`
}

type Input struct {
	Layers []FlowLayer `json:"layers"`

	EquivalentKDirection string `json:"equivalent_k_direction,omitempty"`

	AppliedGradient *float64 `json:"applied_gradient,omitempty"`

	StressDepthsM []float64 `json:"stress_depths_m,omitempty"`
	EntryWTDepthM *float64  `json:"entry_wt_depth_m,omitempty"`
	ExitWTDepthM  *float64  `json:"exit_wt_depth_m,omitempty"`
	FlowDirection string    `json:"flow_direction,omitempty"`

	GammaWKNM3 float64 `json:"gamma_w_kn_m3,omitempty"`
}

// FlowStressPoint carries the stress state and total head at one depth
// under steady vertical seepage.
type FlowStressPoint struct {
	DepthM       float64 `json:"depth_m"`
	TotalKPa     float64 `json:"total_kpa"`
	PoreKPa      float64 `json:"pore_kpa"`
	EffectiveKPa float64 `json:"effective_kpa"`
	TotalHeadM   float64 `json:"total_head_m"`
}

type Result struct {
	EquivalentKMPerS *float64 `json:"equivalent_k_m_per_s,omitempty"`

	DischargeVelocityMPerS *float64 `json:"discharge_velocity_m_per_s,omitempty"`
	SeepageVelocityMPerS   *float64 `json:"seepage_velocity_m_per_s,omitempty"`

	MeanGradient     *float64 `json:"mean_gradient,omitempty"`
	CriticalGradient *float64 `json:"critical_gradient,omitempty"`
	LiquefactionFS   *float64 `json:"liquefaction_fs,omitempty"`

	StressPoints []FlowStressPoint `json:"stress_points,omitempty"`
}

func ptr(v float64) *float64 { return &v }

// EquivalentK computes the equivalent permeability of the column: the
// thickness-weighted mean for horizontal flow, the weighted harmonic mean
// for vertical. An impervious layer zeroes the vertical value.
func EquivalentK(layers []FlowLayer, direction string) (float64, error) {
	if len(layers) == 0 {
		return 0, calcerr.Validationf("at least one layer is required")
	}
	total := 0.0
	for i, l := range layers {
		if l.ThicknessM <= 0 {
			return 0, calcerr.Validationf("layer %d: thickness must be > 0", i+1)
		}
		if l.KMPerS < 0 {
			return 0, calcerr.Validationf("layer %d: permeability must be >= 0", i+1)
		}
		total += l.ThicknessM
	}

	switch direction {
	case DirectionHorizontal:
		sum := 0.0
		for _, l := range layers {
			sum += l.KMPerS * l.ThicknessM
		}
		return sum / total, nil
	case DirectionVertical:
		den := 0.0
		for _, l := range layers {
			if l.KMPerS <= epsilon {
				return 0, nil
			}
			den += l.ThicknessM / l.KMPerS
		}
		return total / den, nil
	default:
		return 0, calcerr.Validationf("equivalent permeability direction must be %q or %q", DirectionHorizontal, DirectionVertical)
	}
}

// CriticalGradient returns icrit = γ'/γw for the given saturated unit
// weight.
func CriticalGradient(gammaSat, gammaW float64) (float64, error) {
	if gammaW <= epsilon {
		return 0, calcerr.Validationf("unit weight of water must be > 0")
	}
	sub := gammaSat - gammaW
	if sub < 0 {
		return 0, calcerr.Validationf("saturated unit weight (%.2f) below the unit weight of water", gammaSat)
	}
	return sub / gammaW, nil
}

// Calculate runs whichever seepage queries the input carries: equivalent
// permeability when a direction is named, Darcy velocities when a gradient
// is available, and the flow stress profile when the boundary water levels
// are given.
func Calculate(in Input) (Result, error) {
	gammaW := in.GammaWKNM3
	if gammaW == 0 {
		gammaW = soil.DefaultGammaW
	}
	if gammaW <= 0 {
		return Result{}, calcerr.Validationf("unit weight of water must be > 0")
	}
	if len(in.Layers) == 0 {
		return Result{}, calcerr.Validationf("at least one layer is required")
	}

	var res Result

	if in.EquivalentKDirection != "" {
		keq, err := EquivalentK(in.Layers, in.EquivalentKDirection)
		if err != nil {
			return Result{}, err
		}
		res.EquivalentKMPerS = ptr(keq)
	}

	var meanGradient *float64
	if in.EntryWTDepthM != nil || in.ExitWTDepthM != nil || len(in.StressDepthsM) > 0 {
		points, grad, err := flowStresses(in, gammaW)
		if err != nil {
			return Result{}, err
		}
		res.StressPoints = points
		meanGradient = ptr(grad)
		res.MeanGradient = meanGradient
	}

	if gradient := activeGradient(in, meanGradient); gradient != nil {
		kv, err := EquivalentK(in.Layers, DirectionVertical)
		if err != nil {
			return Result{}, err
		}
		v := kv * *gradient
		res.DischargeVelocityMPerS = ptr(v)
		if n, ok := meanPorosity(in.Layers); ok {
			res.SeepageVelocityMPerS = ptr(v / n)
		}
	}

	if gammaSat, ok := meanGammaSat(in.Layers); ok {
		icrit, err := CriticalGradient(gammaSat, gammaW)
		if err != nil {
			return Result{}, err
		}
		res.CriticalGradient = ptr(icrit)

		if up := upwardGradient(in, meanGradient); up > epsilon {
			res.LiquefactionFS = ptr(icrit / up)
		}
	}

	return res, nil
}

// activeGradient picks the magnitude driving the Darcy velocities: the
// explicit applied gradient wins over the one derived from the water
// levels.
func activeGradient(in Input, meanGradient *float64) *float64 {
	if in.AppliedGradient != nil {
		if *in.AppliedGradient < 0 {
			return nil
		}
		return in.AppliedGradient
	}
	if meanGradient != nil {
		return ptr(math.Abs(*meanGradient))
	}
	return nil
}

func upwardGradient(in Input, meanGradient *float64) float64 {
	if meanGradient != nil && *meanGradient < 0 {
		return -*meanGradient
	}
	if in.AppliedGradient != nil && in.FlowDirection == FlowUpward {
		return *in.AppliedGradient
	}
	return 0
}

// flowStresses computes σv, u and σ'v at the query depths under a uniform
// mean gradient, with the datum at the column surface and depth positive
// down. The mean gradient is positive for downward flow.
func flowStresses(in Input, gammaW float64) ([]FlowStressPoint, float64, error) {
	if in.EntryWTDepthM == nil || in.ExitWTDepthM == nil {
		return nil, 0, calcerr.Validationf("both entry and exit water levels are required for flow stresses")
	}
	if *in.EntryWTDepthM < 0 || *in.ExitWTDepthM < 0 {
		return nil, 0, calcerr.Validationf("water level depths must be >= 0")
	}
	if len(in.StressDepthsM) == 0 {
		return nil, 0, calcerr.Validationf("at least one stress depth is required")
	}

	total := 0.0
	for i, l := range in.Layers {
		if l.ThicknessM <= 0 {
			return nil, 0, calcerr.Validationf("layer %d: thickness must be > 0", i+1)
		}
		if l.GammaSatKNM3 == nil || *l.GammaSatKNM3 <= 0 {
			return nil, 0, calcerr.Validationf("layer %d: saturated unit weight is required for flow stresses", i+1)
		}
		total += l.ThicknessM
	}

	entryHead := -*in.EntryWTDepthM
	exitHead := -*in.ExitWTDepthM
	gradient := (entryHead - exitHead) / total

	switch in.FlowDirection {
	case FlowDownward:
		if gradient < -epsilon {
			return nil, 0, calcerr.Validationf("downward flow is inconsistent with the entry level below the exit level")
		}
	case FlowUpward:
		if gradient > epsilon {
			return nil, 0, calcerr.Validationf("upward flow is inconsistent with the entry level above the exit level")
		}
	case "":
	default:
		return nil, 0, calcerr.Validationf("flow direction must be %q or %q", FlowUpward, FlowDownward)
	}

	depths := append([]float64(nil), in.StressDepthsM...)
	sort.Float64s(depths)

	points := make([]FlowStressPoint, 0, len(depths))
	for _, z := range depths {
		if z < 0 {
			return nil, 0, calcerr.Validationf("stress depths must be >= 0")
		}
		zc := math.Min(z, total)

		sigma := 0.0
		remaining := zc
		for _, l := range in.Layers {
			dz := math.Min(remaining, l.ThicknessM)
			sigma += *l.GammaSatKNM3 * dz
			remaining -= dz
			if remaining <= epsilon {
				break
			}
		}

		head := entryHead - gradient*zc
		u := math.Max(0, gammaW*(head+zc))
		eff := math.Max(0, sigma-u)

		points = append(points, FlowStressPoint{
			DepthM:       z,
			TotalKPa:     sigma,
			PoreKPa:      u,
			EffectiveKPa: eff,
			TotalHeadM:   head,
		})
	}
	return points, gradient, nil
}

// meanPorosity is the thickness-weighted porosity, available only when
// every layer defines one.
func meanPorosity(layers []FlowLayer) (float64, bool) {
	sum, total := 0.0, 0.0
	for _, l := range layers {
		if l.Porosity == nil || *l.Porosity <= 0 || *l.Porosity >= 1 {
			return 0, false
		}
		sum += *l.Porosity * l.ThicknessM
		total += l.ThicknessM
	}
	if total <= epsilon {
		return 0, false
	}
	return sum / total, true
}

func meanGammaSat(layers []FlowLayer) (float64, bool) {
	sum, total := 0.0, 0.0
	for _, l := range layers {
		if l.GammaSatKNM3 == nil || *l.GammaSatKNM3 <= 0 {
			return 0, false
		}
		sum += *l.GammaSatKNM3 * l.ThicknessM
		total += l.ThicknessM
	}
	if total <= epsilon {
		return 0, false
	}
	return sum / total, true
}
