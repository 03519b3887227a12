// Package geostatic builds the depth-wise stress profile of a stratified
// soil: total vertical stress, pore pressure, effective vertical and
// effective horizontal stress, honoring the water table and its capillary
// fringe.
package geostatic

import (
	"math"
	"sort"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/soil"
)

const epsilon = 1e-9

type Input struct {
	Layers     []soil.Layer    `json:"layers"`
	WaterTable soil.WaterTable `json:"water_table"`
}

type Result struct {
	Points []soil.StressPoint `json:"points"`
}

// Calculate walks the layers surface-down, accumulating total vertical
// stress with the natural unit weight above the water table and the
// saturated unit weight below it. A stress point is emitted at the surface,
// at every layer interface and at the water-table crossing.
func Calculate(in Input) (Result, error) {
	if len(in.Layers) == 0 {
		return Result{}, calcerr.Validationf("at least one soil layer is required")
	}
	if in.WaterTable.DepthM < 0 {
		return Result{}, calcerr.Validationf("water table depth must be >= 0")
	}
	if in.WaterTable.CapillaryRiseM < 0 {
		return Result{}, calcerr.Validationf("capillary rise must be >= 0")
	}
	for i, layer := range in.Layers {
		if layer.ThicknessM <= 0 {
			return Result{}, calcerr.Validationf("layer %d: thickness must be > 0", i+1)
		}
		if layer.K0 != nil && *layer.K0 < 0 {
			return Result{}, calcerr.Validationf("layer %d: K0 must be >= 0", i+1)
		}
	}

	na := in.WaterTable.DepthM
	gammaW := in.WaterTable.EffectiveGammaW()
	capillary := in.WaterTable.CapillaryRiseM

	type rawPoint struct {
		depth float64
		total float64
	}
	raw := []rawPoint{{depth: 0, total: 0}}

	depth := 0.0
	total := 0.0
	for i, layer := range in.Layers {
		top := depth
		bottom := depth + layer.ThicknessM

		switch {
		case bottom <= na+epsilon:
			// Entirely above the water table.
			if layer.GammaNatKNM3 == nil {
				return Result{}, calcerr.Validationf(
					"layer %d (%.2f-%.2f m) lies above the water table (%.2f m) and has no natural unit weight", i+1, top, bottom, na)
			}
			total += *layer.GammaNatKNM3 * layer.ThicknessM
		case top >= na-epsilon:
			// Entirely below the water table.
			if layer.GammaSatKNM3 == nil {
				return Result{}, calcerr.Validationf(
					"layer %d (%.2f-%.2f m) lies below the water table (%.2f m) and has no saturated unit weight", i+1, top, bottom, na)
			}
			total += *layer.GammaSatKNM3 * layer.ThicknessM
		default:
			// The water table cuts through this layer: split the span and
			// emit an explicit point at the crossing.
			if layer.GammaNatKNM3 == nil {
				return Result{}, calcerr.Validationf(
					"layer %d straddles the water table (%.2f m) and has no natural unit weight", i+1, na)
			}
			if layer.GammaSatKNM3 == nil {
				return Result{}, calcerr.Validationf(
					"layer %d straddles the water table (%.2f m) and has no saturated unit weight", i+1, na)
			}
			above := na - top
			below := bottom - na
			total += *layer.GammaNatKNM3 * above
			raw = append(raw, rawPoint{depth: na, total: total})
			total += *layer.GammaSatKNM3 * below
		}

		raw = append(raw, rawPoint{depth: bottom, total: total})
		depth = bottom
	}

	sort.Slice(raw, func(i, j int) bool { return raw[i].depth < raw[j].depth })

	points := make([]soil.StressPoint, 0, len(raw))
	for _, p := range raw {
		if n := len(points); n > 0 && math.Abs(points[n-1].DepthM-p.depth) < 1e-6 {
			continue
		}
		u := porePressure(p.depth, na, capillary, gammaW)
		effective := p.total - u
		if effective < 0 {
			effective = 0
		}
		k0 := k0At(in.Layers, p.depth)
		points = append(points, soil.StressPoint{
			DepthM:        p.depth,
			TotalKPa:      p.total,
			PoreKPa:       u,
			EffectiveKPa:  effective,
			EffectiveHKPa: effective * k0,
		})
	}

	return Result{Points: points}, nil
}

// porePressure returns u at depth d: hydrostatic below the water table,
// suction (negative) within the capillary fringe, zero above it.
func porePressure(d, na, capillary, gammaW float64) float64 {
	head := d - na
	switch {
	case head >= 0:
		return head * gammaW
	case -head <= capillary+epsilon:
		return head * gammaW // head is negative here
	default:
		return 0
	}
}

// k0At finds the K0 of the layer whose span contains depth d. Interface
// points take the layer immediately below; the profile bottom keeps the
// last layer's value.
func k0At(layers []soil.Layer, d float64) float64 {
	top := 0.0
	for i, layer := range layers {
		bottom := top + layer.ThicknessM
		if d >= top-epsilon && d < bottom-epsilon {
			return layer.EffectiveK0()
		}
		if i == len(layers)-1 && d >= bottom-epsilon {
			return layer.EffectiveK0()
		}
		top = bottom
	}
	return layers[len(layers)-1].EffectiveK0()
}
