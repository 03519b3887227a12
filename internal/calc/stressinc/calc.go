// Package stressinc computes the additional vertical stress a surface load
// induces at a subsurface point, using the classical elastic half-space
// solutions: Boussinesq for a point load, Carothers for an infinite strip
// and Love for a circular area. Off-axis circular loads have no closed form
// and fall back to an interpolated influence chart.
package stressinc

import (
	"math"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/soil"
)

const epsilon = 1e-9

// Method labels identify which solution produced a result.
const (
	MethodBoussinesq = "Boussinesq (point)"
	MethodCarothers  = "Carothers (strip)"
	MethodLoveCenter = "Love (circular, center)"
	MethodLoveChart  = "Love (circular, chart)"
)

type Input struct {
	Point        soil.Point         `json:"point"`
	LoadType     soil.LoadType      `json:"load_type"`
	PointLoad    *soil.PointLoad    `json:"point_load,omitempty"`
	StripLoad    *soil.StripLoad    `json:"strip_load,omitempty"`
	CircularLoad *soil.CircularLoad `json:"circular_load,omitempty"`
}

type Result struct {
	DeltaSigmaVKPa float64 `json:"delta_sigma_v_kpa"`
	Method         string  `json:"method"`
}

// Calculate dispatches on the load type tag. The point of interest must lie
// strictly below the surface.
func Calculate(in Input) (Result, error) {
	if in.Point.ZM <= epsilon {
		return Result{}, calcerr.Validationf("point of interest depth z must be > 0")
	}

	switch in.LoadType {
	case soil.LoadPoint:
		if in.PointLoad == nil {
			return Result{}, calcerr.Validationf("point_load data is required for load_type %q", in.LoadType)
		}
		ds, err := boussinesqPoint(*in.PointLoad, in.Point)
		if err != nil {
			return Result{}, err
		}
		return Result{DeltaSigmaVKPa: ds, Method: MethodBoussinesq}, nil

	case soil.LoadStrip:
		if in.StripLoad == nil {
			return Result{}, calcerr.Validationf("strip_load data is required for load_type %q", in.LoadType)
		}
		ds, err := carothersStrip(*in.StripLoad, in.Point)
		if err != nil {
			return Result{}, err
		}
		return Result{DeltaSigmaVKPa: ds, Method: MethodCarothers}, nil

	case soil.LoadCircular:
		if in.CircularLoad == nil {
			return Result{}, calcerr.Validationf("circular_load data is required for load_type %q", in.LoadType)
		}
		return loveCircular(*in.CircularLoad, in.Point)

	default:
		return Result{}, calcerr.Validationf("unsupported load type %q", in.LoadType)
	}
}

// boussinesqPoint evaluates Δσv = 3·P·z³ / (2π·(r²+z²)^2.5) beneath a
// concentrated surface load.
func boussinesqPoint(load soil.PointLoad, p soil.Point) (float64, error) {
	if load.PKN <= 0 {
		return 0, calcerr.Validationf("point load P must be > 0")
	}
	dx := p.XM - load.XM
	dy := p.YM - load.YM
	r2 := dx*dx + dy*dy
	den := r2 + p.ZM*p.ZM
	if den <= epsilon {
		// Only reachable with z ~ 0, which validation already rejects.
		return 0, calcerr.Computationf("degenerate denominator in Boussinesq solution")
	}
	return 3 * load.PKN * math.Pow(p.ZM, 3) / (2 * math.Pi * math.Pow(den, 2.5)), nil
}

// carothersStrip evaluates the strip-load solution in the load's
// cross-sectional plane: Δσv = (q/π)·(Δα + sin(Δα)·cos(Σα)) with the edge
// angles measured from the vertical through the point.
func carothersStrip(load soil.StripLoad, p soil.Point) (float64, error) {
	if load.WidthM <= 0 {
		return 0, calcerr.Validationf("strip width must be > 0")
	}
	if load.IntensityKPa <= 0 {
		return 0, calcerr.Validationf("strip intensity must be > 0")
	}
	x := p.XM - load.CenterXM
	half := load.WidthM / 2

	// At the surface the arctangent ratio is ill-defined; the stress is the
	// full intensity inside the strip and zero outside.
	if p.ZM <= epsilon {
		if math.Abs(x) < half {
			return load.IntensityKPa, nil
		}
		return 0, nil
	}

	a1 := math.Atan((half - x) / p.ZM)
	a2 := math.Atan((-half - x) / p.ZM)
	deltaAlpha := a1 - a2
	sumAlpha := a1 + a2
	return load.IntensityKPa / math.Pi * (deltaAlpha + math.Sin(deltaAlpha)*math.Cos(sumAlpha)), nil
}

// loveCircular uses the closed-form on-axis solution when the point sits on
// the circle's vertical axis, and the influence chart otherwise. The chart
// is an approximation bounded only by the coarseness of its tabulation.
func loveCircular(load soil.CircularLoad, p soil.Point) (Result, error) {
	if load.RadiusM <= 0 {
		return Result{}, calcerr.Validationf("circular load radius must be > 0")
	}
	if load.IntensityKPa <= 0 {
		return Result{}, calcerr.Validationf("circular load intensity must be > 0")
	}

	r := math.Hypot(p.XM-load.CenterXM, p.YM-load.CenterYM)
	if r <= epsilon {
		return Result{DeltaSigmaVKPa: loveOnAxis(load, p.ZM), Method: MethodLoveCenter}, nil
	}

	factor := influenceFactor(p.ZM/load.RadiusM, r/load.RadiusM)
	return Result{DeltaSigmaVKPa: load.IntensityKPa * factor, Method: MethodLoveChart}, nil
}

// loveOnAxis evaluates Δσv = q·[1 − (1+(R/z)²)^−1.5] with underflow and
// overflow guards on the inner term.
func loveOnAxis(load soil.CircularLoad, z float64) float64 {
	rz2 := (load.RadiusM / z) * (load.RadiusM / z)
	base := 1 / (1 + rz2)
	if base < epsilon {
		// (R/z)² huge: the point is shallow relative to the radius and the
		// full intensity arrives.
		return load.IntensityKPa
	}
	return load.IntensityKPa * (1 - math.Pow(base, 1.5))
}
