// Package phaseindex resolves the phase relationships of a soil sample
// (void ratio, porosity, saturation, moisture, unit weights) from whatever
// sufficient subset of them the caller supplies, cascading through the
// fundamental identities until nothing more can be derived.
package phaseindex

import (
	"math"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/soil"
)

const epsilon = 1e-9

type Input struct {
	MoisturePct   *float64 `json:"moisture_pct,omitempty"`
	VoidRatio     *float64 `json:"void_ratio,omitempty"`
	PorosityPct   *float64 `json:"porosity_pct,omitempty"`
	SaturationPct *float64 `json:"saturation_pct,omitempty"`
	Gs            *float64 `json:"gs,omitempty"`
	GammaSKNM3    *float64 `json:"gamma_s_kn_m3,omitempty"`
	GammaNatKNM3  *float64 `json:"gamma_nat_kn_m3,omitempty"`
	GammaDKNM3    *float64 `json:"gamma_d_kn_m3,omitempty"`
	GammaWKNM3    float64  `json:"gamma_w_kn_m3,omitempty"`
}

type Result struct {
	GammaNatKNM3 *float64 `json:"gamma_nat_kn_m3,omitempty"`
	GammaDKNM3   *float64 `json:"gamma_d_kn_m3,omitempty"`
	GammaSatKNM3 *float64 `json:"gamma_sat_kn_m3,omitempty"`
	GammaSubKNM3 *float64 `json:"gamma_sub_kn_m3,omitempty"`
	GammaSKNM3   *float64 `json:"gamma_s_kn_m3,omitempty"`
	Gs           *float64 `json:"gs,omitempty"`
	VoidRatio    *float64 `json:"void_ratio,omitempty"`
	PorosityPct  *float64 `json:"porosity_pct,omitempty"`
	SaturationPct *float64 `json:"saturation_pct,omitempty"`
	MoisturePct  *float64 `json:"moisture_pct,omitempty"`

	// Normalized phase diagram for Vs = 1 cm³. Weights are in grams with
	// water at exactly 1 g/cm³; no unit guessing happens here.
	SolidsVolume *float64 `json:"solids_volume,omitempty"`
	WaterVolume  *float64 `json:"water_volume,omitempty"`
	AirVolume    *float64 `json:"air_volume,omitempty"`
	SolidsWeight *float64 `json:"solids_weight,omitempty"`
	WaterWeight  *float64 `json:"water_weight,omitempty"`
}

func ptr(v float64) *float64 { return &v }

// Calculate runs the cascade. Percent inputs are converted to fractions,
// each identity is tried in both directions and saturation is clamped into
// [0, 1] where data inconsistency would push it outside.
func Calculate(in Input) (Result, error) {
	gammaW := in.GammaWKNM3
	if gammaW == 0 {
		gammaW = soil.DefaultGammaW
	}
	if gammaW <= 0 {
		return Result{}, calcerr.Validationf("unit weight of water must be > 0")
	}

	var w, n, s *float64
	if in.MoisturePct != nil {
		if *in.MoisturePct < 0 {
			return Result{}, calcerr.Validationf("moisture content must be >= 0")
		}
		w = ptr(*in.MoisturePct / 100)
	}
	if in.PorosityPct != nil {
		if *in.PorosityPct < 0 || *in.PorosityPct >= 100 {
			return Result{}, calcerr.Validationf("porosity must be within [0, 100)")
		}
		n = ptr(*in.PorosityPct / 100)
	}
	if in.SaturationPct != nil {
		if *in.SaturationPct < 0 || *in.SaturationPct > 100 {
			return Result{}, calcerr.Validationf("saturation must be within [0, 100]")
		}
		s = ptr(*in.SaturationPct / 100)
	}

	e := in.VoidRatio
	gs := in.Gs
	gammaS := in.GammaSKNM3
	gammaNat := in.GammaNatKNM3
	gammaD := in.GammaDKNM3
	if e != nil && *e < 0 {
		return Result{}, calcerr.Validationf("void ratio must be >= 0")
	}

	// Gs and γs describe the same thing; derive one from the other and
	// reject contradictory pairs.
	switch {
	case gs == nil && gammaS != nil:
		gs = ptr(*gammaS / gammaW)
	case gammaS == nil && gs != nil:
		gammaS = ptr(*gs * gammaW)
	case gs != nil && gammaS != nil:
		if math.Abs(*gammaS-*gs*gammaW) > 1e-3**gammaS {
			return Result{}, calcerr.Validationf(
				"Gs (%.3f) and solids unit weight (%.2f) are inconsistent for gamma_w=%.2f", *gs, *gammaS, gammaW)
		}
	}

	// e <-> n
	if e == nil && n != nil {
		e = ptr(*n / (1 - *n))
	}
	if n == nil && e != nil {
		n = ptr(*e / (1 + *e))
	}

	// S·e = w·Gs, tried for whichever single unknown remains.
	switch {
	case s == nil && w != nil && gs != nil && e != nil:
		if *e <= epsilon {
			s = ptr(0.0)
		} else {
			s = ptr(clamp01(*w * *gs / *e))
		}
	case e == nil && w != nil && gs != nil && s != nil:
		if *s <= epsilon {
			if *w > epsilon {
				return Result{}, calcerr.Validationf("saturation cannot be 0 while moisture is positive")
			}
		} else {
			e = ptr(*w * *gs / *s)
		}
	case w == nil && s != nil && e != nil && gs != nil:
		if *gs <= epsilon {
			return Result{}, calcerr.Validationf("Gs must be > 0 to derive moisture")
		}
		w = ptr(*s * *e / *gs)
	}
	if n == nil && e != nil {
		n = ptr(*e / (1 + *e))
	}

	// γd = γnat / (1+w)
	if gammaD == nil && gammaNat != nil && w != nil {
		gammaD = ptr(*gammaNat / (1 + *w))
	} else if gammaNat == nil && gammaD != nil && w != nil {
		gammaNat = ptr(*gammaD * (1 + *w))
	}

	// γd = Gs·γw / (1+e)
	if gammaD == nil && gs != nil && e != nil {
		gammaD = ptr(*gs * gammaW / (1 + *e))
	} else if e == nil && gammaD != nil && gs != nil {
		if *gammaD <= epsilon {
			return Result{}, calcerr.Validationf("dry unit weight must be > 0")
		}
		derived := *gs*gammaW / *gammaD - 1
		if derived < 0 {
			return Result{}, calcerr.Validationf("dry unit weight and Gs imply a negative void ratio")
		}
		e = ptr(derived)
		if n == nil {
			n = ptr(*e / (1 + *e))
		}
	}

	// γnat = γw·(Gs + S·e)/(1+e), or solve it for S.
	if gammaNat == nil && gs != nil && e != nil && s != nil {
		gammaNat = ptr(gammaW * (*gs + *s**e) / (1 + *e))
	} else if s == nil && gammaNat != nil && gs != nil && e != nil {
		if *e <= epsilon {
			s = ptr(0.0)
		} else {
			s = ptr(clamp01((*gammaNat*(1+*e) - *gs*gammaW) / (gammaW * *e)))
		}
	}

	// w = γnat/γd − 1
	if w == nil && gammaNat != nil && gammaD != nil {
		if *gammaD <= epsilon {
			return Result{}, calcerr.Validationf("dry unit weight must be > 0")
		}
		w = ptr(*gammaNat / *gammaD - 1)
	}

	// Late passes now that more may be known.
	if s == nil && w != nil && gs != nil && e != nil {
		if *e <= epsilon {
			s = ptr(0.0)
		} else {
			s = ptr(clamp01(*w * *gs / *e))
		}
	}

	var gammaSat, gammaSub *float64
	if gs != nil && e != nil {
		gammaSat = ptr(gammaW * (*gs + *e) / (1 + *e))
	} else if gammaD != nil && e != nil {
		gammaSat = ptr(*gammaD + *e*gammaW/(1+*e))
	}
	if gammaSat != nil {
		gammaSub = ptr(*gammaSat - gammaW)
	}

	res := Result{
		GammaNatKNM3: gammaNat,
		GammaDKNM3:   gammaD,
		GammaSatKNM3: gammaSat,
		GammaSubKNM3: gammaSub,
		GammaSKNM3:   gammaS,
		Gs:           gs,
		VoidRatio:    e,
	}
	if n != nil {
		res.PorosityPct = ptr(*n * 100)
	}
	if s != nil {
		res.SaturationPct = ptr(*s * 100)
	}
	if w != nil {
		res.MoisturePct = ptr(*w * 100)
	}

	fillPhaseDiagram(&res, gs, e, s, w)
	return res, nil
}

// fillPhaseDiagram computes the normalized Vs=1 phase diagram. Water weighs
// 1 g/cm³ here by definition, so weights come straight from Gs and volumes.
func fillPhaseDiagram(res *Result, gs, e, s, w *float64) {
	res.SolidsVolume = ptr(1.0)
	if gs != nil {
		res.SolidsWeight = ptr(*gs)
	}
	if e == nil {
		return
	}
	voids := *e

	switch {
	case s != nil:
		vw := *s * voids
		res.WaterVolume = ptr(vw)
		res.AirVolume = ptr(math.Max(0, voids-vw))
		res.WaterWeight = ptr(vw)
	case w != nil && gs != nil:
		ww := *w * *gs
		res.WaterWeight = ptr(ww)
		res.WaterVolume = ptr(ww)
		res.AirVolume = ptr(math.Max(0, voids-ww))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
