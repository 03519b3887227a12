// Package atterberg computes the Atterberg limits from Casagrande cup and
// rolling test masses: liquid limit from the flow line fitted to the cup
// trials, plastic limit from the thread trial, then the plasticity,
// consistency and clay activity indices derived from them.
package atterberg

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
)

var log10of25 = math.Log10(25)

// LLPoint is one Casagrande cup trial: blow count plus the three weighings.
type LLPoint struct {
	Blows        int     `json:"blows"`
	WetWithTareG float64 `json:"wet_with_tare_g"`
	DryWithTareG float64 `json:"dry_with_tare_g"`
	TareG        float64 `json:"tare_g"`
}

type Input struct {
	LLPoints []LLPoint `json:"ll_points"`

	PLWetWithTareG float64 `json:"pl_wet_with_tare_g"`
	PLDryWithTareG float64 `json:"pl_dry_with_tare_g"`
	PLTareG        float64 `json:"pl_tare_g"`

	NaturalMoisturePct *float64 `json:"natural_moisture_pct,omitempty"`
	ClayFractionPct    *float64 `json:"clay_fraction_pct,omitempty"`
}

// FlowPoint is one fitted-curve sample: log10 of the blow count against the
// trial moisture content.
type FlowPoint struct {
	LogBlows    float64 `json:"log_blows"`
	MoisturePct float64 `json:"moisture_pct"`
}

type Result struct {
	LLPct float64 `json:"ll_pct"`
	PLPct float64 `json:"pl_pct"`
	PIPct float64 `json:"pi_pct"`

	Plasticity string `json:"plasticity"`

	ConsistencyIndex *float64 `json:"consistency_index,omitempty"`
	Consistency      string   `json:"consistency,omitempty"`

	Activity           *float64 `json:"activity,omitempty"`
	ActivityClass      string   `json:"activity_class,omitempty"`

	FlowCurve []FlowPoint `json:"flow_curve"`
}

func moistureFromMasses(wet, dry, tare float64, label string) (float64, error) {
	if wet < dry {
		return 0, calcerr.Validationf("%s: wet mass (%.2fg) below dry mass (%.2fg)", label, wet, dry)
	}
	if dry < tare {
		return 0, calcerr.Validationf("%s: dry mass (%.2fg) below tare (%.2fg)", label, dry, tare)
	}
	solids := dry - tare
	if solids <= 1e-9 {
		return 0, calcerr.Validationf("%s: dry soil mass is zero", label)
	}
	return (wet - dry) / solids * 100, nil
}

// Calculate fits the flow line w = a + b·log10(N) through the cup trials and
// reads the liquid limit off it at 25 blows.
func Calculate(in Input) (Result, error) {
	if len(in.LLPoints) < 2 {
		return Result{}, calcerr.Validationf("at least 2 liquid limit trials are required")
	}

	logBlows := make([]float64, 0, len(in.LLPoints))
	moistures := make([]float64, 0, len(in.LLPoints))
	curve := make([]FlowPoint, 0, len(in.LLPoints))
	for i, p := range in.LLPoints {
		if p.Blows <= 0 {
			return Result{}, calcerr.Validationf("LL trial %d: blow count must be > 0", i+1)
		}
		w, err := moistureFromMasses(p.WetWithTareG, p.DryWithTareG, p.TareG, "LL trial")
		if err != nil {
			return Result{}, err
		}
		lb := math.Log10(float64(p.Blows))
		logBlows = append(logBlows, lb)
		moistures = append(moistures, w)
		curve = append(curve, FlowPoint{LogBlows: lb, MoisturePct: w})
	}

	alpha, beta := stat.LinearRegression(logBlows, moistures, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return Result{}, calcerr.Computationf("flow line regression is degenerate; vary the blow counts")
	}
	ll := alpha + beta*log10of25
	if ll < 0 {
		ll = 0
	}

	pl, err := moistureFromMasses(in.PLWetWithTareG, in.PLDryWithTareG, in.PLTareG, "PL trial")
	if err != nil {
		return Result{}, err
	}

	pi := ll - pl
	nonPlastic := false
	if pi < 0 {
		pi = 0
		nonPlastic = true
	}

	res := Result{LLPct: ll, PLPct: pl, PIPct: pi, FlowCurve: curve}
	res.Plasticity = plasticityClass(pi, nonPlastic)

	if in.NaturalMoisturePct != nil {
		if pi > 1e-9 {
			ic := (ll - *in.NaturalMoisturePct) / pi
			res.ConsistencyIndex = &ic
			res.Consistency = consistencyClass(ic)
		} else {
			res.Consistency = "not applicable (non-plastic soil)"
		}
	}

	if in.ClayFractionPct != nil {
		clay := *in.ClayFractionPct
		if clay < 0 || clay > 100 {
			return Result{}, calcerr.Validationf("clay fraction must be within [0, 100]")
		}
		if clay > 1e-9 {
			a := pi / clay
			res.Activity = &a
			res.ActivityClass = activityClass(a)
		} else if pi <= 1e-9 {
			res.ActivityClass = "not applicable (non-plastic or no clay)"
		}
	}

	return res, nil
}

func plasticityClass(pi float64, nonPlastic bool) string {
	switch {
	case nonPlastic || pi < 1e-9:
		return "non-plastic"
	case pi <= 7:
		return "slightly plastic"
	case pi <= 15:
		return "medium plasticity"
	default:
		return "highly plastic"
	}
}

func consistencyClass(ic float64) string {
	switch {
	case ic < 0:
		return "very soft (liquid)"
	case ic < 0.5:
		return "soft"
	case ic < 0.75:
		return "medium"
	case ic < 1.0:
		return "stiff"
	default:
		return "hard (semi-solid)"
	}
}

func activityClass(a float64) string {
	switch {
	case a < 0.75:
		return "inactive"
	case a <= 1.25:
		return "normal"
	default:
		return "active"
	}
}
