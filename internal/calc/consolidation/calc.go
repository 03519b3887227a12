// Package consolidation converts between elapsed time and average degree of
// primary consolidation using the two-regime closed-form approximation of
// Terzaghi's theory. The two regimes meet at Tv = 0.283 (Uz = 60%) and the
// mapping is continuous there in both directions.
package consolidation

import (
	"math"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
)

// tvBranch is the time factor at the 60% regime boundary.
const tvBranch = 0.283

// underflowExponent caps the 10^x evaluation in the inverse mapping; below
// it the degree of consolidation is indistinguishable from 100%.
const underflowExponent = -30

type Input struct {
	TotalSettlementM float64  `json:"total_settlement_m"`
	CvM2PerYear      float64  `json:"cv_m2_per_year"`
	DrainagePathM    float64  `json:"drainage_path_m"`
	TimeYears        *float64 `json:"time_years,omitempty"`
	TargetUPercent   *float64 `json:"target_u_percent,omitempty"`
}

type Result struct {
	TimeYears   float64 `json:"time_years"`
	SettlementM float64 `json:"settlement_m"`
	UPercent    float64 `json:"u_percent"`
	Tv          float64 `json:"tv"`
}

// TimeFactor maps an average degree of consolidation in percent to the
// dimensionless time factor Tv. Uz = 100 maps to +Inf, which is a valid
// sentinel, not an error.
func TimeFactor(uPercent float64) (float64, error) {
	if uPercent < 0 || uPercent > 100 {
		return 0, calcerr.Validationf("degree of consolidation must be within [0, 100]")
	}
	if uPercent == 100 {
		return math.Inf(1), nil
	}
	u := uPercent / 100
	if u <= 0.60 {
		return math.Pi / 4 * u * u, nil
	}
	return -0.933*math.Log10(1-u) - 0.085, nil
}

// DegreeOfConsolidation maps a time factor back to the average degree of
// consolidation in percent, clamped into [0, 100].
func DegreeOfConsolidation(tv float64) (float64, error) {
	if tv < 0 {
		return 0, calcerr.Validationf("time factor must be >= 0")
	}
	if tv == 0 {
		return 0, nil
	}

	var u float64
	if tv <= tvBranch {
		u = math.Sqrt(4 * tv / math.Pi)
	} else {
		exponent := -(tv + 0.085) / 0.933
		if exponent < underflowExponent {
			u = 1
		} else {
			u = 1 - math.Pow(10, exponent)
		}
	}

	u = math.Max(0, math.Min(1, u))
	return u * 100, nil
}

// Calculate answers a consolidation time query: given the total primary
// settlement, Cv and the drainage path, it resolves either the time to
// reach a target degree of consolidation or the state reached after a
// given time. Exactly one of the two query fields must be supplied.
func Calculate(in Input) (Result, error) {
	if in.TotalSettlementM <= 0 {
		return Result{}, calcerr.Validationf("total primary settlement must be > 0")
	}
	if in.CvM2PerYear <= 0 {
		return Result{}, calcerr.Validationf("coefficient of consolidation must be > 0")
	}
	if in.DrainagePathM <= 0 {
		return Result{}, calcerr.Validationf("drainage path length must be > 0")
	}
	if in.TimeYears == nil && in.TargetUPercent == nil {
		return Result{}, calcerr.Validationf("either time_years or target_u_percent must be supplied")
	}
	if in.TimeYears != nil && in.TargetUPercent != nil {
		return Result{}, calcerr.Validationf("supply time_years or target_u_percent, not both")
	}

	hd2 := in.DrainagePathM * in.DrainagePathM

	if in.TargetUPercent != nil {
		u := *in.TargetUPercent
		tv, err := TimeFactor(u)
		if err != nil {
			return Result{}, err
		}
		if math.IsInf(tv, 1) {
			return Result{
				TimeYears:   math.Inf(1),
				SettlementM: in.TotalSettlementM,
				UPercent:    100,
				Tv:          tv,
			}, nil
		}
		return Result{
			TimeYears:   tv * hd2 / in.CvM2PerYear,
			SettlementM: u / 100 * in.TotalSettlementM,
			UPercent:    u,
			Tv:          tv,
		}, nil
	}

	t := *in.TimeYears
	if t < 0 {
		return Result{}, calcerr.Validationf("time must be >= 0")
	}
	if t == 0 {
		return Result{TimeYears: 0, SettlementM: 0, UPercent: 0, Tv: 0}, nil
	}

	tv := in.CvM2PerYear * t / hd2
	u, err := DegreeOfConsolidation(tv)
	if err != nil {
		return Result{}, err
	}
	return Result{
		TimeYears:   t,
		SettlementM: u / 100 * in.TotalSettlementM,
		UPercent:    u,
		Tv:          tv,
	}, nil
}
