// Package autodesign solves the inverse settlement problem: the largest
// stress increment a layer can take without exceeding an allowable
// settlement.
package autodesign

import (
	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/settlement"
)

type SurchargeInput struct {
	Layer                settlement.Input `json:"layer"`
	AllowableSettlementM float64          `json:"allowable_settlement_m"`
}

type SurchargeResult struct {
	MaxDeltaSigmaKPa float64           `json:"max_delta_sigma_kpa"`
	Settlement       settlement.Result `json:"settlement"`
	Notes            string            `json:"notes"`
}

const (
	searchCeilingKPa = 1e6
	tolKPa           = 1e-6
)

// MaxSurcharge bisects over the stress increment. Settlement grows
// monotonically with the increment, so the bracket [0, ceiling] always
// contains the answer when one exists.
func MaxSurcharge(in SurchargeInput) (SurchargeResult, error) {
	if in.AllowableSettlementM <= 0 {
		return SurchargeResult{}, calcerr.Validationf("allowable settlement must be > 0")
	}

	probe := func(delta float64) (settlement.Result, error) {
		layer := in.Layer
		layer.DeltaSigmaKPa = delta
		return settlement.Calculate(layer)
	}

	// Validate the layer itself before searching.
	if _, err := probe(0); err != nil {
		return SurchargeResult{}, err
	}

	atCeiling, err := probe(searchCeilingKPa)
	if err != nil {
		return SurchargeResult{}, err
	}
	if atCeiling.SettlementM <= in.AllowableSettlementM {
		return SurchargeResult{
			MaxDeltaSigmaKPa: searchCeilingKPa,
			Settlement:       atCeiling,
			Notes:            "Allowable settlement is not reached within the search range.",
		}, nil
	}

	lo, hi := 0.0, searchCeilingKPa
	for hi-lo > tolKPa {
		mid := (lo + hi) / 2
		res, err := probe(mid)
		if err != nil {
			return SurchargeResult{}, err
		}
		if res.SettlementM <= in.AllowableSettlementM {
			lo = mid
		} else {
			hi = mid
		}
	}

	final, err := probe(lo)
	if err != nil {
		return SurchargeResult{}, err
	}
	return SurchargeResult{
		MaxDeltaSigmaKPa: lo,
		Settlement:       final,
		Notes:            "Largest stress increment keeping settlement within the allowable value.",
	}, nil
}
