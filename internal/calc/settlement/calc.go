// Package settlement estimates primary consolidation settlement of a
// compressible layer from its effective stress history, following
// Terzaghi's one-dimensional theory with stress-history-dependent
// compressibility.
package settlement

import (
	"math"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
)

// ocrTolerance is the band around OCR = 1 inside which the soil is treated
// as normally consolidated. A policy choice to absorb measurement noise,
// not a physical law.
const ocrTolerance = 0.1

// Consolidation state labels.
const (
	StateNormallyConsolidated = "normally consolidated"
	StateRecompression        = "preconsolidated (recompression)"
	StateVirginCompression    = "preconsolidated (crossing into virgin compression)"
	StateUnderconsolidated    = "underconsolidated (computed as normally consolidated)"
)

type Input struct {
	ThicknessM    float64 `json:"thickness_m"`
	VoidRatio     float64 `json:"void_ratio"`
	Cc            float64 `json:"cc"`
	Cr            float64 `json:"cr"`
	SigmaV0KPa    float64 `json:"sigma_v0_kpa"`
	SigmaPKPa     float64 `json:"sigma_p_kpa"`
	DeltaSigmaKPa float64 `json:"delta_sigma_kpa"`
}

type Result struct {
	SettlementM float64 `json:"settlement_m"`
	Strain      float64 `json:"strain"`
	SigmaVfKPa  float64 `json:"sigma_vf_kpa"`
	State       string  `json:"state"`
	OCR         float64 `json:"ocr"`
}

// Calculate classifies the layer by its overconsolidation ratio and applies
// the matching compressibility branch. The virgin-compression branch is
// continuous with the recompression branch at σ'vf = σ'p.
func Calculate(in Input) (Result, error) {
	if in.ThicknessM <= 0 {
		return Result{}, calcerr.Validationf("layer thickness must be > 0")
	}
	if in.VoidRatio <= 0 {
		return Result{}, calcerr.Validationf("initial void ratio must be > 0")
	}
	if in.Cc <= 0 || in.Cr <= 0 {
		return Result{}, calcerr.Validationf("compression and recompression indices must be > 0")
	}
	if in.SigmaV0KPa <= 0 || in.SigmaPKPa <= 0 {
		return Result{}, calcerr.Validationf("initial and preconsolidation stresses must be > 0")
	}
	if in.DeltaSigmaKPa < 0 {
		return Result{}, calcerr.Validationf("stress increment must be >= 0")
	}

	sigmaVf := in.SigmaV0KPa + in.DeltaSigmaKPa
	ocr := in.SigmaPKPa / in.SigmaV0KPa
	oneE := 1 + in.VoidRatio

	var strain float64
	var state string
	switch {
	case math.Abs(ocr-1) < ocrTolerance:
		state = StateNormallyConsolidated
		strain = in.Cc / oneE * math.Log10(sigmaVf/in.SigmaV0KPa)
	case ocr > 1:
		if sigmaVf <= in.SigmaPKPa {
			state = StateRecompression
			strain = in.Cr / oneE * math.Log10(sigmaVf/in.SigmaV0KPa)
		} else {
			state = StateVirginCompression
			strain = in.Cr/oneE*math.Log10(in.SigmaPKPa/in.SigmaV0KPa) +
				in.Cc/oneE*math.Log10(sigmaVf/in.SigmaPKPa)
		}
	default:
		// Already on the virgin line, so the NC formula applies.
		state = StateUnderconsolidated
		strain = in.Cc / oneE * math.Log10(sigmaVf/in.SigmaV0KPa)
	}

	return Result{
		SettlementM: strain * in.ThicknessM,
		Strain:      strain,
		SigmaVfKPa:  sigmaVf,
		State:       state,
		OCR:         ocr,
	}, nil
}
