// Package recommend sizes the drainage path needed to finish a target
// degree of consolidation within a deadline.
package recommend

import (
	"math"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/consolidation"
)

type DrainageInput struct {
	CvM2PerYear     float64 `json:"cv_m2_per_year"`
	TargetUPercent  float64 `json:"target_u_percent"`
	TargetTimeYears float64 `json:"target_time_years"`
}

type DrainageResult struct {
	RequiredDrainagePathM  float64 `json:"required_drainage_path_m"`
	MaxDoubleDrainedLayerM float64 `json:"max_double_drained_layer_m"`
	Tv                     float64 `json:"tv"`
	Notes                  string  `json:"notes"`
}

// DrainagePath inverts Tv = Cv·t/Hd²: the layer consolidates in time when
// its drainage path is at most Hd = sqrt(Cv·t/Tv).
func DrainagePath(in DrainageInput) (DrainageResult, error) {
	if in.CvM2PerYear <= 0 {
		return DrainageResult{}, calcerr.Validationf("coefficient of consolidation must be > 0")
	}
	if in.TargetTimeYears <= 0 {
		return DrainageResult{}, calcerr.Validationf("target time must be > 0")
	}
	if in.TargetUPercent <= 0 || in.TargetUPercent >= 100 {
		return DrainageResult{}, calcerr.Validationf("target degree of consolidation must be within (0, 100)")
	}

	tv, err := consolidation.TimeFactor(in.TargetUPercent)
	if err != nil {
		return DrainageResult{}, err
	}
	hd := math.Sqrt(in.CvM2PerYear * in.TargetTimeYears / tv)

	return DrainageResult{
		RequiredDrainagePathM:  hd,
		MaxDoubleDrainedLayerM: 2 * hd,
		Tv:                     tv,
		Notes:                  "A double-drained layer may be twice the drainage path thick.",
	}, nil
}
