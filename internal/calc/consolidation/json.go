package consolidation

import (
	"encoding/json"
	"math"
)

// MarshalJSON renders the infinite time/time-factor sentinel (Uz = 100%) as
// null, since JSON has no representation for +Inf.
func (r Result) MarshalJSON() ([]byte, error) {
	finite := func(v float64) *float64 {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		TimeYears   *float64 `json:"time_years"`
		SettlementM float64  `json:"settlement_m"`
		UPercent    float64  `json:"u_percent"`
		Tv          *float64 `json:"tv"`
	}{
		TimeYears:   finite(r.TimeYears),
		SettlementM: r.SettlementM,
		UPercent:    r.UPercent,
		Tv:          finite(r.Tv),
	})
}
