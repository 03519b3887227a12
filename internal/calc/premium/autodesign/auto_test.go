package autodesign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/premium/autodesign"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/settlement"
)

// TestMaxSurcharge_NormallyConsolidated inverts the closed form: for an NC
// layer ΔH = H·Cc·log10((σ0+Δσ)/σ0)/(1+e0), so the allowable Δσ is
// σ0·(10^(ΔH(1+e0)/(H·Cc)) - 1).
func TestMaxSurcharge_NormallyConsolidated(t *testing.T) {
	layer := settlement.Input{
		ThicknessM: 2,
		VoidRatio:  0.8,
		Cc:         0.25,
		Cr:         0.05,
		SigmaV0KPa: 100,
		SigmaPKPa:  100,
	}
	const allowable = 0.05

	res, err := autodesign.MaxSurcharge(autodesign.SurchargeInput{
		Layer:                layer,
		AllowableSettlementM: allowable,
	})
	require.NoError(t, err)

	// 100*(10^(0.05*1.8/(2*0.25)) - 1) = 100*(10^0.18 - 1)
	assert.InDelta(t, 51.356, res.MaxDeltaSigmaKPa, 0.01)
	assert.InDelta(t, allowable, res.Settlement.SettlementM, 1e-6)
}

// TestMaxSurcharge_MonotoneBound: the settlement at the answer never
// exceeds the allowable value.
func TestMaxSurcharge_MonotoneBound(t *testing.T) {
	res, err := autodesign.MaxSurcharge(autodesign.SurchargeInput{
		Layer: settlement.Input{
			ThicknessM: 4,
			VoidRatio:  1.1,
			Cc:         0.35,
			Cr:         0.06,
			SigmaV0KPa: 80,
			SigmaPKPa:  160,
		},
		AllowableSettlementM: 0.08,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Settlement.SettlementM, 0.08+1e-9)
	assert.Greater(t, res.MaxDeltaSigmaKPa, 0.0)
}

func TestMaxSurcharge_Validation(t *testing.T) {
	_, err := autodesign.MaxSurcharge(autodesign.SurchargeInput{
		Layer:                settlement.Input{ThicknessM: 2, VoidRatio: 0.8, Cc: 0.25, Cr: 0.05, SigmaV0KPa: 100, SigmaPKPa: 100},
		AllowableSettlementM: 0,
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)

	_, err = autodesign.MaxSurcharge(autodesign.SurchargeInput{
		Layer:                settlement.Input{ThicknessM: -1},
		AllowableSettlementM: 0.05,
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)
}
