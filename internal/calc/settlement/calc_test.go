package settlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/settlement"
)

// TestCalculate_NormallyConsolidated reproduces the reference case:
// H0=5, e0=1.0, Cc=0.3, σ'v0=σ'p=100, Δσ'=50.
func TestCalculate_NormallyConsolidated(t *testing.T) {
	res, err := settlement.Calculate(settlement.Input{
		ThicknessM:    5,
		VoidRatio:     1.0,
		Cc:            0.3,
		Cr:            0.05,
		SigmaV0KPa:    100,
		SigmaPKPa:     100,
		DeltaSigmaKPa: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, settlement.StateNormallyConsolidated, res.State)
	assert.InDelta(t, 1.0, res.OCR, 1e-9)
	assert.InDelta(t, 150.0, res.SigmaVfKPa, 1e-9)
	assert.InDelta(t, 0.02641, res.Strain, 1e-5)
	assert.InDelta(t, 0.1321, res.SettlementM, 1e-4)
}

// TestCalculate_RecompressionOnly keeps the final stress below the
// preconsolidation stress, so only Cr applies.
func TestCalculate_RecompressionOnly(t *testing.T) {
	res, err := settlement.Calculate(settlement.Input{
		ThicknessM:    4,
		VoidRatio:     0.8,
		Cc:            0.25,
		Cr:            0.04,
		SigmaV0KPa:    100,
		SigmaPKPa:     200,
		DeltaSigmaKPa: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, settlement.StateRecompression, res.State)
	assert.InDelta(t, 2.0, res.OCR, 1e-9)
	// εv = (Cr/(1+e0))·log10(150/100)
	assert.InDelta(t, 0.04/1.8*0.1760912591, res.Strain, 1e-9)
}

// TestCalculate_VirginCrossing loads past σ'p, so the strain accumulates
// over both the recompression and the virgin ranges.
func TestCalculate_VirginCrossing(t *testing.T) {
	res, err := settlement.Calculate(settlement.Input{
		ThicknessM:    4,
		VoidRatio:     0.8,
		Cc:            0.25,
		Cr:            0.04,
		SigmaV0KPa:    100,
		SigmaPKPa:     200,
		DeltaSigmaKPa: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, settlement.StateVirginCompression, res.State)

	wantRecomp := 0.04 / 1.8 * 0.3010299957 // log10(200/100)
	wantVirgin := 0.25 / 1.8 * 0.3010299957 // log10(400/200)
	assert.InDelta(t, wantRecomp+wantVirgin, res.Strain, 1e-9)
}

// TestCalculate_BranchContinuityAtPreconsolidation holds all parameters
// fixed and checks that loading exactly to σ'p gives the same strain
// through the crossing branch as through pure recompression.
func TestCalculate_BranchContinuityAtPreconsolidation(t *testing.T) {
	base := settlement.Input{
		ThicknessM: 4,
		VoidRatio:  0.9,
		Cc:         0.3,
		Cr:         0.06,
		SigmaV0KPa: 120,
		SigmaPKPa:  240,
	}

	atBoundary := base
	atBoundary.DeltaSigmaKPa = base.SigmaPKPa - base.SigmaV0KPa // σ'vf = σ'p
	resBoundary, err := settlement.Calculate(atBoundary)
	require.NoError(t, err)
	assert.Equal(t, settlement.StateRecompression, resBoundary.State)

	justPast := base
	justPast.DeltaSigmaKPa = atBoundary.DeltaSigmaKPa + 1e-9
	resPast, err := settlement.Calculate(justPast)
	require.NoError(t, err)
	assert.Equal(t, settlement.StateVirginCompression, resPast.State)

	assert.InDelta(t, resBoundary.Strain, resPast.Strain, 1e-9,
		"strain must be continuous across the branch boundary")
}

// TestCalculate_Underconsolidated uses OCR below the tolerance band; the
// normally-consolidated formula applies.
func TestCalculate_Underconsolidated(t *testing.T) {
	res, err := settlement.Calculate(settlement.Input{
		ThicknessM:    3,
		VoidRatio:     1.2,
		Cc:            0.4,
		Cr:            0.05,
		SigmaV0KPa:    200,
		SigmaPKPa:     100,
		DeltaSigmaKPa: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, settlement.StateUnderconsolidated, res.State)
	assert.InDelta(t, 0.4/2.2*0.1760912591, res.Strain, 1e-9) // log10(300/200)
}

func TestCalculate_Validation(t *testing.T) {
	valid := settlement.Input{
		ThicknessM: 5, VoidRatio: 1, Cc: 0.3, Cr: 0.05,
		SigmaV0KPa: 100, SigmaPKPa: 100, DeltaSigmaKPa: 50,
	}

	cases := []struct {
		name   string
		mutate func(*settlement.Input)
	}{
		{"zero thickness", func(in *settlement.Input) { in.ThicknessM = 0 }},
		{"zero void ratio", func(in *settlement.Input) { in.VoidRatio = 0 }},
		{"zero Cc", func(in *settlement.Input) { in.Cc = 0 }},
		{"zero Cr", func(in *settlement.Input) { in.Cr = 0 }},
		{"zero sigma_v0", func(in *settlement.Input) { in.SigmaV0KPa = 0 }},
		{"zero sigma_p", func(in *settlement.Input) { in.SigmaPKPa = 0 }},
		{"negative increment", func(in *settlement.Input) { in.DeltaSigmaKPa = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := settlement.Calculate(in)
			assert.ErrorIs(t, err, calcerr.ErrValidation)
		})
	}
}
