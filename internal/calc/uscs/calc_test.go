package uscs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/uscs"
)

func fp(v float64) *float64 { return &v }

func classify(t *testing.T, in uscs.Input) uscs.Result {
	t.Helper()
	res, err := uscs.Calculate(in)
	require.NoError(t, err)
	return res
}

func TestCalculate_Symbols(t *testing.T) {
	cases := []struct {
		name   string
		in     uscs.Input
		symbol string
	}{
		{"well-graded gravel", uscs.Input{
			PassingNo200Pct: 2, PassingNo4Pct: 40, Cu: fp(10), Cc: fp(2),
		}, "GW"},
		{"poorly graded sand", uscs.Input{
			PassingNo200Pct: 3, PassingNo4Pct: 90, Cu: fp(3), Cc: fp(1.5),
		}, "SP"},
		{"sand needs Cu 6 for W", uscs.Input{
			PassingNo200Pct: 3, PassingNo4Pct: 90, Cu: fp(5), Cc: fp(2),
		}, "SP"},
		{"clayey sand", uscs.Input{
			PassingNo200Pct: 20, PassingNo4Pct: 85, LLPct: fp(35), PIPct: fp(18),
		}, "SC"},
		{"silty gravel", uscs.Input{
			PassingNo200Pct: 15, PassingNo4Pct: 40, LLPct: fp(30), PIPct: fp(3),
		}, "GM"},
		{"dual symbol sand", uscs.Input{
			PassingNo200Pct: 8, PassingNo4Pct: 90, Cu: fp(7), Cc: fp(1.5), LLPct: fp(30), PIPct: fp(2),
		}, "SW-SM"},
		{"dual symbol gravel with clay", uscs.Input{
			PassingNo200Pct: 10, PassingNo4Pct: 40, Cu: fp(3), Cc: fp(0.5), LLPct: fp(40), PIPct: fp(20),
		}, "GP-GC"},
		{"low plasticity clay", uscs.Input{
			PassingNo200Pct: 70, PassingNo4Pct: 100, LLPct: fp(35), PIPct: fp(20),
		}, "CL"},
		{"high plasticity clay", uscs.Input{
			PassingNo200Pct: 95, PassingNo4Pct: 100, LLPct: fp(60), PIPct: fp(40),
		}, "CH"},
		{"low plasticity silt", uscs.Input{
			PassingNo200Pct: 60, PassingNo4Pct: 100, LLPct: fp(30), PIPct: fp(3),
		}, "ML"},
		{"high plasticity silt below A-line", uscs.Input{
			PassingNo200Pct: 80, PassingNo4Pct: 100, LLPct: fp(70), PIPct: fp(25),
		}, "MH"},
		{"organic high plasticity", uscs.Input{
			PassingNo200Pct: 85, PassingNo4Pct: 100, LLPct: fp(65), PIPct: fp(25), OrganicFines: true,
		}, "OH"},
		{"peat", uscs.Input{
			PassingNo200Pct: 90, PassingNo4Pct: 100, HighlyOrganic: true,
		}, "Pt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.symbol, classify(t, tc.in).Symbol)
		})
	}
}

// TestCalculate_ALineBoundary: on the A-line with PI >= 4 the fines count
// as clay.
func TestCalculate_ALineBoundary(t *testing.T) {
	// A-line at LL=40 gives PI = 0.73*20 = 14.6.
	res := classify(t, uscs.Input{
		PassingNo200Pct: 60, PassingNo4Pct: 100, LLPct: fp(40), PIPct: fp(14.6),
	})
	assert.Equal(t, "CL", res.Symbol)

	res = classify(t, uscs.Input{
		PassingNo200Pct: 60, PassingNo4Pct: 100, LLPct: fp(40), PIPct: fp(14.5),
	})
	assert.Equal(t, "ML", res.Symbol)
}

func TestCalculate_Descriptions(t *testing.T) {
	res := classify(t, uscs.Input{
		PassingNo200Pct: 2, PassingNo4Pct: 40, Cu: fp(10), Cc: fp(2),
	})
	assert.Equal(t, "well-graded gravel with little or no fines", res.Description)

	res = classify(t, uscs.Input{
		PassingNo200Pct: 70, PassingNo4Pct: 100, LLPct: fp(35), PIPct: fp(20),
	})
	assert.Equal(t, "clay of low plasticity", res.Description)
}

func TestCalculate_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   uscs.Input
	}{
		{"no200 above no4", uscs.Input{PassingNo200Pct: 50, PassingNo4Pct: 40}},
		{"no200 out of range", uscs.Input{PassingNo200Pct: 120, PassingNo4Pct: 100}},
		{"clean coarse without gradation", uscs.Input{PassingNo200Pct: 2, PassingNo4Pct: 40}},
		{"dirty coarse without limits", uscs.Input{PassingNo200Pct: 20, PassingNo4Pct: 85}},
		{"dual without gradation", uscs.Input{PassingNo200Pct: 8, PassingNo4Pct: 90, LLPct: fp(30), PIPct: fp(2)}},
		{"fine without limits", uscs.Input{PassingNo200Pct: 70, PassingNo4Pct: 100}},
		{"negative PI", uscs.Input{PassingNo200Pct: 70, PassingNo4Pct: 100, LLPct: fp(30), PIPct: fp(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uscs.Calculate(tc.in)
			assert.ErrorIs(t, err, calcerr.ErrValidation)
		})
	}
}
