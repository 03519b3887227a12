package consolidation_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/consolidation"
)

func fp(v float64) *float64 { return &v }

// TestTimeFactor_RegimeBoundary checks that the parabolic and logarithmic
// regimes meet at Uz = 60% / Tv = 0.283 in both directions.
func TestTimeFactor_RegimeBoundary(t *testing.T) {
	tv, err := consolidation.TimeFactor(60)
	require.NoError(t, err)
	assert.InDelta(t, 0.283, tv, 1e-3)

	u, err := consolidation.DegreeOfConsolidation(0.283)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, u, 0.1)
}

// TestTimeFactor_RoundTrip samples Uz across [0, 100) and requires the
// inverse mapping to recover it.
func TestTimeFactor_RoundTrip(t *testing.T) {
	for u := 0.0; u < 100; u += 2.5 {
		tv, err := consolidation.TimeFactor(u)
		require.NoError(t, err)
		back, err := consolidation.DegreeOfConsolidation(tv)
		require.NoError(t, err)
		assert.InDelta(t, u, back, 0.05, "round trip at Uz=%v", u)
	}
}

// TestTimeFactor_FullConsolidationIsInfinite: Uz = 100 yields the +Inf
// sentinel, not an error and not a finite number.
func TestTimeFactor_FullConsolidationIsInfinite(t *testing.T) {
	tv, err := consolidation.TimeFactor(100)
	require.NoError(t, err)
	assert.True(t, math.IsInf(tv, 1))
}

func TestTimeFactor_OutOfRange(t *testing.T) {
	_, err := consolidation.TimeFactor(-1)
	assert.ErrorIs(t, err, calcerr.ErrValidation)
	_, err = consolidation.TimeFactor(100.5)
	assert.ErrorIs(t, err, calcerr.ErrValidation)
}

// TestDegreeOfConsolidation_LargeTimeFactor drives the logarithmic branch
// into exponent underflow territory; the result saturates at 100%.
func TestDegreeOfConsolidation_LargeTimeFactor(t *testing.T) {
	u, err := consolidation.DegreeOfConsolidation(50)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, u, 1e-9)
}

// TestCalculate_TargetDegree reproduces the reference query:
// ΔHtotal=0.5, Cv=2, Hd=3, target Uz=60.
func TestCalculate_TargetDegree(t *testing.T) {
	res, err := consolidation.Calculate(consolidation.Input{
		TotalSettlementM: 0.5,
		CvM2PerYear:      2,
		DrainagePathM:    3,
		TargetUPercent:   fp(60),
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.283, res.Tv, 1e-3)
	assert.InDelta(t, 1.2735, res.TimeYears, 5e-3)
	assert.InDelta(t, 0.3, res.SettlementM, 1e-9)
	assert.InDelta(t, 60.0, res.UPercent, 1e-9)
}

// TestCalculate_ElapsedTime runs the query the other way around and checks
// the two directions agree.
func TestCalculate_ElapsedTime(t *testing.T) {
	forward, err := consolidation.Calculate(consolidation.Input{
		TotalSettlementM: 0.5,
		CvM2PerYear:      2,
		DrainagePathM:    3,
		TargetUPercent:   fp(45),
	})
	require.NoError(t, err)

	back, err := consolidation.Calculate(consolidation.Input{
		TotalSettlementM: 0.5,
		CvM2PerYear:      2,
		DrainagePathM:    3,
		TimeYears:        fp(forward.TimeYears),
	})
	require.NoError(t, err)
	assert.InDelta(t, 45.0, back.UPercent, 0.05)
	assert.InDelta(t, forward.SettlementM, back.SettlementM, 1e-3)
}

func TestCalculate_ZeroTimeShortCircuit(t *testing.T) {
	res, err := consolidation.Calculate(consolidation.Input{
		TotalSettlementM: 0.5,
		CvM2PerYear:      2,
		DrainagePathM:    3,
		TimeYears:        fp(0),
	})
	require.NoError(t, err)
	assert.Zero(t, res.Tv)
	assert.Zero(t, res.UPercent)
	assert.Zero(t, res.SettlementM)
}

// TestCalculate_ExactlyOneQueryField: both or neither of time and target
// degree is a validation error.
func TestCalculate_ExactlyOneQueryField(t *testing.T) {
	_, err := consolidation.Calculate(consolidation.Input{
		TotalSettlementM: 0.5,
		CvM2PerYear:      2,
		DrainagePathM:    3,
		TimeYears:        fp(1),
		TargetUPercent:   fp(50),
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)

	_, err = consolidation.Calculate(consolidation.Input{
		TotalSettlementM: 0.5,
		CvM2PerYear:      2,
		DrainagePathM:    3,
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)
}

// TestResult_MarshalInfinityAsNull: the Uz=100 sentinel must serialize.
func TestResult_MarshalInfinityAsNull(t *testing.T) {
	res, err := consolidation.Calculate(consolidation.Input{
		TotalSettlementM: 0.5,
		CvM2PerYear:      2,
		DrainagePathM:    3,
		TargetUPercent:   fp(100),
	})
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.TimeYears, 1))
	assert.Equal(t, 0.5, res.SettlementM)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"time_years":null`)
	assert.Contains(t, string(raw), `"tv":null`)
}
