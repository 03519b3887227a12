package stressinc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/soil"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/stressinc"
)

// TestCalculate_BoussinesqBelowLoad reproduces the textbook case of a point
// directly beneath a 100 kN load at 2 m depth.
func TestCalculate_BoussinesqBelowLoad(t *testing.T) {
	res, err := stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{ZM: 2},
		LoadType:  soil.LoadPoint,
		PointLoad: &soil.PointLoad{PKN: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, stressinc.MethodBoussinesq, res.Method)
	assert.InDelta(t, 11.94, res.DeltaSigmaVKPa, 0.01)
}

// TestCalculate_BoussinesqDecaysWithOffset checks that the increment drops
// off-axis and stays positive.
func TestCalculate_BoussinesqDecaysWithOffset(t *testing.T) {
	onAxis, err := stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{ZM: 3},
		LoadType:  soil.LoadPoint,
		PointLoad: &soil.PointLoad{PKN: 500},
	})
	require.NoError(t, err)

	offAxis, err := stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{XM: 2, YM: 1, ZM: 3},
		LoadType:  soil.LoadPoint,
		PointLoad: &soil.PointLoad{PKN: 500},
	})
	require.NoError(t, err)

	assert.Greater(t, onAxis.DeltaSigmaVKPa, offAxis.DeltaSigmaVKPa)
	assert.Greater(t, offAxis.DeltaSigmaVKPa, 0.0)
}

// TestCalculate_CarothersStrip checks the strip solution beneath the
// centerline and its symmetry about it.
func TestCalculate_CarothersStrip(t *testing.T) {
	center, err := stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{ZM: 2},
		LoadType:  soil.LoadStrip,
		StripLoad: &soil.StripLoad{WidthM: 4, IntensityKPa: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, stressinc.MethodCarothers, center.Method)

	// Δσv = (q/π)·(Δα + sin Δα · cos Σα) with α1 = −α2 = π/4 here.
	want := 100 / math.Pi * (math.Pi/2 + 1)
	assert.InDelta(t, want, center.DeltaSigmaVKPa, 1e-9)

	left, err := stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{XM: -1, ZM: 2},
		LoadType:  soil.LoadStrip,
		StripLoad: &soil.StripLoad{WidthM: 4, IntensityKPa: 100},
	})
	require.NoError(t, err)
	right, err := stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{XM: 1, ZM: 2},
		LoadType:  soil.LoadStrip,
		StripLoad: &soil.StripLoad{WidthM: 4, IntensityKPa: 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, left.DeltaSigmaVKPa, right.DeltaSigmaVKPa, 1e-9)
}

// TestCalculate_LoveOnAxis checks the closed-form circular solution beneath
// the center of the loaded area.
func TestCalculate_LoveOnAxis(t *testing.T) {
	res, err := stressinc.Calculate(stressinc.Input{
		Point:        soil.Point{ZM: 2},
		LoadType:     soil.LoadCircular,
		CircularLoad: &soil.CircularLoad{RadiusM: 2, IntensityKPa: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, stressinc.MethodLoveCenter, res.Method)
	// q·[1 − (1+(R/z)²)^−1.5] with R/z = 1.
	assert.InDelta(t, 100*(1-math.Pow(0.5, 1.5)), res.DeltaSigmaVKPa, 1e-9)
}

// TestCalculate_LoveChart exercises the influence-chart interpolation for
// off-axis points: exact curve hit, blended depth curves, and clamping
// beyond the tabulated radial range.
func TestCalculate_LoveChart(t *testing.T) {
	// z/R = 0.5 and r/R = 0.5 sit exactly on the tabulated grid.
	res, err := stressinc.Calculate(stressinc.Input{
		Point:        soil.Point{XM: 1, ZM: 1},
		LoadType:     soil.LoadCircular,
		CircularLoad: &soil.CircularLoad{RadiusM: 2, IntensityKPa: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, stressinc.MethodLoveChart, res.Method)
	assert.InDelta(t, 85.0, res.DeltaSigmaVKPa, 1e-9)

	// z/R = 0.75 blends the 0.5 and 1.0 curves evenly: r/R = 0.5 gives
	// (0.85 + 0.60) / 2.
	res, err = stressinc.Calculate(stressinc.Input{
		Point:        soil.Point{XM: 1, ZM: 1.5},
		LoadType:     soil.LoadCircular,
		CircularLoad: &soil.CircularLoad{RadiusM: 2, IntensityKPa: 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, 72.5, res.DeltaSigmaVKPa, 1e-9)

	// r/R beyond the table clamps to the outermost tabulated factor.
	res, err = stressinc.Calculate(stressinc.Input{
		Point:        soil.Point{XM: 6, ZM: 1},
		LoadType:     soil.LoadCircular,
		CircularLoad: &soil.CircularLoad{RadiusM: 2, IntensityKPa: 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, res.DeltaSigmaVKPa, 1e-9)

	// z/R beyond the deepest curve clamps to that curve.
	res, err = stressinc.Calculate(stressinc.Input{
		Point:        soil.Point{XM: 1, ZM: 10},
		LoadType:     soil.LoadCircular,
		CircularLoad: &soil.CircularLoad{RadiusM: 2, IntensityKPa: 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, 14.0, res.DeltaSigmaVKPa, 1e-9)
}

func TestCalculate_Validation(t *testing.T) {
	// Surface point is a defined error.
	_, err := stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{ZM: 0},
		LoadType:  soil.LoadPoint,
		PointLoad: &soil.PointLoad{PKN: 100},
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)

	// Missing variant data for the declared tag.
	_, err = stressinc.Calculate(stressinc.Input{
		Point:    soil.Point{ZM: 1},
		LoadType: soil.LoadStrip,
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)

	// Unknown tag.
	_, err = stressinc.Calculate(stressinc.Input{
		Point:    soil.Point{ZM: 1},
		LoadType: soil.LoadType("rectangular"),
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)

	// Non-positive load magnitude.
	_, err = stressinc.Calculate(stressinc.Input{
		Point:     soil.Point{ZM: 1},
		LoadType:  soil.LoadPoint,
		PointLoad: &soil.PointLoad{PKN: 0},
	})
	assert.ErrorIs(t, err, calcerr.ErrValidation)
}
