// Package soil holds the value types shared by the stress and settlement
// calculators: stratified profile layers, the water-table configuration and
// the surface-load variants. The types carry no behavior.
package soil

// DefaultGammaW is the conventional unit weight of water in kN/m³ used when
// a request leaves it unset. It is a rounded stand-in for 9.81; callers that
// care about the difference supply their own value.
const DefaultGammaW = 10.0

// DefaultK0 is the at-rest lateral earth pressure coefficient applied to
// layers that do not declare one.
const DefaultK0 = 0.5

// Layer is one stratum of a soil profile, listed surface-down. GammaNat is
// required if any part of the layer lies above the water table, GammaSat if
// any part lies below it.
type Layer struct {
	ThicknessM   float64  `json:"thickness_m"`
	GammaNatKNM3 *float64 `json:"gamma_nat_kn_m3,omitempty"`
	GammaSatKNM3 *float64 `json:"gamma_sat_kn_m3,omitempty"`
	K0           *float64 `json:"k0,omitempty"`
}

// EffectiveK0 resolves the layer's K0, falling back to the default.
func (l Layer) EffectiveK0() float64 {
	if l.K0 == nil {
		return DefaultK0
	}
	return *l.K0
}

// WaterTable locates the free-water surface and the capillary fringe above
// it. DepthM of 0 puts the table at the ground surface.
type WaterTable struct {
	DepthM         float64 `json:"depth_m"`
	CapillaryRiseM float64 `json:"capillary_rise_m"`
	GammaWKNM3     float64 `json:"gamma_w_kn_m3,omitempty"`
}

// EffectiveGammaW resolves the water unit weight, falling back to the default.
func (w WaterTable) EffectiveGammaW() float64 {
	if w.GammaWKNM3 <= 0 {
		return DefaultGammaW
	}
	return w.GammaWKNM3
}

// StressPoint is one depth of a computed geostatic profile. The effective
// vertical stress always equals total minus pore pressure, clamped at zero.
type StressPoint struct {
	DepthM        float64 `json:"depth_m"`
	TotalKPa      float64 `json:"total_kpa"`
	PoreKPa       float64 `json:"pore_kpa"`
	EffectiveKPa  float64 `json:"effective_kpa"`
	EffectiveHKPa float64 `json:"effective_h_kpa"`
}

// Point is a subsurface point of interest. ZM grows downward from the
// surface; the surface itself (z=0) is not a valid increment target.
type Point struct {
	XM float64 `json:"x_m"`
	YM float64 `json:"y_m"`
	ZM float64 `json:"z_m"`
}

// LoadType tags which surface-load variant a request carries.
type LoadType string

const (
	LoadPoint    LoadType = "point"
	LoadStrip    LoadType = "strip"
	LoadCircular LoadType = "circular"
)

// PointLoad is a concentrated vertical load at (X, Y) on the surface.
type PointLoad struct {
	PKN float64 `json:"p_kn"`
	XM  float64 `json:"x_m"`
	YM  float64 `json:"y_m"`
}

// StripLoad is an infinitely long uniform strip load. The strip runs along
// the y axis; CenterXM places its centerline.
type StripLoad struct {
	WidthM       float64 `json:"width_m"`
	IntensityKPa float64 `json:"intensity_kpa"`
	CenterXM     float64 `json:"center_x_m"`
}

// CircularLoad is a uniformly loaded circular area on the surface.
type CircularLoad struct {
	RadiusM      float64 `json:"radius_m"`
	IntensityKPa float64 `json:"intensity_kpa"`
	CenterXM     float64 `json:"center_x_m"`
	CenterYM     float64 `json:"center_y_m"`
}
