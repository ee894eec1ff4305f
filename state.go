package shimmer

// BlendMode selects the duotone blend equation.
type BlendMode int

const (
	// BlendNormal replaces the destination with the tinted color.
	BlendNormal BlendMode = iota

	// BlendSoftLight is a soft version of hard light (W3C compositing).
	BlendSoftLight

	// BlendScreen produces 1 - (1-S)*(1-D), always lightening.
	BlendScreen
)

// String returns a human-readable name for the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendSoftLight:
		return "SoftLight"
	case BlendScreen:
		return "Screen"
	default:
		return "Unknown"
	}
}

// Duotone is a two-color tint effect mapping image luminance to a
// light/dark color pair.
type Duotone struct {
	// Light is the color bright pixels map to.
	Light RGBA

	// Dark is the color dark pixels map to.
	Dark RGBA

	// Opacity is the overall strength of the effect in [0, 1].
	Opacity float64

	// Mode is the blend equation used to combine the tint with the image.
	Mode BlendMode
}

// GrainSettings configures the film grain overlay.
type GrainSettings struct {
	// Enabled toggles the effect.
	Enabled bool

	// Amount is the grain strength in [0, 1].
	Amount float64

	// Scale controls grain cell size in [0, 1]; larger is coarser.
	Scale float64
}

// AberrationSettings configures the touch-reactive chromatic aberration.
type AberrationSettings struct {
	// Enabled toggles the effect.
	Enabled bool

	// Intensity is the global effect strength in [0, 1].
	Intensity float64

	// FadeDurationMillis is the release fade duration for touch points.
	FadeDurationMillis int
}

// DefaultAberrationSettings returns the stock aberration configuration.
func DefaultAberrationSettings() AberrationSettings {
	return AberrationSettings{
		Enabled:            true,
		Intensity:          0.5,
		FadeDurationMillis: 400,
	}
}

// RenderState is the immutable per-frame snapshot of all render parameters.
// It is assembled by the host configuration and consumed by the compositor.
// A new state replaces the old one wholesale; it is never mutated in place.
type RenderState struct {
	// Set is the image currently on screen.
	Set *ImageSet

	// BlurPercent selects the blur level in [0, 1]; 0 is the unblurred
	// original, 1 the most blurred keyframe.
	BlurPercent float64

	// DimAmount darkens the image in [0, 1].
	DimAmount float64

	// Duotone is the active color grading; Opacity 0 disables it.
	Duotone Duotone

	// DuotoneAlwaysOn applies duotone regardless of lock state.
	DuotoneAlwaysOn bool

	// ParallaxOffset is the normalized horizontal scroll position in [0, 1].
	ParallaxOffset float64

	// Grain is the film grain configuration.
	Grain GrainSettings
}

// WithBlurPercent returns a copy of the state with a new blur percentage.
func (s RenderState) WithBlurPercent(p float64) RenderState {
	s.BlurPercent = clamp01(p)
	return s
}

// WithSet returns a copy of the state pointing at a new image set.
func (s RenderState) WithSet(set *ImageSet) RenderState {
	s.Set = set
	return s
}
