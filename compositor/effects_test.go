package compositor

import (
	"math"
	"testing"

	shimmer "github.com/abdusco/shimmer-sub001"
)

func TestApplyDim(t *testing.T) {
	pm := solidPixmap(4, 4, shimmer.RGB(1, 0.5, 0))
	applyDim(pm, 0.5)

	got := pm.GetPixel(0, 0)
	if math.Abs(got.R-0.5) > 0.01 || math.Abs(got.G-0.25) > 0.01 || got.B != 0 {
		t.Errorf("dimmed pixel = %v, want (0.5, 0.25, 0)", got)
	}

	// Zero dim leaves the image alone.
	pm2 := solidPixmap(4, 4, shimmer.RGB(0.3, 0.3, 0.3))
	before := pm2.GetPixel(1, 1)
	applyDim(pm2, 0)
	if pm2.GetPixel(1, 1) != before {
		t.Error("dim 0 modified pixels")
	}
}

func TestApplyDuotoneNormal(t *testing.T) {
	d := shimmer.Duotone{
		Light:   shimmer.RGB(1, 1, 0),
		Dark:    shimmer.RGB(0, 0, 1),
		Opacity: 1,
		Mode:    shimmer.BlendNormal,
	}

	// White has luminance 1, so it maps fully to the light color.
	white := solidPixmap(2, 2, shimmer.RGB(1, 1, 1))
	applyDuotone(white, d)
	got := white.GetPixel(0, 0)
	if math.Abs(got.R-1) > 0.01 || math.Abs(got.G-1) > 0.01 || got.B > 0.01 {
		t.Errorf("white -> %v, want light color (1,1,0)", got)
	}

	// Black maps fully to the dark color.
	black := solidPixmap(2, 2, shimmer.RGB(0, 0, 0))
	applyDuotone(black, d)
	got = black.GetPixel(0, 0)
	if got.R > 0.01 || got.G > 0.01 || math.Abs(got.B-1) > 0.01 {
		t.Errorf("black -> %v, want dark color (0,0,1)", got)
	}
}

func TestApplyDuotoneOpacity(t *testing.T) {
	d := shimmer.Duotone{
		Light:   shimmer.RGB(1, 0, 0),
		Dark:    shimmer.RGB(1, 0, 0),
		Opacity: 0.5,
		Mode:    shimmer.BlendNormal,
	}

	pm := solidPixmap(2, 2, shimmer.RGB(0, 0, 0))
	applyDuotone(pm, d)
	got := pm.GetPixel(0, 0)
	if math.Abs(got.R-0.5) > 0.01 {
		t.Errorf("half-opacity tint R = %v, want 0.5", got.R)
	}

	// Opacity 0 disables the effect.
	pm2 := solidPixmap(2, 2, shimmer.RGB(0.4, 0.4, 0.4))
	before := pm2.GetPixel(0, 0)
	applyDuotone(pm2, shimmer.Duotone{Light: shimmer.RGB(1, 0, 0), Opacity: 0})
	if pm2.GetPixel(0, 0) != before {
		t.Error("opacity 0 modified pixels")
	}
}

func TestApplyDuotoneScreenLightens(t *testing.T) {
	d := shimmer.Duotone{
		Light:   shimmer.RGB(0.8, 0.8, 0.8),
		Dark:    shimmer.RGB(0.2, 0.2, 0.2),
		Opacity: 1,
		Mode:    shimmer.BlendScreen,
	}

	pm := solidPixmap(2, 2, shimmer.RGB(0.5, 0.5, 0.5))
	applyDuotone(pm, d)
	got := pm.GetPixel(0, 0)
	if got.R <= 0.5 {
		t.Errorf("screen blend R = %v, want > 0.5", got.R)
	}
}

func TestSoftLightChannel(t *testing.T) {
	tests := []struct {
		b, s, want float64
	}{
		{0.5, 0.5, 0.5},   // neutral source leaves base unchanged
		{0.5, 0.0, 0.25},  // dark source darkens: b - b*(1-b)
		{0.25, 1.0, 0.5},  // bright source on dark base uses sqrt ramp
		{1.0, 1.0, 1.0},   // endpoints are fixed
		{0.0, 0.0, 0.0},
	}
	for _, tt := range tests {
		if got := softLightChannel(tt.b, tt.s); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("softLightChannel(%v, %v) = %v, want %v", tt.b, tt.s, got, tt.want)
		}
	}
}

func TestApplyGrainBounded(t *testing.T) {
	pm := solidPixmap(16, 16, shimmer.RGB(0.5, 0.5, 0.5))
	applyGrain(pm, shimmer.GrainSettings{Enabled: true, Amount: 1, Scale: 0.1})

	var changed bool
	for y := range 16 {
		for x := range 16 {
			got := pm.GetPixel(x, y)
			// Amount 1 perturbs by at most 0.125 per channel.
			if math.Abs(got.R-0.5) > 0.13 {
				t.Fatalf("grain at (%d,%d) pushed R to %v", x, y, got.R)
			}
			if got.R != 0.5 {
				changed = true
			}
		}
	}
	if !changed {
		t.Error("grain changed no pixels")
	}
}

func TestApplyGrainDisabled(t *testing.T) {
	pm := solidPixmap(4, 4, shimmer.RGB(0.5, 0.5, 0.5))
	before := pm.GetPixel(2, 2)
	applyGrain(pm, shimmer.GrainSettings{Enabled: false, Amount: 1})
	if pm.GetPixel(2, 2) != before {
		t.Error("disabled grain modified pixels")
	}
}

func TestApplyAberrationLocal(t *testing.T) {
	// A sharp vertical edge: left half red, right half blue.
	pm := shimmer.NewPixmap(64, 64)
	for y := range 64 {
		for x := range 64 {
			if x < 32 {
				pm.SetPixel(x, y, shimmer.RGB(1, 0, 0))
			} else {
				pm.SetPixel(x, y, shimmer.RGB(0, 0, 1))
			}
		}
	}
	corner := pm.GetPixel(1, 1)

	// One full-intensity ripple centered on the edge.
	applyAberration(pm, []float32{32, 32, 0.5}, []float32{1}, 64, 64)

	if pm.GetPixel(1, 1) != corner {
		t.Error("aberration modified pixels outside the ripple")
	}

	// Somewhere along the edge inside the ripple the channels shifted.
	var shifted bool
	for y := 24; y < 40 && !shifted; y++ {
		for x := 28; x < 36; x++ {
			got := pm.GetPixel(x, y)
			if got.R > 0.1 && got.B > 0.1 {
				shifted = true
				break
			}
		}
	}
	if !shifted {
		t.Error("aberration produced no channel shift near the edge")
	}
}

func TestApplyAberrationNoPoints(t *testing.T) {
	pm := solidPixmap(8, 8, shimmer.RGB(0.5, 0.2, 0.8))
	before := pm.GetPixel(4, 4)
	applyAberration(pm, nil, nil, 8, 8)
	if pm.GetPixel(4, 4) != before {
		t.Error("aberration with no points modified pixels")
	}
}
