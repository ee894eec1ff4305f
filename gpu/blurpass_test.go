package gpu

import (
	"testing"

	shimmer "github.com/abdusco/shimmer-sub001"
)

func TestBlurPassFallsBackToSoftware(t *testing.T) {
	// A nil backend means no GPU; the pass must still blur via the CPU path.
	p := NewBlurPass(nil)
	defer p.Close()

	src := shimmer.NewPixmap(32, 32)
	src.Clear(shimmer.RGB(0.5, 0.5, 0.5))

	dst, err := p.Blur(src, 4)
	if err != nil {
		t.Fatalf("Blur: %v", err)
	}
	if dst.Width() != 32 || dst.Height() != 32 {
		t.Errorf("output = %dx%d, want 32x32", dst.Width(), dst.Height())
	}

	// A uniform image blurs to itself.
	if got, want := dst.GetPixel(16, 16), src.GetPixel(16, 16); got != want {
		t.Errorf("center pixel = %v, want %v", got, want)
	}
}

func TestBlurPassDegradesOnceOnReadback(t *testing.T) {
	// A GPU-ready pass must deliver the CPU result when readback fails
	// and must not retry the GPU path afterward.
	p := NewBlurPass(nil)
	defer p.Close()
	p.gpuReady = true

	src := shimmer.NewPixmap(16, 16)
	src.Clear(shimmer.RGB(0.25, 0.5, 0.75))

	dst, err := p.Blur(src, 3)
	if err != nil {
		t.Fatalf("Blur: %v", err)
	}
	if got, want := dst.GetPixel(8, 8), src.GetPixel(8, 8); got != want {
		t.Errorf("center pixel = %v, want %v", got, want)
	}
	if p.gpuReady {
		t.Error("gpuReady still set after readback failure")
	}
}

func TestBlurPassValidation(t *testing.T) {
	p := NewBlurPass(nil)
	defer p.Close()

	if _, err := p.Blur(nil, 4); err == nil {
		t.Error("Blur(nil) error = nil, want error")
	}
}

func TestBlurPassAfterClose(t *testing.T) {
	p := NewBlurPass(nil)
	p.Close()
	p.Close() // idempotent

	src := shimmer.NewPixmap(8, 8)
	if _, err := p.Blur(src, 2); err == nil {
		t.Error("Blur after Close error = nil, want error")
	}
}

func TestBackendUninitialized(t *testing.T) {
	b := &Backend{}
	if b.IsInitialized() {
		t.Error("IsInitialized = true for zero Backend")
	}
	if !b.Device().IsZero() {
		t.Error("Device = non-zero for uninitialized Backend")
	}
	if b.Info() != nil {
		t.Error("Info = non-nil for uninitialized Backend")
	}
}
