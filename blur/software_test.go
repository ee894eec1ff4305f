package blur

import (
	"math"
	"testing"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// solidPixmap creates a w x h pixmap filled with one color.
func solidPixmap(w, h int, c shimmer.RGBA) *shimmer.Pixmap {
	p := shimmer.NewPixmap(w, h)
	p.Clear(c)
	return p
}

func TestSoftwareBlurPreservesSolidColor(t *testing.T) {
	src := solidPixmap(32, 32, shimmer.RGB(0.5, 0.25, 0.75))
	s := NewSoftware()
	defer s.Close()

	dst, err := s.Blur(src, 5)
	if err != nil {
		t.Fatalf("Blur: %v", err)
	}

	want := src.GetPixel(16, 16)
	got := dst.GetPixel(16, 16)
	if math.Abs(got.R-want.R) > 0.01 || math.Abs(got.G-want.G) > 0.01 || math.Abs(got.B-want.B) > 0.01 {
		t.Errorf("blurred solid color = %+v, want %+v", got, want)
	}
}

func TestSoftwareBlurSpreadsImpulse(t *testing.T) {
	src := solidPixmap(31, 31, shimmer.RGB(0, 0, 0))
	src.SetPixel(15, 15, shimmer.RGB(1, 1, 1))

	s := NewSoftware()
	defer s.Close()

	dst, err := s.Blur(src, 4)
	if err != nil {
		t.Fatalf("Blur: %v", err)
	}

	center := dst.GetPixel(15, 15)
	neighbor := dst.GetPixel(17, 15)
	far := dst.GetPixel(30, 15)

	if center.R <= neighbor.R {
		t.Errorf("center %v not brighter than neighbor %v", center.R, neighbor.R)
	}
	if neighbor.R <= 0 {
		t.Error("impulse did not spread to neighbor")
	}
	if far.R != 0 {
		t.Errorf("impulse leaked far outside the kernel: %v", far.R)
	}
}

func TestSoftwareBlurZeroRadiusCopies(t *testing.T) {
	src := solidPixmap(8, 8, shimmer.RGB(1, 0, 0))
	src.SetPixel(3, 3, shimmer.RGB(0, 1, 0))

	s := NewSoftware()
	defer s.Close()

	dst, err := s.Blur(src, 0)
	if err != nil {
		t.Fatalf("Blur: %v", err)
	}

	if got := dst.GetPixel(3, 3); got.G != 1 {
		t.Errorf("pixel (3,3) = %+v, want unchanged green", got)
	}
	if dst == src {
		t.Error("zero-radius blur returned the source pixmap, want a copy")
	}
}

func TestSoftwareBlurErrors(t *testing.T) {
	s := NewSoftware()

	if _, err := s.Blur(nil, 5); err != ErrNilSource {
		t.Errorf("Blur(nil) error = %v, want ErrNilSource", err)
	}
	if _, err := s.Blur(shimmer.NewPixmap(0, 0), 5); err != ErrEmptySource {
		t.Errorf("Blur(empty) error = %v, want ErrEmptySource", err)
	}

	s.Close()
	if _, err := s.Blur(solidPixmap(4, 4, shimmer.RGB(1, 1, 1)), 2); err != ErrBackendClosed {
		t.Errorf("Blur after Close error = %v, want ErrBackendClosed", err)
	}
}

func TestSoftwareBlurPreservesDimensions(t *testing.T) {
	src := solidPixmap(33, 17, shimmer.RGB(0.2, 0.4, 0.6))
	s := NewSoftware()
	defer s.Close()

	dst, err := s.Blur(src, 7)
	if err != nil {
		t.Fatalf("Blur: %v", err)
	}
	if dst.Width() != 33 || dst.Height() != 17 {
		t.Errorf("size = %dx%d, want 33x17", dst.Width(), dst.Height())
	}
}

func BenchmarkSoftwareBlur(b *testing.B) {
	src := solidPixmap(256, 256, shimmer.RGB(0.5, 0.5, 0.5))
	s := NewSoftware()
	defer s.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Blur(src, 8); err != nil {
			b.Fatal(err)
		}
	}
}
