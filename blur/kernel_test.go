package blur

import (
	"math"
	"testing"
)

func TestKernelNormalization(t *testing.T) {
	tests := []struct {
		name   string
		radius int
	}{
		{name: "radius 1", radius: 1},
		{name: "radius 5", radius: 5},
		{name: "radius 25", radius: 25},
		{name: "radius 300", radius: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Kernel(tt.radius)
			if len(k) != tt.radius+1 {
				t.Fatalf("len = %d, want %d", len(k), tt.radius+1)
			}

			sum := float64(k[0])
			for _, w := range k[1:] {
				sum += 2 * float64(w)
			}
			if math.Abs(sum-1) > 1e-4 {
				t.Errorf("normalized sum = %v, want 1", sum)
			}
		})
	}
}

func TestKernelMonotonicDecreasing(t *testing.T) {
	k := Kernel(10)
	for i := 1; i < len(k); i++ {
		if k[i] > k[i-1] {
			t.Errorf("weight[%d]=%v > weight[%d]=%v", i, k[i], i-1, k[i-1])
		}
	}
}

func TestKernelZeroRadiusIdentity(t *testing.T) {
	k := Kernel(0)
	if len(k) != 1 || k[0] != 1 {
		t.Errorf("Kernel(0) = %v, want [1]", k)
	}
}

func TestKernelClampsToMaxRadius(t *testing.T) {
	k := Kernel(MaxRadius + 100)
	if len(k) != MaxRadius+1 {
		t.Errorf("len = %d, want %d", len(k), MaxRadius+1)
	}
}
