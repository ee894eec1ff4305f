package anim

import (
	"math"
	"testing"
)

func TestSmoothingAnimatorConverges(t *testing.T) {
	tests := []struct {
		name    string
		initial float64
		target  float64
	}{
		{name: "forward", initial: 0, target: 1},
		{name: "backward", initial: 1, target: 0},
		{name: "small step", initial: 0.5, target: 0.501},
		{name: "negative", initial: 0.2, target: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewSmoothingFloatAnimator(tt.initial)
			a.SetTarget(tt.target)

			ticks := 0
			for a.IsAnimating() {
				a.Tick()
				ticks++
				if ticks > 1000 {
					t.Fatal("animator did not converge in 1000 ticks")
				}
			}

			if a.Value() != tt.target {
				t.Errorf("Value = %v, want exactly %v after snap", a.Value(), tt.target)
			}
		})
	}
}

func TestSmoothingAnimatorTracksMovingTarget(t *testing.T) {
	a := NewSmoothingFloatAnimator(0)

	a.SetTarget(1)
	a.Tick()
	first := a.Value()

	if math.Abs(first-DefaultSmoothingFactor) > 1e-12 {
		t.Errorf("first tick moved to %v, want %v", first, DefaultSmoothingFactor)
	}

	// Retargeting mid-flight must not reset the current value.
	a.SetTarget(0)
	a.Tick()
	if a.Value() >= first {
		t.Errorf("value %v did not move toward new target", a.Value())
	}
}

func TestSmoothingAnimatorSnap(t *testing.T) {
	a := NewSmoothingFloatAnimator(0)
	a.SetTarget(1)
	a.Tick()

	a.Snap(0.4)
	if a.Value() != 0.4 || a.Target() != 0.4 {
		t.Errorf("Snap: value=%v target=%v, want 0.4/0.4", a.Value(), a.Target())
	}
	if a.IsAnimating() {
		t.Error("IsAnimating = true after Snap")
	}
}

func TestSmoothingAnimatorIdleTickIsNoop(t *testing.T) {
	a := NewSmoothingFloatAnimator(0.7)
	a.Tick()
	if a.Value() != 0.7 {
		t.Errorf("Value = %v, want 0.7", a.Value())
	}
}
