package anim

import "math"

// Default smoothing parameters.
const (
	// DefaultSmoothingFactor is the fraction of the remaining distance
	// covered per tick.
	DefaultSmoothingFactor = 0.15

	// DefaultSnapThreshold is the distance below which the value snaps
	// exactly to its target.
	DefaultSnapThreshold = 0.001
)

// SmoothingFloatAnimator follows a moving target by exponential decay:
// each Tick moves the current value a fixed fraction of the remaining
// distance. This tracks continuous input (dragging) responsively and
// smooths discontinuous jumps (flinging) without elapsed-time math.
//
// Used for the parallax scroll offset.
type SmoothingFloatAnimator struct {
	// Factor is the fraction of remaining distance covered per tick.
	Factor float64

	// SnapThreshold is the distance below which the value snaps to target.
	SnapThreshold float64

	currentValue float64
	targetValue  float64
	animating    bool
}

// NewSmoothingFloatAnimator creates a follower with the default factor
// and snap threshold, starting at the given value.
func NewSmoothingFloatAnimator(initial float64) *SmoothingFloatAnimator {
	return &SmoothingFloatAnimator{
		Factor:        DefaultSmoothingFactor,
		SnapThreshold: DefaultSnapThreshold,
		currentValue:  initial,
		targetValue:   initial,
	}
}

// SetTarget updates the desired endpoint without resetting the current
// value.
func (a *SmoothingFloatAnimator) SetTarget(v float64) {
	a.targetValue = v
	if a.currentValue != v {
		a.animating = true
	}
}

// Snap jumps directly to the value, skipping the decay.
func (a *SmoothingFloatAnimator) Snap(v float64) {
	a.currentValue = v
	a.targetValue = v
	a.animating = false
}

// Tick moves the current value toward the target. Call once per frame.
func (a *SmoothingFloatAnimator) Tick() {
	if !a.animating {
		return
	}

	remaining := a.targetValue - a.currentValue
	if math.Abs(remaining) < a.SnapThreshold {
		a.currentValue = a.targetValue
		a.animating = false
		return
	}

	a.currentValue += remaining * a.Factor
}

// Value returns the current smoothed value.
func (a *SmoothingFloatAnimator) Value() float64 { return a.currentValue }

// Target returns the current target value.
func (a *SmoothingFloatAnimator) Target() float64 { return a.targetValue }

// IsAnimating reports whether the value is still converging.
func (a *SmoothingFloatAnimator) IsAnimating() bool { return a.animating }
