package anim

import "math"

// Ease maps linear progress t in [0, 1] to eased progress.
type Ease func(t float64) float64

// EaseLinear is the identity easing.
func EaseLinear(t float64) float64 { return t }

// EaseDecelerate starts fast and slows to a stop; the derivative
// approaches zero at t=1.
func EaseDecelerate(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv
}

// EaseInOut is a symmetric accelerate-decelerate curve.
func EaseInOut(t float64) float64 {
	return (math.Cos((t+1)*math.Pi) / 2) + 0.5
}
