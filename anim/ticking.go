package anim

import "time"

// TickingFloatAnimator interpolates a float value over a fixed duration,
// advancing only when Tick is called.
//
// The zero value is not usable; create animators with NewTickingFloatAnimator.
// TickingFloatAnimator is not safe for concurrent use; it is owned by the
// render context.
type TickingFloatAnimator struct {
	// Duration is the animation length. Mutable between runs; changing it
	// mid-run rescales the remaining progress.
	Duration time.Duration

	// Ease is the easing curve applied to linear progress.
	Ease Ease

	// Clock returns the current time. Defaults to time.Now; tests inject
	// a fake.
	Clock func() time.Time

	startValue   float64
	endValue     float64
	currentValue float64
	startTime    time.Time
	running      bool
	onComplete   func()
}

// NewTickingFloatAnimator creates an idle animator with the given duration
// and the decelerate easing.
func NewTickingFloatAnimator(duration time.Duration) *TickingFloatAnimator {
	return &TickingFloatAnimator{
		Duration: duration,
		Ease:     EaseDecelerate,
		Clock:    time.Now,
	}
}

// Start begins an animation from start to end. A prior in-flight animation
// is discarded; pass the current value as start to avoid a visual jump.
// onComplete may be nil; it fires exactly once, on the tick where progress
// reaches 1.
func (a *TickingFloatAnimator) Start(start, end float64, onComplete func()) {
	a.startValue = start
	a.endValue = end
	a.currentValue = start
	a.startTime = a.Clock()
	a.onComplete = onComplete
	a.running = true

	// A zero or negative duration completes on the next tick.
}

// Tick advances the animation to the current time. It must be called once
// per frame while the animation runs; calling it when idle is a no-op.
func (a *TickingFloatAnimator) Tick() {
	if !a.running {
		return
	}

	t := 1.0
	if a.Duration > 0 {
		elapsed := a.Clock().Sub(a.startTime)
		t = float64(elapsed) / float64(a.Duration)
		if t > 1 {
			t = 1
		}
		if t < 0 {
			t = 0
		}
	}

	if t < 1 {
		ease := a.Ease
		if ease == nil {
			ease = EaseDecelerate
		}
		a.currentValue = a.startValue + ease(t)*(a.endValue-a.startValue)
		return
	}

	// End state is exact: no residual interpolation drift.
	a.currentValue = a.endValue
	a.running = false
	if a.onComplete != nil {
		cb := a.onComplete
		a.onComplete = nil
		cb()
	}
}

// Reset forcibly marks the animator idle without firing completion.
// The current value is left as-is.
func (a *TickingFloatAnimator) Reset() {
	a.running = false
	a.onComplete = nil
}

// Value returns the current interpolated value.
func (a *TickingFloatAnimator) Value() float64 { return a.currentValue }

// SetValue overrides the current value. Useful to seed the animator before
// the first run.
func (a *TickingFloatAnimator) SetValue(v float64) { a.currentValue = v }

// IsRunning reports whether an animation is in flight.
func (a *TickingFloatAnimator) IsRunning() bool { return a.running }
