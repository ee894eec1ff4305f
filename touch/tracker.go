package touch

import (
	"time"

	shimmer "github.com/abdusco/shimmer-sub001"
	"github.com/abdusco/shimmer-sub001/anim"
)

// Tracker limits and thresholds.
const (
	// MaxTrackedPoints is the maximum number of concurrently animated
	// touch points. DOWN events beyond this are ignored until a slot
	// frees up.
	MaxTrackedPoints = 5

	// expireEpsilon is the radius/intensity level below which an idle
	// released point is removed.
	expireEpsilon = 0.01

	// radiusGrowFactor scales the fade duration into the radius grow
	// duration for new touches.
	radiusGrowFactor = 1.5
)

// point is the animation state of one tracked touch. Points live in a
// fixed-size pool inside the Tracker; they are reused via swap-remove
// rather than allocated per touch.
type point struct {
	id        int
	x, y      float64
	radius    float64
	intensity float64
	released  bool

	radiusAnim *anim.TickingFloatAnimator
	fadeAnim   *anim.TickingFloatAnimator
}

// Tracker owns the set of active touch points and produces, per frame, the
// flat uniform arrays consumed by the aberration shader.
//
// Tracker is owned by the render context and is not safe for concurrent
// use.
type Tracker struct {
	// Clock returns the current time for the point animators. Defaults to
	// time.Now; tests inject a fake.
	Clock func() time.Time

	settings shimmer.AberrationSettings

	points []*point
	count  int

	// Output arrays are kept between frames and resliced, not reallocated,
	// unless the point count changes.
	outPoints      []float32
	outIntensities []float32
}

// NewTracker creates an empty tracker with the given effect settings.
func NewTracker(settings shimmer.AberrationSettings) *Tracker {
	t := &Tracker{
		Clock:    time.Now,
		settings: settings,
		points:   make([]*point, MaxTrackedPoints),
	}
	for i := range t.points {
		t.points[i] = &point{}
	}
	return t
}

// SetSettings updates the shared intensity/duration configuration. When the
// effect is disabled or has zero intensity all tracked points are dropped
// immediately; otherwise the new fade duration applies to in-flight fades.
func (t *Tracker) SetSettings(settings shimmer.AberrationSettings) {
	t.settings = settings
	if !settings.Enabled || settings.Intensity <= 0 {
		t.clear()
		return
	}

	fade := time.Duration(settings.FadeDurationMillis) * time.Millisecond
	for i := 0; i < t.count; i++ {
		t.points[i].fadeAnim.Duration = fade
	}
}

// SetActiveTouches consumes the full per-frame batch of raw touch events.
// Pointers currently down are tracked (up to MaxTrackedPoints), lifted
// pointers start their release animation, and tracked pointers absent from
// the batch are treated as released (missed UP events).
func (t *Tracker) SetActiveTouches(batch []Data) {
	if !t.settings.Enabled || t.settings.Intensity <= 0 {
		t.clear()
		return
	}

	hasActive := false
	for _, ev := range batch {
		if ev.Action != ActionUp {
			hasActive = true
			break
		}
	}
	if !hasActive {
		t.releaseAll()
		return
	}

	// Release tracked points that appear in neither the active nor the
	// lifted set. Defensive: the host may drop UP events.
	for i := 0; i < t.count; i++ {
		p := t.points[i]
		if p.released {
			continue
		}
		seen := false
		for _, ev := range batch {
			if ev.ID == p.id {
				seen = true
				break
			}
		}
		if !seen {
			t.release(p)
		}
	}

	for _, ev := range batch {
		switch ev.Action {
		case ActionDown, ActionMove:
			t.press(ev)
		case ActionUp:
			if p := t.find(ev.ID); p != nil && !p.released {
				p.x, p.y = ev.X, ev.Y
				t.release(p)
			}
		}
	}
}

// Tick advances every tracked point's animators and expires points that
// are idle and visually negligible. It reports whether any points remain,
// signalling the caller that continued rendering is needed.
func (t *Tracker) Tick() bool {
	for i := 0; i < t.count; {
		p := t.points[i]
		p.radiusAnim.Tick()
		p.fadeAnim.Tick()
		p.radius = p.radiusAnim.Value()
		p.intensity = p.fadeAnim.Value()

		idle := !p.radiusAnim.IsRunning() && !p.fadeAnim.IsRunning()
		if idle && p.released && p.radius <= expireEpsilon && p.intensity <= expireEpsilon {
			t.remove(i)
			continue
		}
		i++
	}
	return t.count > 0
}

// Points returns the flat (x, y, radius) triples for the active points.
// The slice is reused across frames; callers must not retain it.
func (t *Tracker) Points() []float32 {
	n := t.count
	if cap(t.outPoints) < n*3 {
		t.outPoints = make([]float32, n*3)
	}
	t.outPoints = t.outPoints[:n*3]
	for i := 0; i < n; i++ {
		p := t.points[i]
		t.outPoints[i*3+0] = float32(p.x)
		t.outPoints[i*3+1] = float32(p.y)
		t.outPoints[i*3+2] = float32(p.radius)
	}
	return t.outPoints
}

// Intensities returns the per-point intensity scalars, already scaled by
// the global effect intensity. The slice is reused across frames.
func (t *Tracker) Intensities() []float32 {
	n := t.count
	if cap(t.outIntensities) < n {
		t.outIntensities = make([]float32, n)
	}
	t.outIntensities = t.outIntensities[:n]
	for i := 0; i < n; i++ {
		t.outIntensities[i] = float32(t.points[i].intensity * t.settings.Intensity)
	}
	return t.outIntensities
}

// Count returns the number of currently tracked points.
func (t *Tracker) Count() int { return t.count }

// press updates an existing point's position or claims a free slot for a
// new pointer.
func (t *Tracker) press(ev Data) {
	if p := t.find(ev.ID); p != nil {
		p.x, p.y = ev.X, ev.Y
		if p.released {
			// The same pointer came back down mid-release: grow the
			// ripple again from wherever it is now.
			p.released = false
			p.radiusAnim.Start(p.radius, 1, nil)
			p.fadeAnim.Reset()
			p.fadeAnim.SetValue(1)
			p.intensity = 1
		}
		return
	}
	if t.count >= MaxTrackedPoints {
		return
	}

	fade := time.Duration(t.settings.FadeDurationMillis) * time.Millisecond

	p := t.points[t.count]
	t.count++
	p.id = ev.ID
	p.x, p.y = ev.X, ev.Y
	p.released = false
	p.radius = 0
	p.intensity = 1

	if p.radiusAnim == nil {
		p.radiusAnim = anim.NewTickingFloatAnimator(0)
		p.radiusAnim.Ease = anim.EaseInOut
		p.fadeAnim = anim.NewTickingFloatAnimator(0)
		p.fadeAnim.Ease = anim.EaseInOut
	}
	p.radiusAnim.Clock = t.Clock
	p.fadeAnim.Clock = t.Clock

	// Radius grows in while intensity holds at full: the ripple expands
	// under the finger without fading in.
	p.radiusAnim.Duration = time.Duration(radiusGrowFactor * float64(fade))
	p.radiusAnim.Start(0, 1, nil)
	p.fadeAnim.Duration = fade
	p.fadeAnim.Reset()
	p.fadeAnim.SetValue(1)
}

// release starts a point's outward animation toward zero radius and
// intensity.
func (t *Tracker) release(p *point) {
	p.released = true
	p.radiusAnim.Start(p.radius, 0, nil)
	p.fadeAnim.Start(p.intensity, 0, nil)
}

// releaseAll releases every tracked point that is still held.
func (t *Tracker) releaseAll() {
	for i := 0; i < t.count; i++ {
		if !t.points[i].released {
			t.release(t.points[i])
		}
	}
}

// find returns the tracked point with the given pointer id, or nil.
func (t *Tracker) find(id int) *point {
	for i := 0; i < t.count; i++ {
		if t.points[i].id == id {
			return t.points[i]
		}
	}
	return nil
}

// remove drops the point at index i by swapping it with the last live
// point. Order is not preserved; the shader does not care.
func (t *Tracker) remove(i int) {
	last := t.count - 1
	t.points[i], t.points[last] = t.points[last], t.points[i]
	t.count = last
}

// clear drops all tracked points immediately without animating out.
func (t *Tracker) clear() {
	for i := 0; i < t.count; i++ {
		p := t.points[i]
		p.radius = 0
		p.intensity = 0
		p.released = true
		if p.radiusAnim != nil {
			p.radiusAnim.Reset()
			p.fadeAnim.Reset()
		}
	}
	t.count = 0
}
