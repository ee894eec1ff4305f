package touch

import (
	"math"
	"time"
)

// Gesture is a discrete tap gesture event.
type Gesture int

const (
	// GestureNone is the absence of a gesture.
	GestureNone Gesture = iota

	// GestureTripleTap is three sequential single-finger taps.
	GestureTripleTap

	// GestureTwoFingerDoubleTap is two sequential two-finger taps.
	GestureTwoFingerDoubleTap

	// GestureThreeFingerDoubleTap is two sequential three-finger taps.
	GestureThreeFingerDoubleTap
)

// String returns a human-readable name for the gesture.
func (g Gesture) String() string {
	switch g {
	case GestureTripleTap:
		return "TripleTap"
	case GestureTwoFingerDoubleTap:
		return "TwoFingerDoubleTap"
	case GestureThreeFingerDoubleTap:
		return "ThreeFingerDoubleTap"
	default:
		return "None"
	}
}

// Tap detection tuning.
const (
	// DefaultTapTimeout is the maximum gap between the previous UP and the
	// next DOWN for the taps to count as one sequence.
	DefaultTapTimeout = 350 * time.Millisecond

	// DefaultSlop is the movement distance, in pixels, beyond which a
	// pointer is considered dragging rather than tapping.
	DefaultSlop = 24.0
)

// downPos records where a pointer first touched.
type downPos struct {
	x, y float64
}

// TapDetector classifies a raw multi-touch stream into multi-finger tap
// gestures: triple single-finger tap, double two-finger tap, and double
// three-finger tap. Small movement within the slop distance is tolerated;
// drags abort the current tap.
//
// TapDetector is not safe for concurrent use; feed it events from a single
// goroutine.
type TapDetector struct {
	// Slop is the per-pointer movement tolerance in pixels. Distances are
	// Manhattan (|dx|+|dy|), not Euclidean.
	Slop float64

	// TapTimeout is the maximum previous-UP-to-next-DOWN gap.
	TapTimeout time.Duration

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	onGesture func(Gesture)

	tapCount          int
	lastTapTime       time.Time
	lastTapFingers    int
	maxPointers       int
	aborted           bool
	downPositions     map[int]downPos
}

// NewTapDetector creates a detector that invokes onGesture for every
// recognized gesture. onGesture may be nil.
func NewTapDetector(onGesture func(Gesture)) *TapDetector {
	return &TapDetector{
		Slop:          DefaultSlop,
		TapTimeout:    DefaultTapTimeout,
		Clock:         time.Now,
		onGesture:     onGesture,
		downPositions: make(map[int]downPos),
	}
}

// Handle consumes one raw touch event and returns the gesture it completed,
// or GestureNone. The same gesture is also delivered to the onGesture
// callback.
func (d *TapDetector) Handle(ev Data) Gesture {
	switch ev.Action {
	case ActionDown:
		d.handleDown(ev)
	case ActionMove:
		d.handleMove(ev)
	case ActionUp:
		return d.handleUp(ev)
	}
	return GestureNone
}

// Cancel resets all gesture state immediately, emitting nothing. Call it
// when the host interrupts a touch sequence so no partial state leaks into
// the next session.
func (d *TapDetector) Cancel() {
	d.tapCount = 0
	d.lastTapFingers = 0
	d.maxPointers = 0
	d.aborted = false
	d.lastTapTime = time.Time{}
	clear(d.downPositions)
}

func (d *TapDetector) handleDown(ev Data) {
	if len(d.downPositions) == 0 {
		// First finger of a new tap. The inter-tap window is measured
		// from the previous UP to this DOWN.
		if d.Clock().Sub(d.lastTapTime) > d.TapTimeout {
			d.tapCount = 0
		}
		d.aborted = false
		d.maxPointers = 0
	}

	d.downPositions[ev.ID] = downPos{x: ev.X, y: ev.Y}
	if n := len(d.downPositions); n > d.maxPointers {
		d.maxPointers = n
	}
}

func (d *TapDetector) handleMove(ev Data) {
	start, ok := d.downPositions[ev.ID]
	if !ok {
		return
	}
	// Manhattan distance: cheaper than Euclidean and what tap slop uses.
	dist := math.Abs(ev.X-start.x) + math.Abs(ev.Y-start.y)
	if dist > d.Slop {
		d.aborted = true
	}
}

func (d *TapDetector) handleUp(ev Data) Gesture {
	delete(d.downPositions, ev.ID)
	if len(d.downPositions) > 0 {
		return GestureNone
	}

	// Last finger lifted: the tap is complete.
	d.lastTapTime = d.Clock()

	if d.aborted {
		// Movement invalidates the whole counting sequence, not just
		// this tap's contribution.
		d.tapCount = 0
		return GestureNone
	}

	if d.maxPointers != d.lastTapFingers {
		// Finger count changed mid-sequence: this tap starts a new
		// candidate sequence.
		d.tapCount = 1
	} else {
		d.tapCount++
	}
	d.lastTapFingers = d.maxPointers

	g := d.classify(d.maxPointers, d.tapCount)
	if g != GestureNone {
		d.tapCount = 0
		d.lastTapFingers = 0
		if d.onGesture != nil {
			d.onGesture(g)
		}
		return g
	}

	if d.maxPointers > 3 || d.tapCount > 3 {
		d.tapCount = 0
	}
	return GestureNone
}

// classify maps a completed (fingers, taps) pair to a gesture.
func (d *TapDetector) classify(fingers, taps int) Gesture {
	switch {
	case fingers == 3 && taps == 2:
		return GestureThreeFingerDoubleTap
	case fingers == 2 && taps == 2:
		return GestureTwoFingerDoubleTap
	case fingers == 1 && taps == 3:
		return GestureTripleTap
	default:
		return GestureNone
	}
}
