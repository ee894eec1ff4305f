// Package touch turns raw multi-touch event streams into discrete tap
// gestures and per-frame shader parameters.
//
// TapDetector counts "N taps with M simultaneous fingers" sequences and
// emits gesture events through a typed callback. Tracker owns a bounded
// pool of active touch points, animating each point's ripple radius and
// intensity for the chromatic aberration effect.
package touch
