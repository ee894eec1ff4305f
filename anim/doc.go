// Package anim provides frame-driven value animators.
//
// All animators here are cooperative and pull-based: nothing fires on a
// timer thread. Progress only advances when the render loop calls Tick,
// which keeps animation frame-exact and avoids drift when frames are
// dropped.
package anim
