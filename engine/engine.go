// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	shimmer "github.com/abdusco/shimmer-sub001"
	"github.com/abdusco/shimmer-sub001/anim"
	"github.com/abdusco/shimmer-sub001/blur"
	"github.com/abdusco/shimmer-sub001/compositor"
	"github.com/abdusco/shimmer-sub001/gpu"
	"github.com/abdusco/shimmer-sub001/internal/task"
	"github.com/abdusco/shimmer-sub001/touch"
)

// Engine errors.
var (
	// ErrClosed is returned when using an engine after Close.
	ErrClosed = errors.New("engine: engine is closed")
)

// Defaults.
const (
	DefaultMaxBlurRadius = 120.0
	DefaultBlurDuration  = 400 * time.Millisecond
	DefaultCycleInterval = 15 * time.Minute

	// interactionPause delays the image cycle after the user touches the
	// wallpaper, so it doesn't swap mid-interaction.
	interactionPause = 30 * time.Second
)

// Config configures a new Engine. The zero value of every field has a
// usable default; a nil Backend runs the all-CPU pipeline.
type Config struct {
	// Backend is the optional GPU backend for blur and compositing.
	Backend *gpu.Backend

	// DeviceProvider is an optional host-supplied GPU device. It is used
	// only when Backend is nil; the engine wraps it in a borrowed
	// backend so all pipelines share the host's device. A provider that
	// does not expose wgpu handles falls back to the CPU pipeline.
	DeviceProvider gpu.DeviceHandle

	// MemoryBudgetMB caps texture memory; zero uses the gpu default.
	MemoryBudgetMB int

	// MaxBlurRadius is the blur radius of the last keyframe, in pixels
	// of the source image.
	MaxBlurRadius float64

	// BlurDuration is how long the blur toggle transition runs.
	BlurDuration time.Duration

	// TileSize overrides the keyframe tile size; zero uses the default.
	TileSize int

	// CycleInterval is the automatic image advance period; zero disables
	// the cycle scheduler.
	CycleInterval time.Duration

	// DuotoneInterval is the duotone preset rotation period; zero
	// disables rotation.
	DuotoneInterval time.Duration

	// Aberration configures the touch ripple effect.
	Aberration shimmer.AberrationSettings

	// OnCommand receives gesture and scheduler commands. May be called
	// from the render context or a scheduler goroutine.
	OnCommand func(Command)

	// OnReady is called on the render context each time a new image set
	// has been applied and the engine can accept the next one.
	OnReady func()
}

// Engine drives the wallpaper: it owns the render state, converts touch
// input and scheduler time into state changes, and composites one frame
// per Tick/RenderFrame pair.
//
// Tick and RenderFrame must be called from the render context. The
// input methods (HandleTouch, SetVisible, Resize, SetOffset, the
// setting setters) are safe to call from any goroutine.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	state  shimmer.RenderState
	blurOn bool

	comp     *compositor.Compositor
	taps     *touch.TapDetector
	tracker  *touch.Tracker
	parallax *anim.SmoothingFloatAnimator
	blurAnim *anim.TickingFloatAnimator

	blurPass *gpu.BlurPass
	pyramid  *blur.PyramidGenerator
	memory   *gpu.MemoryManager

	apply *task.Serial
	pool  *task.Pool

	cycle      *Scheduler
	duotoneRot *Scheduler

	touches map[int]touch.Data
	batch   []touch.Data

	width, height int
	visible       bool
	closed        bool
}

// New creates an engine. Call Start to launch the schedulers, then
// drive Tick and RenderFrame from the render loop.
func New(cfg Config) *Engine {
	if cfg.MaxBlurRadius <= 0 {
		cfg.MaxBlurRadius = DefaultMaxBlurRadius
	}
	if cfg.BlurDuration <= 0 {
		cfg.BlurDuration = DefaultBlurDuration
	}
	if cfg.Aberration == (shimmer.AberrationSettings{}) {
		cfg.Aberration = shimmer.DefaultAberrationSettings()
	}
	if cfg.Backend == nil && cfg.DeviceProvider != nil {
		backend, err := gpu.NewBackendFromProvider(cfg.DeviceProvider)
		if err != nil {
			shimmer.Logger().Warn("engine: host device unusable, using CPU pipeline", "error", err)
		} else {
			cfg.Backend = backend
		}
	}

	e := &Engine{
		cfg:      cfg,
		comp:     compositor.NewWithBackend(cfg.Backend),
		tracker:  touch.NewTracker(cfg.Aberration),
		parallax: anim.NewSmoothingFloatAnimator(0.5),
		blurAnim: anim.NewTickingFloatAnimator(cfg.BlurDuration),
		blurPass: gpu.NewBlurPass(cfg.Backend),
		memory:   gpu.NewMemoryManager(cfg.MemoryBudgetMB),
		apply:    task.NewSerial(),
		pool:     task.NewPool(0),
		touches:  make(map[int]touch.Data),
		visible:  true,
	}
	e.pyramid = blur.NewPyramidGenerator(e.blurPass)
	e.taps = touch.NewTapDetector(nil)

	cycleInterval := cfg.CycleInterval
	if cycleInterval <= 0 {
		cycleInterval = DefaultCycleInterval
	}
	e.cycle = NewScheduler("image-cycle", cycleInterval, func() {
		e.emit(CommandNextImage)
	})
	e.cycle.SetEnabled(cfg.CycleInterval > 0)

	e.duotoneRot = NewScheduler("duotone-rotation", max(cfg.DuotoneInterval, time.Minute), func() {
		e.emit(CommandCycleDuotone)
	})
	e.duotoneRot.SetEnabled(cfg.DuotoneInterval > 0)

	return e
}

// Start launches the schedulers and reports the renderer initialized.
func (e *Engine) Start() {
	e.cycle.Start()
	e.duotoneRot.Start()
	shimmer.Logger().Info("engine: renderer initialized",
		"maxBlurRadius", e.cfg.MaxBlurRadius, "gpu", e.cfg.Backend != nil)
}

// SubmitImage generates a blur pyramid for src on the background pool
// and applies the finished set on the next Tick. src must not be
// modified after the call. Generation failures keep the current image;
// a partial pyramid still applies (the image renders with fewer blur
// levels).
func (e *Engine) SubmitImage(ctx context.Context, id string, src *shimmer.Pixmap) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	maxRadius := e.cfg.MaxBlurRadius
	e.mu.Unlock()

	e.pool.Submit(func() {
		set, err := e.pyramid.GenerateSet(ctx, id, src, maxRadius)
		if err != nil {
			if set == nil {
				shimmer.Logger().Warn("engine: image rejected", "id", id, "error", err)
				return
			}
			shimmer.Logger().Warn("engine: partial blur pyramid", "id", id,
				"levels", len(set.Blurred), "error", err)
		}
		e.apply.Submit(func() { e.applySet(set) })
	})
}

// applySet swaps in a freshly generated image set. Render context only.
func (e *Engine) applySet(set *shimmer.ImageSet) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	tileSize := e.cfg.TileSize
	backend := e.cfg.Backend
	e.mu.Unlock()

	ps, err := compositor.NewPictureSet(backend, e.memory, set, tileSize)
	if err != nil {
		shimmer.Logger().Warn("engine: image set upload failed", "id", set.ID, "error", err)
		return
	}

	e.mu.Lock()
	old := e.comp.SetPicture(ps)
	e.state = e.state.WithSet(set)
	onReady := e.cfg.OnReady
	e.mu.Unlock()

	if old != nil {
		// Old textures outlived the swap; release them off the render
		// context now that nothing references them.
		e.pool.Submit(old.Release)
	}
	if onReady != nil {
		onReady()
	}
}

// HandleTouch feeds one raw touch event into gesture classification and
// the ripple tracker.
func (e *Engine) HandleTouch(ev touch.Data) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	switch ev.Action {
	case touch.ActionDown, touch.ActionMove:
		e.touches[ev.ID] = ev
	case touch.ActionUp:
		delete(e.touches, ev.ID)
	}
	e.batch = e.batch[:0]
	for _, t := range e.touches {
		e.batch = append(e.batch, t)
	}
	e.tracker.SetActiveTouches(e.batch)

	gesture := e.taps.Handle(ev)
	e.mu.Unlock()

	if ev.Action == touch.ActionDown {
		e.cycle.PauseTemporarily(interactionPause)
	}
	if cmd := commandForGesture(gesture); cmd != CommandNone {
		if cmd == CommandToggleBlur {
			e.ToggleBlur()
		}
		e.emit(cmd)
	}
}

// CancelTouches resets all touch state, for a system-interrupted touch
// sequence. No partial gesture survives the cancel.
func (e *Engine) CancelTouches() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.touches)
	e.tracker.SetActiveTouches(nil)
	e.taps.Cancel()
}

// ToggleBlur animates between the unblurred and fully blurred states.
func (e *Engine) ToggleBlur() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blurOn = !e.blurOn
	target := 0.0
	if e.blurOn {
		target = 1.0
	}
	e.blurAnim.Start(e.state.BlurPercent, target, nil)
}

// SetVisible pauses the schedulers and drops touch state while the
// wallpaper is hidden.
func (e *Engine) SetVisible(visible bool) {
	e.mu.Lock()
	e.visible = visible
	clear(e.touches)
	e.tracker.SetActiveTouches(nil)
	e.taps.Cancel()
	cycleOn := visible && e.cfg.CycleInterval > 0
	duoOn := visible && e.cfg.DuotoneInterval > 0
	e.mu.Unlock()

	e.cycle.SetEnabled(cycleOn)
	e.duotoneRot.SetEnabled(duoOn)
}

// Resize records the new surface dimensions.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	e.width = width
	e.height = height
	e.mu.Unlock()
}

// SetOffset feeds the normalized parallax scroll position in [0, 1];
// the rendered offset eases toward it over the following ticks.
func (e *Engine) SetOffset(x float64) {
	e.mu.Lock()
	e.parallax.SetTarget(x)
	e.mu.Unlock()
}

// SetDuotone replaces the duotone settings.
func (e *Engine) SetDuotone(d shimmer.Duotone) {
	e.mu.Lock()
	e.state.Duotone = d
	e.mu.Unlock()
}

// SetDim replaces the dim amount.
func (e *Engine) SetDim(amount float64) {
	e.mu.Lock()
	e.state.DimAmount = amount
	e.mu.Unlock()
}

// SetGrain replaces the grain settings.
func (e *Engine) SetGrain(g shimmer.GrainSettings) {
	e.mu.Lock()
	e.state.Grain = g
	e.mu.Unlock()
}

// SetAberration replaces the touch aberration settings; disabling it
// clears active ripples.
func (e *Engine) SetAberration(a shimmer.AberrationSettings) {
	e.mu.Lock()
	e.tracker.SetSettings(a)
	e.mu.Unlock()
}

// SetBlurPercent snaps the blur level without animating, for host-driven
// policies like blur-on-lock.
func (e *Engine) SetBlurPercent(p float64) {
	e.mu.Lock()
	e.blurAnim.Reset()
	e.blurAnim.SetValue(p)
	e.state = e.state.WithBlurPercent(p)
	e.blurOn = p >= 0.5
	e.mu.Unlock()
}

// Tick advances one frame: pending image applications run first, then
// the animators and the ripple tracker. Render context only.
func (e *Engine) Tick() {
	e.apply.Drain()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.blurAnim.Tick()
	e.parallax.Tick()
	e.tracker.Tick()
	e.state = e.state.WithBlurPercent(e.blurAnim.Value())
	e.state.ParallaxOffset = e.parallax.Value()
}

// RenderFrame composites the current state into target. A hidden
// surface or an engine with no image yet draws nothing. Render context
// only.
func (e *Engine) RenderFrame(target *shimmer.Pixmap) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if !e.visible {
		e.mu.Unlock()
		return nil
	}
	w := e.width
	h := e.height
	if w <= 0 || h <= 0 {
		w = target.Width()
		h = target.Height()
	}
	params := compositor.FrameParams{
		BlurPercent:      e.state.BlurPercent,
		ImageAlpha:       1,
		DimAmount:        e.state.DimAmount,
		Duotone:          e.state.Duotone,
		Grain:            e.state.Grain,
		TouchPoints:      e.tracker.Points(),
		TouchIntensities: e.tracker.Intensities(),
		ScreenWidth:      w,
		ScreenHeight:     h,
	}
	e.mu.Unlock()

	return e.comp.DrawFrame(target, params)
}

// State returns a snapshot of the current render state.
func (e *Engine) State() shimmer.RenderState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// MemoryStats reports texture memory usage.
func (e *Engine) MemoryStats() gpu.MemoryStats {
	return e.memory.Stats()
}

// Close stops the schedulers and the background pool and releases every
// GPU resource. The engine cannot be reused.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	e.cycle.Stop()
	e.duotoneRot.Stop()
	e.pool.Close()
	e.apply.Drain()

	e.mu.Lock()
	if old := e.comp.SetPicture(nil); old != nil {
		old.Release()
	}
	e.mu.Unlock()
	e.blurPass.Close()
}

func (e *Engine) emit(cmd Command) {
	e.mu.Lock()
	fn := e.cfg.OnCommand
	e.mu.Unlock()
	if fn != nil {
		fn(cmd)
	}
}
