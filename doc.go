// Package shimmer is a real-time rendering and animation engine for
// animated photo wallpapers.
//
// # Overview
//
// shimmer displays a rotating set of photos with a progressive GPU blur,
// duotone color grading, film grain, parallax scrolling, and touch-reactive
// chromatic aberration. The engine is split into small packages:
//
//   - anim: frame-driven (tick-based) value animators
//   - touch: multi-finger tap classification and touch-point tracking
//   - blur: progressive blur pyramid generation with pluggable backends
//   - gpu: wgpu-backed device, textures, and the blur pass with CPU fallback
//   - compositor: tiled keyframe textures and the crossfade frame renderer
//   - engine: render-loop orchestration, image cycling, and command dispatch
//
// The root package holds the value types shared by all of them: Pixmap,
// RGBA, ImageSet, RenderState, and the effect settings structs.
//
// # Execution model
//
// All animation is pull-based: nothing advances on a timer thread. The host
// calls Engine.Tick once per frame on its render context, and every animator
// computes its value from elapsed time at that moment. This keeps animation
// frame-exact and drift-free under dropped frames.
//
// Image decoding and blur pyramid generation run on a background worker
// pool and hand completed, immutable ImageSets back to the render context
// through an apply queue. GPU uploads happen only on the render context.
//
// # Quick start
//
//	eng := engine.New(engine.Config{CycleInterval: 15 * time.Minute})
//	defer eng.Close()
//	eng.Start()
//	eng.Resize(1080, 2400)
//
//	eng.SubmitImage(ctx, "photo-1", pixmap)
//
//	target := shimmer.NewPixmap(1080, 2400)
//	for running {
//	    eng.Tick()
//	    if err := eng.RenderFrame(target); err != nil {
//	        return err
//	    }
//	}
package shimmer
