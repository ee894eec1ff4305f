// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package engine orchestrates the live wallpaper render loop.
//
// An Engine owns the current render state, the touch tracker, and the
// per-frame animators, and drives the compositor once per frame from the
// render context. Image loading and blur pyramid generation run on a
// background pool; finished image sets cross back to the render context
// through a serial apply queue, the only point where textures are
// created or swapped.
//
// Two schedulers advance the wallpaper over time: one cycles to the
// next image, one rotates the duotone preset. Both run cooperative
// loops that re-check roughly every second, so interval changes and
// temporary pauses take effect promptly.
package engine
