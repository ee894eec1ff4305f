// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu provides the wgpu-backed device, texture, and offscreen
// blur resources for the wallpaper engine.
//
// The render-context device is normally supplied by the host through a
// [DeviceHandle]; the engine receives the device, it does not create one.
// Backend can also own a private device for the offscreen blur pass,
// which keeps blur work off the render context entirely.
//
// Texture upload/readback follows the wgpu core API as it matures; where
// the underlying queue operations are not yet available the calls degrade
// to logical resources with full size accounting, and rendering falls
// back to the CPU paths in the blur and compositor packages.
package gpu
