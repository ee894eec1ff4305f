// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor renders blur keyframe sets to the screen.
//
// Each keyframe image is partitioned into a grid of tiles no larger than
// the GPU texture size limit; every tile becomes one texture, and a draw
// issues one textured quad per tile. A continuous blur parameter selects
// two adjacent keyframes and crossfades between them, so any blur amount
// in [0, 1] renders from a handful of precomputed levels.
//
// Duotone, dim, grain, and touch aberration are applied per fragment on
// top of whichever keyframes draw this frame. The reference CPU pipeline
// in this package mirrors the picture shader exactly and is what runs
// when no GPU surface is available.
package compositor
