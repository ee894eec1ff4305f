// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import "github.com/abdusco/shimmer-sub001/touch"

// Command is a discrete action emitted by the engine for the host to
// act on: gesture results and scheduler firings both arrive as commands.
type Command int

const (
	// CommandNone is the zero value; never emitted.
	CommandNone Command = iota

	// CommandNextImage requests advancing to the next wallpaper image.
	CommandNextImage

	// CommandToggleBlur toggles between the unblurred and fully blurred
	// states.
	CommandToggleBlur

	// CommandCycleDuotone advances to the next duotone preset.
	CommandCycleDuotone
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandNextImage:
		return "NextImage"
	case CommandToggleBlur:
		return "ToggleBlur"
	case CommandCycleDuotone:
		return "CycleDuotone"
	default:
		return "Unknown"
	}
}

// commandForGesture maps a classified tap gesture onto its command.
func commandForGesture(g touch.Gesture) Command {
	switch g {
	case touch.GestureTripleTap:
		return CommandToggleBlur
	case touch.GestureTwoFingerDoubleTap:
		return CommandNextImage
	case touch.GestureThreeFingerDoubleTap:
		return CommandCycleDuotone
	default:
		return CommandNone
	}
}
