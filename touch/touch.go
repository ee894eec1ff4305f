package touch

// Action is the kind of a raw touch event.
type Action int

const (
	// ActionDown reports a finger making contact.
	ActionDown Action = iota

	// ActionMove reports a tracked finger changing position.
	ActionMove

	// ActionUp reports a finger leaving the surface.
	ActionUp
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "Down"
	case ActionMove:
		return "Move"
	case ActionUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// Data is one raw touch event. Ephemeral: one per pointer per frame batch.
type Data struct {
	// ID is the stable pointer identifier for the touch sequence.
	ID int

	// X and Y are the pointer position in surface pixels.
	X, Y float64

	// Action is what the pointer did.
	Action Action
}
