package gesture

// PointerKind tells mouse-like pointers apart from touch contacts. Hosts
// that deliver touches through the pointer stream as well must tag them,
// so the drag path can ignore them.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerPen
	PointerTouch
)

func (k PointerKind) String() string {
	switch k {
	case PointerMouse:
		return "mouse"
	case PointerPen:
		return "pen"
	case PointerTouch:
		return "touch"
	}
	return "unknown"
}

// PointerEvent is a press, move or release in screen coordinates.
type PointerEvent struct {
	ID   int
	Kind PointerKind
	X, Y float64
}

// Contact is one active touch point. IDs are stable for the lifetime of
// the touch.
type Contact struct {
	ID   int
	X, Y float64
}

// WheelEvent is a scroll step. Trackpad pinches arrive as wheel events
// with Ctrl (or Meta on some hosts) held.
type WheelEvent struct {
	DeltaY float64
	Ctrl   bool
	Meta   bool
}

// Key is a keyboard nudge.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyGrow
	KeyShrink
	KeyRotateCW
	KeyRotateCCW
	KeyCenter
)
