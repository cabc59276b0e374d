// Package gesture turns pointer, touch, wheel and key input into grid
// transform changes.
//
// Drag and pinch work from an anchor taken when the gesture starts: every
// move assigns anchor + delta instead of adding per-event increments, so
// long gestures do not drift. The wheel is the one incremental control.
package gesture

import (
	"log/slog"
	"math"

	"github.com/OpenTraceLab/OpenTraceGrid/internal/logging"
)

// WheelScale converts a wheel delta into a cell size change.
const WheelScale = 0.5

// Keyboard step sizes.
const (
	NudgeStep       = 1.0
	NudgeCoarseStep = 10.0
	GrowStep        = 5.0
	RotateStep      = 1.0
	RotateCoarse    = 15.0
)

// Config is the part of the grid configuration gestures drive.
type Config interface {
	PositionX() float64
	PositionY() float64
	SetPosition(x, y float64)
	CellSize() float64
	SetCellSize(v float64)
	Rotation() float64
	SetRotation(v float64)
	CenterGrid()
}

type dragAnchor struct {
	pointerID      int
	startX, startY float64
	posX, posY     float64
}

// pinchAnchor is the optional two-slot touch session.
type pinchAnchor struct {
	idA, idB int
	distance float64
	angle    float64 // radians
	cellSize float64
	rotation float64 // degrees
}

// Interpreter owns the transient gesture sessions. Like the grid config it
// is driven from a single event loop.
type Interpreter struct {
	cfg   Config
	drag  *dragAnchor
	pinch *pinchAnchor
	log   *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger routes gesture diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.log = logging.OrNop(l) }
}

// New returns an interpreter driving cfg.
func New(cfg Config, opts ...Option) *Interpreter {
	in := &Interpreter{cfg: cfg, log: logging.Nop()}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Dragging reports whether a drag session is active.
func (in *Interpreter) Dragging() bool { return in.drag != nil }

// Pinching reports whether a two-contact session is anchored.
func (in *Interpreter) Pinching() bool { return in.pinch != nil }

// Cancel drops any active session without touching the configuration.
func (in *Interpreter) Cancel() {
	in.drag = nil
	in.pinch = nil
}

// PointerDown starts a drag for a non-touch pointer. It returns true when
// the host should capture the pointer.
func (in *Interpreter) PointerDown(e PointerEvent) bool {
	if e.Kind == PointerTouch || in.drag != nil {
		return false
	}
	in.drag = &dragAnchor{
		pointerID: e.ID,
		startX:    e.X,
		startY:    e.Y,
		posX:      in.cfg.PositionX(),
		posY:      in.cfg.PositionY(),
	}
	in.log.Debug("drag start", "pointer", e.ID, "x", e.X, "y", e.Y)
	return true
}

// PointerMove updates the grid position from the drag anchor. It reports
// whether the configuration changed.
func (in *Interpreter) PointerMove(e PointerEvent) bool {
	d := in.drag
	if d == nil || e.Kind == PointerTouch || e.ID != d.pointerID {
		return false
	}
	in.cfg.SetPosition(d.posX+(e.X-d.startX), d.posY+(e.Y-d.startY))
	return true
}

// PointerUp ends the drag started by the same pointer. Without an active
// drag it does nothing.
func (in *Interpreter) PointerUp(e PointerEvent) {
	if in.drag == nil || e.Kind == PointerTouch || e.ID != in.drag.pointerID {
		return
	}
	in.drag = nil
	in.log.Debug("drag end", "pointer", e.ID)
}

// TouchStart is called with every active contact after one was added.
// Reaching exactly two contacts always takes a fresh anchor.
func (in *Interpreter) TouchStart(contacts []Contact) {
	in.touchCountChanged(contacts)
}

// TouchEnd is called with the contacts still down after one was lifted or
// cancelled.
func (in *Interpreter) TouchEnd(contacts []Contact) {
	in.touchCountChanged(contacts)
}

func (in *Interpreter) touchCountChanged(contacts []Contact) {
	switch {
	case len(contacts) == 2:
		in.anchorPinch(contacts[0], contacts[1])
	case len(contacts) < 2:
		if in.pinch != nil {
			in.log.Debug("pinch end")
		}
		in.pinch = nil
	}
}

func (in *Interpreter) anchorPinch(a, b Contact) {
	in.pinch = &pinchAnchor{
		idA:      a.ID,
		idB:      b.ID,
		distance: math.Hypot(b.X-a.X, b.Y-a.Y),
		angle:    math.Atan2(b.Y-a.Y, b.X-a.X),
		cellSize: in.cfg.CellSize(),
		rotation: in.cfg.Rotation(),
	}
	in.log.Debug("pinch start", "a", a.ID, "b", b.ID, "distance", in.pinch.distance)
}

// TouchMove applies scale and rotation relative to the pinch anchor. If
// either anchored contact is missing from contacts the event is ignored
// as a whole.
//
// The rotation delta is the change in the contacts' angle folded into
// (-180°, 180°], not the raw difference of the two atan2 values, so a
// small twist across the ±180° seam stays a small twist. A zero anchor
// distance has no scale reference and no angle, so nothing changes; a
// zero current distance still scales but leaves the rotation alone.
//
// It reports whether any setter ran.
func (in *Interpreter) TouchMove(contacts []Contact) bool {
	p := in.pinch
	if p == nil {
		return false
	}
	a, okA := findContact(contacts, p.idA)
	b, okB := findContact(contacts, p.idB)
	if !okA || !okB {
		in.log.Debug("pinch contact lost, move ignored")
		return false
	}
	if p.distance <= 0 {
		return false
	}

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	in.cfg.SetCellSize(p.cellSize * dist / p.distance)
	if dist > 0 {
		delta := normalizeRadians(math.Atan2(b.Y-a.Y, b.X-a.X) - p.angle)
		in.cfg.SetRotation(p.rotation + delta*180/math.Pi)
	}
	return true
}

// Wheel handles a scroll step. Only modified steps (trackpad pinch) change
// the grid; it returns true when the host should suppress its default
// scrolling.
func (in *Interpreter) Wheel(e WheelEvent) bool {
	if !e.Ctrl && !e.Meta {
		return false
	}
	in.cfg.SetCellSize(in.cfg.CellSize() - e.DeltaY*WheelScale)
	return true
}

// KeyPress applies a keyboard nudge. coarse selects the larger step.
func (in *Interpreter) KeyPress(k Key, coarse bool) bool {
	step := NudgeStep
	rot := RotateStep
	if coarse {
		step = NudgeCoarseStep
		rot = RotateCoarse
	}
	x, y := in.cfg.PositionX(), in.cfg.PositionY()
	switch k {
	case KeyLeft:
		in.cfg.SetPosition(x-step, y)
	case KeyRight:
		in.cfg.SetPosition(x+step, y)
	case KeyUp:
		in.cfg.SetPosition(x, y-step)
	case KeyDown:
		in.cfg.SetPosition(x, y+step)
	case KeyGrow:
		in.cfg.SetCellSize(in.cfg.CellSize() + GrowStep)
	case KeyShrink:
		in.cfg.SetCellSize(in.cfg.CellSize() - GrowStep)
	case KeyRotateCW:
		in.cfg.SetRotation(in.cfg.Rotation() + rot)
	case KeyRotateCCW:
		in.cfg.SetRotation(in.cfg.Rotation() - rot)
	case KeyCenter:
		in.cfg.CenterGrid()
	default:
		return false
	}
	return true
}

func findContact(contacts []Contact, id int) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// normalizeRadians folds an angle difference into (-pi, pi] so crossing the
// atan2 seam does not flip the grid by a full turn.
func normalizeRadians(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
