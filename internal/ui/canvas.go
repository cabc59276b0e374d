package ui

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/gesture"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/media"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/renderloop"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/snapshot"
)

var canvasBg = color.NRGBA{R: 16, G: 16, B: 20, A: 255}

// scrollRange accepts any wheel distance; the interpreter decides what to
// consume.
var scrollRange = pointer.ScrollRange{Min: -1 << 20, Max: 1 << 20}

var keyBindings = map[key.Name]gesture.Key{
	key.NameLeftArrow:  gesture.KeyLeft,
	key.NameRightArrow: gesture.KeyRight,
	key.NameUpArrow:    gesture.KeyUp,
	key.NameDownArrow:  gesture.KeyDown,
	"+":                gesture.KeyGrow,
	"=":                gesture.KeyGrow,
	"-":                gesture.KeyShrink,
	"]":                gesture.KeyRotateCW,
	"[":                gesture.KeyRotateCCW,
	"C":                gesture.KeyCenter,
}

// Canvas shows the media with the grid on top and turns window input into
// gesture calls. Positions are handed to the interpreter in logical units
// (dp) so the grid geometry does not depend on the screen density.
type Canvas struct {
	cfg    *grid.Config
	interp *gesture.Interpreter
	loop   *renderloop.Loop
	surf   *gioSurface
	sched  frameScheduler
	resize resizeWatcher
	logf   func(format string, args ...any)

	media  *media.Media
	imgOp  paint.ImageOp
	hasImg bool

	contacts []gesture.Contact
	density  float64
	width    float64 // logical
	height   float64

	hoverX, hoverY float64
	hovering       bool
}

// NewCanvas wires a canvas to cfg. wake is called whenever the grid needs
// a redraw and should invalidate the window.
func NewCanvas(cfg *grid.Config, logger *slog.Logger, wake func(), logf func(string, ...any)) *Canvas {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	c := &Canvas{
		cfg:     cfg,
		interp:  gesture.New(cfg, gesture.WithLogger(logger)),
		surf:    newGioSurface(),
		logf:    logf,
		media:   media.None,
		density: 1,
	}
	c.loop = renderloop.New(cfg, c.surf, &c.sched, &c.resize,
		renderloop.WithLogger(logger),
		renderloop.WithWake(wake),
	)
	c.loop.Start()
	return c
}

// Close stops the render loop.
func (c *Canvas) Close() {
	c.loop.Stop()
}

// SetMedia replaces the picture under the grid.
func (c *Canvas) SetMedia(m *media.Media) {
	if m == nil {
		m = media.None
	}
	c.media = m
	c.hasImg = m.Drawable()
	if c.hasImg {
		c.imgOp = paint.NewImageOp(m.Image)
		c.imgOp.Filter = paint.FilterLinear
	}
	c.logf("[CANVAS] Media set: %s", m)
}

// Media returns the current media.
func (c *Canvas) Media() *media.Media { return c.media }

// LogicalSize is the displayed canvas size in dp.
func (c *Canvas) LogicalSize() (float64, float64) { return c.width, c.height }

// Density is the current pixels per dp.
func (c *Canvas) Density() float64 { return c.density }

// Stats exposes the render loop counters.
func (c *Canvas) Stats() renderloop.Stats { return c.loop.Stats() }

// HoverText describes the grid cell under the mouse, if any.
func (c *Canvas) HoverText() string {
	if !c.hovering {
		return ""
	}
	col, row, ok := render.CellAt(c.width, c.height, c.cfg.State(), c.hoverX, c.hoverY)
	if !ok {
		return fmt.Sprintf("(%.0f, %.0f)", c.hoverX, c.hoverY)
	}
	return fmt.Sprintf("(%.0f, %.0f) cell %d,%d", c.hoverX, c.hoverY, col, row)
}

// Layout draws the canvas filling the constraints.
func (c *Canvas) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	density := float64(gtx.Metric.PxPerDp)
	if density <= 0 {
		density = 1
	}
	c.density = density
	c.width = float64(size.X) / density
	c.height = float64(size.Y) / density
	c.resize.update(c.width, c.height, density)

	c.handleKeys(gtx)
	c.handlePointer(gtx)

	// Redraws the grid ops only when the loop is dirty.
	c.sched.run()

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	paint.Fill(gtx.Ops, canvasBg)
	c.layoutMedia(gtx, size)
	c.surf.Add(gtx.Ops)
	event.Op(gtx.Ops, c)
	area.Pop()

	return layout.Dimensions{Size: size}
}

func (c *Canvas) layoutMedia(gtx layout.Context, size image.Point) {
	if !c.hasImg {
		return
	}
	m := c.media
	x, y, w, h := snapshot.ContainF(float64(m.Width), float64(m.Height), float64(size.X), float64(size.Y))
	if w <= 0 || h <= 0 {
		return
	}
	tr := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(float32(w/float64(m.Width)), float32(h/float64(m.Height)))).
		Offset(f32.Pt(float32(x), float32(y)))
	stack := op.Affine(tr).Push(gtx.Ops)
	c.imgOp.Add(gtx.Ops)
	imgClip := clip.Rect{Max: image.Pt(m.Width, m.Height)}.Push(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	imgClip.Pop()
	stack.Pop()
}

func (c *Canvas) handleKeys(gtx layout.Context) {
	filters := make([]event.Filter, 0, len(keyBindings))
	for name := range keyBindings {
		filters = append(filters, key.Filter{Focus: c, Name: name, Optional: key.ModShift})
	}
	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		if k, ok := keyBindings[ke.Name]; ok {
			c.interp.KeyPress(k, ke.Modifiers.Contain(key.ModShift))
		}
	}
}

func (c *Canvas) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  c,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Move | pointer.Scroll | pointer.Leave,
			ScrollY: scrollRange,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		c.pointerEvent(gtx, pe)
	}
}

func (c *Canvas) pointerEvent(gtx layout.Context, e pointer.Event) {
	x := float64(e.Position.X) / c.density
	y := float64(e.Position.Y) / c.density
	id := int(e.PointerID)
	touch := e.Source == pointer.Touch
	pe := gesture.PointerEvent{ID: id, Kind: gesture.PointerMouse, X: x, Y: y}
	if touch {
		pe.Kind = gesture.PointerTouch
	}

	switch e.Kind {
	case pointer.Press:
		gtx.Execute(key.FocusCmd{Tag: c})
		if touch {
			c.contacts = append(c.contacts, gesture.Contact{ID: id, X: x, Y: y})
			c.interp.TouchStart(c.contacts)
			gtx.Execute(pointer.GrabCmd{Tag: c, ID: e.PointerID})
			return
		}
		if e.Buttons.Contain(pointer.ButtonPrimary) && c.interp.PointerDown(pe) {
			gtx.Execute(pointer.GrabCmd{Tag: c, ID: e.PointerID})
		}
	case pointer.Drag:
		if touch {
			c.moveContact(id, x, y)
			c.interp.TouchMove(c.contacts)
			return
		}
		c.interp.PointerMove(pe)
		c.setHover(x, y)
	case pointer.Move:
		c.setHover(x, y)
	case pointer.Leave:
		c.hovering = false
	case pointer.Release:
		if touch {
			c.dropContact(id)
			c.interp.TouchEnd(c.contacts)
			return
		}
		c.interp.PointerUp(pe)
	case pointer.Cancel:
		// The grab was lost; end every session without moving the grid.
		c.contacts = c.contacts[:0]
		c.interp.Cancel()
	case pointer.Scroll:
		c.interp.Wheel(wheelEvent(e, c.density))
	}
}

// wheelEvent converts a scroll from device pixels to logical units, like
// pointer positions, so a wheel notch scales the grid the same on any
// display density.
func wheelEvent(e pointer.Event, density float64) gesture.WheelEvent {
	if density <= 0 {
		density = 1
	}
	return gesture.WheelEvent{
		DeltaY: float64(e.Scroll.Y) / density,
		Ctrl:   e.Modifiers.Contain(key.ModCtrl),
		Meta:   e.Modifiers.Contain(key.ModCommand),
	}
}

func (c *Canvas) setHover(x, y float64) {
	c.hoverX, c.hoverY, c.hovering = x, y, true
}

func (c *Canvas) moveContact(id int, x, y float64) {
	for i := range c.contacts {
		if c.contacts[i].ID == id {
			c.contacts[i].X, c.contacts[i].Y = x, y
			return
		}
	}
}

func (c *Canvas) dropContact(id int) {
	for i := range c.contacts {
		if c.contacts[i].ID == id {
			c.contacts = append(c.contacts[:i], c.contacts[i+1:]...)
			return
		}
	}
}
