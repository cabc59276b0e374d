package ui

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/gogpu/gg"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
)

type surfaceState struct {
	matrix gg.Matrix
	color  color.NRGBA
	width  float64
	alpha  float64
}

func defaultSurfaceState(base gg.Matrix) surfaceState {
	return surfaceState{matrix: base, color: color.NRGBA{A: 0xff}, width: 1, alpha: 1}
}

type pathPoint struct {
	pt   f32.Point
	move bool
}

// gioSurface records grid strokes into its own op list. The render loop
// fills it only when the grid changed; every window frame replays the
// cached call, so clean frames cost one CallOp.
type gioSurface struct {
	ops       op.Ops
	macro     op.MacroOp
	recording bool
	call      op.CallOp

	base    gg.Matrix
	density float64
	backing [2]int

	state surfaceState
	stack []surfaceState
	path  []pathPoint

	strokes int // Stroke calls since the last Clear
}

var _ render.Surface = (*gioSurface)(nil)

func newGioSurface() *gioSurface {
	s := &gioSurface{base: gg.Identity(), density: 1}
	s.state = defaultSurfaceState(s.base)
	return s
}

// Resize sets the pixel density used as the base transform.
func (s *gioSurface) Resize(backingW, backingH int, density float64) {
	s.backing = [2]int{backingW, backingH}
	s.density = density
	s.base = gg.Scale(density, density)
}

// Clear drops the previous frame and starts recording a new one.
func (s *gioSurface) Clear() {
	if s.recording {
		s.macro.Stop()
	}
	s.ops.Reset()
	s.macro = op.Record(&s.ops)
	s.recording = true
	s.call = op.CallOp{}
	s.state = defaultSurfaceState(s.base)
	s.stack = s.stack[:0]
	s.path = s.path[:0]
	s.strokes = 0
}

// Present finishes the frame started by Clear.
func (s *gioSurface) Present() {
	if !s.recording {
		return
	}
	s.call = s.macro.Stop()
	s.recording = false
}

// Add replays the last presented frame into ops.
func (s *gioSurface) Add(ops *op.Ops) {
	s.call.Add(ops)
}

func (s *gioSurface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *gioSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *gioSurface) Translate(x, y float64) {
	s.state.matrix = s.state.matrix.Multiply(gg.Translate(x, y))
}

func (s *gioSurface) Rotate(radians float64) {
	s.state.matrix = s.state.matrix.Multiply(gg.Rotate(radians))
}

func (s *gioSurface) SetStrokeColor(c color.NRGBA) { s.state.color = c }
func (s *gioSurface) SetLineWidth(w float64)       { s.state.width = w }
func (s *gioSurface) SetGlobalAlpha(a float64)     { s.state.alpha = a }

func (s *gioSurface) BeginPath() { s.path = s.path[:0] }

func (s *gioSurface) MoveTo(x, y float64) { s.addPoint(x, y, true) }
func (s *gioSurface) LineTo(x, y float64) { s.addPoint(x, y, len(s.path) == 0) }

// Points are stored in pixels, transformed when added.
func (s *gioSurface) addPoint(x, y float64, move bool) {
	p := s.state.matrix.TransformPoint(gg.Pt(x, y))
	s.path = append(s.path, pathPoint{pt: f32.Pt(float32(p.X), float32(p.Y)), move: move})
}

func (s *gioSurface) Stroke() {
	s.strokes++
	if !s.recording || len(s.path) < 2 {
		return
	}
	var path clip.Path
	path.Begin(&s.ops)
	for _, p := range s.path {
		if p.move {
			path.MoveTo(p.pt)
		} else {
			path.LineTo(p.pt)
		}
	}
	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(s.state.width * matrixScale(s.state.matrix)),
	}.Op()

	c := s.state.color
	c.A = uint8(math.Round(float64(c.A) * clampUnit(s.state.alpha)))
	paint.FillShape(&s.ops, c, stroke)
}

// matrixScale is the uniform scale factor of m, used to turn a line width
// in user units into pixels.
func matrixScale(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
