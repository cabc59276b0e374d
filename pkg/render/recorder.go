package render

import (
	"image/color"

	"github.com/gogpu/gg"
)

// Segment is one straight stroke in target coordinates.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// StrokeRecord is a single Stroke call as seen by a Recorder.
type StrokeRecord struct {
	Segments []Segment
	Color    color.NRGBA // stroke color with global alpha applied
	Width    float64     // line width in user units
	Matrix   gg.Matrix   // transform active at Stroke time
}

type recorderState struct {
	matrix gg.Matrix
	style  style
}

// Recorder is a Surface that keeps the stroked geometry instead of
// rasterising it. Points are transformed when they are added, as a canvas
// does, so Segments are already in target coordinates.
type Recorder struct {
	state   recorderState
	stack   []recorderState
	path    []Segment
	cur     gg.Point
	haveCur bool

	Strokes []StrokeRecord
}

// NewRecorder returns an empty recorder with an identity transform.
func NewRecorder() *Recorder {
	return &Recorder{state: recorderState{matrix: gg.Identity(), style: defaultStyle()}}
}

// Depth is the number of unmatched Save calls.
func (r *Recorder) Depth() int { return len(r.stack) }

// Matrix is the current transform.
func (r *Recorder) Matrix() gg.Matrix { return r.state.matrix }

// Segments flattens every recorded stroke.
func (r *Recorder) Segments() []Segment {
	var out []Segment
	for _, s := range r.Strokes {
		out = append(out, s.Segments...)
	}
	return out
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) {
	r.state.matrix = r.state.matrix.Multiply(gg.Translate(x, y))
}

func (r *Recorder) Rotate(radians float64) {
	r.state.matrix = r.state.matrix.Multiply(gg.Rotate(radians))
}

// Scale is not part of Surface; the render loop uses it for pixel density.
func (r *Recorder) Scale(x, y float64) {
	r.state.matrix = r.state.matrix.Multiply(gg.Scale(x, y))
}

func (r *Recorder) SetStrokeColor(c color.NRGBA) { r.state.style.color = c }
func (r *Recorder) SetLineWidth(w float64)       { r.state.style.width = w }
func (r *Recorder) SetGlobalAlpha(a float64)     { r.state.style.alpha = a }

func (r *Recorder) BeginPath() {
	r.path = nil
	r.haveCur = false
}

func (r *Recorder) MoveTo(x, y float64) {
	r.cur = r.state.matrix.TransformPoint(gg.Pt(x, y))
	r.haveCur = true
}

func (r *Recorder) LineTo(x, y float64) {
	p := r.state.matrix.TransformPoint(gg.Pt(x, y))
	if !r.haveCur {
		r.cur = p
		r.haveCur = true
		return
	}
	r.path = append(r.path, Segment{X0: r.cur.X, Y0: r.cur.Y, X1: p.X, Y1: p.Y})
	r.cur = p
}

func (r *Recorder) Stroke() {
	segs := make([]Segment, len(r.path))
	copy(segs, r.path)
	r.Strokes = append(r.Strokes, StrokeRecord{
		Segments: segs,
		Color:    r.state.style.withAlpha(),
		Width:    r.state.style.width,
		Matrix:   r.state.matrix,
	})
}
