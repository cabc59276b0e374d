package render

import (
	"image/color"

	"github.com/gogpu/gg"
)

// GGSurface adapts a gg drawing context to Surface for offscreen output.
// gg keeps only the transform on its own Push/Pop stack, so the stroke
// style is tracked here and applied at Stroke time only.
type GGSurface struct {
	dc    *gg.Context
	style style
	stack []style
	err   error
}

// NewGGSurface wraps dc.
func NewGGSurface(dc *gg.Context) *GGSurface {
	return &GGSurface{dc: dc, style: defaultStyle()}
}

// Context returns the wrapped drawing context.
func (s *GGSurface) Context() *gg.Context { return s.dc }

// Err returns the first error reported by the rasteriser, if any.
func (s *GGSurface) Err() error { return s.err }

func (s *GGSurface) Save() {
	s.dc.Push()
	s.stack = append(s.stack, s.style)
}

func (s *GGSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.dc.Pop()
	s.style = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *GGSurface) Translate(x, y float64) { s.dc.Translate(x, y) }
func (s *GGSurface) Rotate(radians float64) { s.dc.Rotate(radians) }

// Scale is used for the export pixel density.
func (s *GGSurface) Scale(x, y float64) { s.dc.Scale(x, y) }

func (s *GGSurface) SetStrokeColor(c color.NRGBA) { s.style.color = c }
func (s *GGSurface) SetLineWidth(w float64)       { s.style.width = w }
func (s *GGSurface) SetGlobalAlpha(a float64)     { s.style.alpha = a }

func (s *GGSurface) BeginPath()          { s.dc.ClearPath() }
func (s *GGSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *GGSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }

// Stroke draws the path with the tracked style. gg's Push/Pop do not cover
// the paint, so the context's brush and line width are put back afterwards.
func (s *GGSurface) Stroke() {
	brush := s.dc.StrokeBrush()
	width := s.dc.GetStroke().Width
	defer func() {
		s.dc.SetStrokeBrush(brush)
		s.dc.SetLineWidth(width)
	}()

	c := s.style.withAlpha()
	s.dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
	s.dc.SetLineWidth(s.style.width)
	if err := s.dc.Stroke(); err != nil && s.err == nil {
		s.err = err
		gg.Logger().Warn("render: grid stroke failed", "err", err)
	}
}
