// Package render draws the overlay grid onto any canvas-like target.
//
// The same Draw call feeds the live window and the offscreen PNG export.
// Because the geometry depends only on (width, height, grid state), both
// targets receive identical strokes for identical inputs.
package render

import "image/color"

// Surface is the subset of an immediate-mode 2D canvas that Draw needs.
// Save and Restore cover the transform, stroke color, line width and
// global alpha, like an HTML canvas context.
type Surface interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)

	SetStrokeColor(c color.NRGBA)
	SetLineWidth(w float64)
	SetGlobalAlpha(a float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
}

// style is the paint state that Save/Restore carry besides the transform.
type style struct {
	color color.NRGBA
	width float64
	alpha float64
}

func defaultStyle() style {
	return style{color: color.NRGBA{A: 0xff}, width: 1, alpha: 1}
}

// withAlpha folds the global alpha into the stroke color.
func (s style) withAlpha() color.NRGBA {
	c := s.color
	a := float64(c.A) * s.alpha
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	c.A = uint8(a + 0.5)
	return c
}
