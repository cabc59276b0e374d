package render

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
)

// Draw strokes the grid described by cfg onto s, treating s as a target of
// width x height. The target is left as it was apart from the strokes.
//
// The grid is centred on the target centre shifted by the position offset,
// rotated about that point, and drawn as EffectiveN+1 lines per axis.
func Draw(s Surface, width, height float64, cfg grid.Reader) {
	st := cfg.State()
	n := st.EffectiveN()
	cell := st.CellSize
	total := st.TotalGridSize()

	s.Save()
	defer s.Restore()

	s.Translate(width/2+st.PositionX, height/2+st.PositionY)
	s.Rotate(st.Rotation * math.Pi / 180)
	s.Translate(-total/2, -total/2)

	s.SetStrokeColor(ParseColor(st.LineColor))
	s.SetLineWidth(st.LineWidth)
	s.SetGlobalAlpha(st.LineOpacity)

	s.BeginPath()
	for i := 0; i <= n; i++ {
		x := float64(i) * cell
		s.MoveTo(x, 0)
		s.LineTo(x, total)
	}
	for i := 0; i <= n; i++ {
		y := float64(i) * cell
		s.MoveTo(0, y)
		s.LineTo(total, y)
	}
	s.Stroke()
}

// GridToTarget returns the matrix Draw applies, mapping grid-local
// coordinates (origin at the grid's top-left corner) to target pixels.
func GridToTarget(width, height float64, st grid.State) gg.Matrix {
	total := st.TotalGridSize()
	m := gg.Translate(width/2+st.PositionX, height/2+st.PositionY)
	m = m.Multiply(gg.Rotate(st.Rotation * math.Pi / 180))
	return m.Multiply(gg.Translate(-total/2, -total/2))
}

// TargetToGrid maps a target pixel back into grid-local coordinates.
func TargetToGrid(width, height float64, st grid.State, x, y float64) (gx, gy float64) {
	p := GridToTarget(width, height, st).Invert().TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// CellAt reports which cell contains the target pixel (x, y). Columns and
// rows count from the grid's own top-left corner, before rotation.
func CellAt(width, height float64, st grid.State, x, y float64) (col, row int, ok bool) {
	gx, gy := TargetToGrid(width, height, st, x, y)
	total := st.TotalGridSize()
	if gx < 0 || gy < 0 || gx >= total || gy >= total {
		return 0, 0, false
	}
	return int(gx / st.CellSize), int(gy / st.CellSize), true
}
