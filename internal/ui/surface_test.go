package ui

import (
	"math"
	"testing"

	"github.com/gogpu/gg"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
)

func TestGioSurfaceMatchesRecorder(t *testing.T) {
	cfg := grid.NewConfigFrom(grid.State{GridN: 3, CellSize: 40, Rotation: 30, PositionX: 12, PositionY: -8, LineWidth: 2, LineOpacity: 0.5})

	s := newGioSurface()
	s.Resize(800, 600, 2)
	s.Clear()
	render.Draw(s, 400, 300, cfg)
	s.Present()

	rec := render.NewRecorder()
	rec.Scale(2, 2)
	render.Draw(rec, 400, 300, cfg)
	segs := rec.Segments()

	if len(s.path) != 2*len(segs) {
		t.Fatalf("path points = %d, want %d", len(s.path), 2*len(segs))
	}
	for i, seg := range segs {
		a, b := s.path[2*i], s.path[2*i+1]
		if !a.move || b.move {
			t.Fatalf("segment %d: move flags = %v, %v", i, a.move, b.move)
		}
		if !nearF32(a.pt.X, seg.X0) || !nearF32(a.pt.Y, seg.Y0) || !nearF32(b.pt.X, seg.X1) || !nearF32(b.pt.Y, seg.Y1) {
			t.Fatalf("segment %d = %v-%v, want %+v", i, a.pt, b.pt, seg)
		}
	}
	if s.strokes != 1 {
		t.Fatalf("strokes = %d, want 1", s.strokes)
	}
	if len(s.stack) != 0 {
		t.Fatalf("stack depth after Draw = %d, want 0", len(s.stack))
	}
	if s.recording {
		t.Fatalf("surface still recording after Present")
	}
}

func TestGioSurfaceClearResetsToDensity(t *testing.T) {
	s := newGioSurface()
	s.Resize(300, 300, 1.5)
	s.Clear()
	s.Translate(10, 10)
	s.Save()
	s.Clear()

	if len(s.stack) != 0 {
		t.Fatalf("stack survived Clear")
	}
	if got := matrixScale(s.state.matrix); math.Abs(got-1.5) > 1e-12 {
		t.Fatalf("base scale = %v, want 1.5", got)
	}
	if p := s.state.matrix.TransformPoint(gg.Pt(0, 0)); p.X != 0 || p.Y != 0 {
		t.Fatalf("translation survived Clear: %+v", p)
	}
}

func TestMatrixScale(t *testing.T) {
	s := newGioSurface()
	s.Resize(10, 10, 3)
	s.Clear()
	s.Rotate(1.1)
	s.Translate(5, -2)
	if got := matrixScale(s.state.matrix); math.Abs(got-3) > 1e-9 {
		t.Fatalf("matrixScale = %v, want 3", got)
	}
}

func TestClampUnit(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 2: 1, math.NaN(): 0} {
		if got := clampUnit(in); got != want {
			t.Fatalf("clampUnit(%v) = %v, want %v", in, got, want)
		}
	}
}

func nearF32(a float32, b float64) bool {
	return math.Abs(float64(a)-b) < 1e-3
}
