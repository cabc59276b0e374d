package renderloop

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
)

type fakeScheduler struct {
	pending  func()
	requests int
	cancels  int
}

func (s *fakeScheduler) RequestFrame(fn func()) func() {
	s.pending = fn
	s.requests++
	return func() {
		s.pending = nil
		s.cancels++
	}
}

// tick runs the pending frame callback, if any.
func (s *fakeScheduler) tick() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

type fakeResize struct {
	fn           func(w, h, d float64)
	disconnected bool
}

func (r *fakeResize) Observe(fn func(w, h, d float64)) func() {
	r.fn = fn
	return func() {
		r.fn = nil
		r.disconnected = true
	}
}

func (r *fakeResize) fire(w, h, d float64) {
	if r.fn != nil {
		r.fn(w, h, d)
	}
}

type fakeSurface struct {
	*render.Recorder
	density  float64
	backingW int
	backingH int
	clears   int
	presents int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{Recorder: render.NewRecorder(), density: 1}
}

func (s *fakeSurface) Clear() {
	s.Recorder = render.NewRecorder()
	s.Recorder.Scale(s.density, s.density)
	s.clears++
}

func (s *fakeSurface) Present() { s.presents++ }

func (s *fakeSurface) Resize(w, h int, density float64) {
	s.backingW, s.backingH, s.density = w, h, density
}

func newTestLoop() (*Loop, *grid.Config, *fakeSurface, *fakeScheduler, *fakeResize) {
	cfg := grid.NewConfigFrom(grid.State{GridN: 4, CellSize: 60, LineWidth: 1, LineOpacity: 1})
	surf := newFakeSurface()
	sched := &fakeScheduler{}
	rs := &fakeResize{}
	return New(cfg, surf, sched, rs), cfg, surf, sched, rs
}

func TestFirstFrameDraws(t *testing.T) {
	lp, _, surf, sched, rs := newTestLoop()
	if !lp.Dirty() {
		t.Fatalf("new loop is not dirty")
	}
	lp.Start()
	rs.fire(300, 300, 1)
	sched.tick()

	if surf.clears != 1 || surf.presents != 1 {
		t.Fatalf("clears = %d, presents = %d, want 1, 1", surf.clears, surf.presents)
	}
	if lp.Dirty() {
		t.Fatalf("loop still dirty after drawing")
	}
	if n := len(surf.Segments()); n != 10 {
		t.Fatalf("segments = %d, want 10", n)
	}
}

func TestCleanFramesSkipDrawing(t *testing.T) {
	lp, _, surf, sched, rs := newTestLoop()
	lp.Start()
	rs.fire(300, 300, 1)
	for i := 0; i < 5; i++ {
		sched.tick()
	}
	if got := lp.Stats(); got.Frames != 5 || got.Drawn != 1 {
		t.Fatalf("Stats = %+v, want 5 frames and 1 draw", got)
	}
	if surf.clears != 1 {
		t.Fatalf("clears = %d, want 1", surf.clears)
	}
}

func TestMutationsCoalesce(t *testing.T) {
	lp, cfg, surf, sched, rs := newTestLoop()
	lp.Start()
	rs.fire(300, 300, 1)
	sched.tick()

	cfg.SetCellSize(40)
	cfg.SetRotation(12)
	cfg.SetPosition(3, 4)
	cfg.CenterGrid()
	if !lp.Dirty() {
		t.Fatalf("config change did not mark the loop dirty")
	}
	sched.tick()
	sched.tick()

	if surf.clears != 2 {
		t.Fatalf("clears = %d, want 2", surf.clears)
	}
	if got := lp.Stats(); got.Drawn != 2 || got.Frames != 3 {
		t.Fatalf("Stats = %+v, want 3 frames and 2 draws", got)
	}
}

func TestResizeAppliesDensity(t *testing.T) {
	lp, _, surf, sched, rs := newTestLoop()
	lp.Start()
	rs.fire(300, 200, 2)
	if surf.backingW != 600 || surf.backingH != 400 || surf.density != 2 {
		t.Fatalf("backing = %dx%d @%v, want 600x400 @2", surf.backingW, surf.backingH, surf.density)
	}
	sched.tick()

	// Geometry is laid out in logical units and scaled by the density, so
	// the grid is centred on the backing store.
	first := surf.Segments()[0]
	want := render.Segment{X0: 2 * 30, Y0: 2 * -20, X1: 2 * 30, Y1: 2 * 220}
	if first != want {
		t.Fatalf("first segment = %+v, want %+v", first, want)
	}

	rs.fire(300.4, 200.4, 1.5)
	if surf.backingW != 451 || surf.backingH != 301 {
		t.Fatalf("backing = %dx%d, want 451x301", surf.backingW, surf.backingH)
	}
	if !lp.Dirty() {
		t.Fatalf("resize did not mark the loop dirty")
	}
	w, h, d := lp.Size()
	if w != 300.4 || h != 200.4 || d != 1.5 {
		t.Fatalf("Size = (%v, %v, %v), want (300.4, 200.4, 1.5)", w, h, d)
	}
}

func TestSameSizeIsNotAResize(t *testing.T) {
	lp, _, _, sched, rs := newTestLoop()
	lp.Start()
	rs.fire(100, 100, 1)
	sched.tick()
	rs.fire(100, 100, 1)
	if lp.Dirty() {
		t.Fatalf("identical resize marked the loop dirty")
	}
}

func TestInvalidDensityFallsBack(t *testing.T) {
	lp, _, surf, _, rs := newTestLoop()
	lp.Start()
	rs.fire(50, 60, 0)
	if surf.density != 1 || surf.backingW != 50 || surf.backingH != 60 {
		t.Fatalf("backing = %dx%d @%v, want 50x60 @1", surf.backingW, surf.backingH, surf.density)
	}
}

func TestStop(t *testing.T) {
	lp, cfg, surf, sched, rs := newTestLoop()
	lp.Start()
	rs.fire(100, 100, 1)
	sched.tick()

	lp.Stop()
	lp.Stop()
	if sched.cancels != 1 {
		t.Fatalf("cancels = %d, want 1", sched.cancels)
	}
	if !rs.disconnected {
		t.Fatalf("resize observer still connected")
	}
	if sched.tick() {
		t.Fatalf("a frame is still scheduled after Stop")
	}

	cfg.SetCellSize(99)
	if lp.Dirty() {
		t.Fatalf("stopped loop still listens to the config")
	}
	if surf.clears != 1 || lp.Running() {
		t.Fatalf("clears = %d, running = %v after Stop", surf.clears, lp.Running())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	lp, _, _, sched, _ := newTestLoop()
	lp.Start()
	lp.Start()
	if sched.requests != 1 {
		t.Fatalf("requests = %d, want 1", sched.requests)
	}
}

func TestWakeOnDirty(t *testing.T) {
	cfg := grid.NewConfig()
	sched := &fakeScheduler{}
	rs := &fakeResize{}
	wakes := 0
	lp := New(cfg, newFakeSurface(), sched, rs, WithWake(func() { wakes++ }))
	lp.Start()
	rs.fire(10, 10, 1)
	sched.tick()

	cfg.SetRotation(5)
	cfg.SetRotation(6)
	if wakes != 1 {
		t.Fatalf("wakes = %d, want 1 per dirty transition", wakes)
	}
	sched.tick()
	lp.Invalidate()
	if wakes != 2 {
		t.Fatalf("wakes = %d, want 2", wakes)
	}
}
