package ui

// frameScheduler adapts Gio's frame events to renderloop.Scheduler. The
// canvas calls run once per FrameEvent; Gio only delivers frames when the
// window is invalidated, so a pending request costs nothing while idle.
type frameScheduler struct {
	pending func()
	seq     int
}

func (s *frameScheduler) RequestFrame(fn func()) func() {
	s.seq++
	id := s.seq
	s.pending = fn
	return func() {
		if s.seq == id {
			s.pending = nil
		}
	}
}

// run invokes the pending callback, which normally requests the next one.
func (s *frameScheduler) run() {
	fn := s.pending
	s.pending = nil
	if fn != nil {
		fn()
	}
}

// resizeWatcher adapts per-frame constraint checks to
// renderloop.ResizeNotifier.
type resizeWatcher struct {
	fn      func(w, h, density float64)
	w, h, d float64
	known   bool
}

func (r *resizeWatcher) Observe(fn func(w, h, density float64)) func() {
	r.fn = fn
	if r.known {
		fn(r.w, r.h, r.d)
	}
	return func() { r.fn = nil }
}

// update reports the canvas size in logical units. Observers hear about
// changes only.
func (r *resizeWatcher) update(w, h, density float64) {
	if r.known && w == r.w && h == r.h && density == r.d {
		return
	}
	r.w, r.h, r.d, r.known = w, h, density, true
	if r.fn != nil {
		r.fn(w, h, density)
	}
}
