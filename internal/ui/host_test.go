package ui

import "testing"

func TestFrameSchedulerRunsOnce(t *testing.T) {
	var s frameScheduler
	calls := 0
	s.RequestFrame(func() { calls++ })
	s.run()
	s.run()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	var s frameScheduler
	calls := 0
	cancel := s.RequestFrame(func() { calls++ })
	cancel()
	s.run()
	if calls != 0 {
		t.Fatalf("cancelled request ran")
	}
}

func TestFrameSchedulerStaleCancel(t *testing.T) {
	var s frameScheduler
	stale := s.RequestFrame(func() {})
	calls := 0
	s.RequestFrame(func() { calls++ })
	stale()
	s.run()
	if calls != 1 {
		t.Fatalf("stale cancel dropped the newer request")
	}
}

func TestResizeWatcher(t *testing.T) {
	var r resizeWatcher
	var got [][3]float64
	r.update(100, 50, 2)

	disconnect := r.Observe(func(w, h, d float64) { got = append(got, [3]float64{w, h, d}) })
	if len(got) != 1 || got[0] != [3]float64{100, 50, 2} {
		t.Fatalf("Observe did not replay the known size: %v", got)
	}

	r.update(100, 50, 2)
	r.update(120, 50, 2)
	r.update(120, 50, 1)
	if len(got) != 3 {
		t.Fatalf("notifications = %v, want 3", got)
	}

	disconnect()
	r.update(10, 10, 1)
	if len(got) != 3 {
		t.Fatalf("disconnected observer still notified")
	}
}
