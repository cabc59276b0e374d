package ui

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/gesture"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
)

func TestWheelEventUsesLogicalUnits(t *testing.T) {
	cases := []struct {
		name    string
		scrollY float32
		mods    key.Modifiers
		density float64
		want    gesture.WheelEvent
	}{
		{"1x ctrl", 20, key.ModCtrl, 1, gesture.WheelEvent{DeltaY: 20, Ctrl: true}},
		{"2x ctrl", 40, key.ModCtrl, 2, gesture.WheelEvent{DeltaY: 20, Ctrl: true}},
		{"3x command", -60, key.ModCommand, 3, gesture.WheelEvent{DeltaY: -20, Meta: true}},
		{"unknown density", 20, 0, 0, gesture.WheelEvent{DeltaY: 20}},
	}
	for _, tc := range cases {
		e := pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, tc.scrollY), Modifiers: tc.mods}
		if got := wheelEvent(e, tc.density); got != tc.want {
			t.Fatalf("%s: wheelEvent = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestWheelNotchScalesAlikeAcrossDensities(t *testing.T) {
	var sizes []float64
	for _, density := range []float64{1, 2, 3} {
		cfg := grid.NewConfig()
		in := gesture.New(cfg)
		e := pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, float32(-20*density)), Modifiers: key.ModCtrl}
		in.Wheel(wheelEvent(e, density))
		sizes = append(sizes, cfg.CellSize())
	}
	for i, got := range sizes {
		if got != 70 {
			t.Fatalf("density %d: CellSize = %v, want 70", i+1, got)
		}
	}
}
