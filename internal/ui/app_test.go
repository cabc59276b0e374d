package ui

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
)

func TestResetGridWithoutStartPatch(t *testing.T) {
	cfg := grid.NewConfig()
	cfg.SetCellSize(200)
	cfg.SetPosition(40, -10)
	cfg.SetLineColor("#00ff00")

	resetGrid(cfg, grid.Patch{})
	if got := cfg.State(); got != grid.DefaultState() {
		t.Fatalf("State() = %+v, want %+v", got, grid.DefaultState())
	}
}

func TestResetGridReappliesStartPatch(t *testing.T) {
	start := grid.Patch{GridN: grid.Float(12), Rotation: grid.Float(15)}
	cfg := grid.NewConfig()
	cfg.Apply(start)
	cfg.SetGridN(3)
	cfg.SetRotation(-90)
	cfg.SetCellSize(300)

	resetGrid(cfg, start)
	want := grid.DefaultState()
	want.GridN = 12
	want.Rotation = 15
	if got := cfg.State(); got != want {
		t.Fatalf("State() = %+v, want %+v", got, want)
	}
}
