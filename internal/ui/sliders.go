package ui

import (
	"fmt"
	"math"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
)

// sliderField binds a widget.Float (always 0..1) to one grid parameter.
type sliderField struct {
	label    string
	format   string
	min, max float64
	get      func() float64
	set      func(float64)
	float    widget.Float
}

func (s *sliderField) toUnit(v float64) float32 {
	if s.max == s.min {
		return 0
	}
	return float32((v - s.min) / (s.max - s.min))
}

func (s *sliderField) fromUnit(u float32) float64 {
	return s.min + float64(u)*(s.max-s.min)
}

func (s *sliderField) layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	if s.float.Update(gtx) {
		s.set(s.fromUnit(s.float.Value))
	}
	if !s.float.Dragging() {
		// Follow gestures, keys and commands that changed the value.
		s.float.Value = s.toUnit(s.get())
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.Caption(th, fmt.Sprintf("%s: "+s.format, s.label, s.get())).Layout),
		layout.Rigid(material.Slider(th, &s.float).Layout),
	)
}

func (a *App) buildSliders() []*sliderField {
	c := a.cfg
	return []*sliderField{
		{
			label: "Cells", format: "%.0f", min: grid.MinGridN, max: grid.MaxGridN,
			get: func() float64 { return float64(c.GridN()) },
			set: func(v float64) {
				if int(math.Round(v)) != c.GridN() {
					c.SetGridN(v)
				}
			},
		},
		{
			label: "Cell size", format: "%.0f px", min: grid.MinCellSize, max: grid.MaxCellSize,
			get: c.CellSize, set: c.SetCellSize,
		},
		{
			label: "Rotation", format: "%.1f°", min: grid.MinRotation, max: grid.MaxRotation,
			get: c.Rotation, set: c.SetRotation,
		},
		{
			label: "Line width", format: "%.1f px", min: grid.MinLineWidth, max: grid.MaxLineWidth,
			get: c.LineWidth, set: c.SetLineWidth,
		},
		{
			label: "Opacity", format: "%.2f", min: grid.MinLineOpacity, max: grid.MaxLineOpacity,
			get: c.LineOpacity, set: c.SetLineOpacity,
		},
	}
}
