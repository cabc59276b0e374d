package grid

// Patch is a batch update. Nil fields are left untouched.
type Patch struct {
	GridN       *float64
	CellSize    *float64
	Rotation    *float64
	PositionX   *float64
	PositionY   *float64
	LineColor   *string
	LineWidth   *float64
	LineOpacity *float64
}

// Float returns a pointer to v for building patches inline.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v for building patches inline.
func String(v string) *string { return &v }

// PatchFromState builds a patch that sets every field of s.
func PatchFromState(s State) Patch {
	return Patch{
		GridN:       Float(float64(s.GridN)),
		CellSize:    Float(s.CellSize),
		Rotation:    Float(s.Rotation),
		PositionX:   Float(s.PositionX),
		PositionY:   Float(s.PositionY),
		LineColor:   String(s.LineColor),
		LineWidth:   Float(s.LineWidth),
		LineOpacity: Float(s.LineOpacity),
	}
}

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool {
	return p.GridN == nil && p.CellSize == nil && p.Rotation == nil &&
		p.PositionX == nil && p.PositionY == nil && p.LineColor == nil &&
		p.LineWidth == nil && p.LineOpacity == nil
}

// Merge returns p with every field that is set in other overriding it.
func (p Patch) Merge(other Patch) Patch {
	if other.GridN != nil {
		p.GridN = other.GridN
	}
	if other.CellSize != nil {
		p.CellSize = other.CellSize
	}
	if other.Rotation != nil {
		p.Rotation = other.Rotation
	}
	if other.PositionX != nil {
		p.PositionX = other.PositionX
	}
	if other.PositionY != nil {
		p.PositionY = other.PositionY
	}
	if other.LineColor != nil {
		p.LineColor = other.LineColor
	}
	if other.LineWidth != nil {
		p.LineWidth = other.LineWidth
	}
	if other.LineOpacity != nil {
		p.LineOpacity = other.LineOpacity
	}
	return p
}

// Apply runs every set field through its setter, so clamping still holds.
// Listeners are notified once per applied field, not once per patch.
func (c *Config) Apply(p Patch) {
	if p.GridN != nil {
		c.SetGridN(*p.GridN)
	}
	if p.CellSize != nil {
		c.SetCellSize(*p.CellSize)
	}
	if p.Rotation != nil {
		c.SetRotation(*p.Rotation)
	}
	if p.PositionX != nil {
		c.SetPositionX(*p.PositionX)
	}
	if p.PositionY != nil {
		c.SetPositionY(*p.PositionY)
	}
	if p.LineColor != nil {
		c.SetLineColor(*p.LineColor)
	}
	if p.LineWidth != nil {
		c.SetLineWidth(*p.LineWidth)
	}
	if p.LineOpacity != nil {
		c.SetLineOpacity(*p.LineOpacity)
	}
}
