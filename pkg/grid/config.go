package grid

import "math"

// Parameter ranges. Setters clamp into these before storing.
const (
	MinGridN = 1
	MaxGridN = 128

	MinCellSize = 10.0
	MaxCellSize = 400.0

	MinRotation = -180.0
	MaxRotation = 180.0

	MinLineWidth = 0.5
	MaxLineWidth = 5.0

	MinLineOpacity = 0.1
	MaxLineOpacity = 1.0
)

// State is a value copy of the grid transform parameters.
type State struct {
	GridN       int     `json:"grid_n"`
	CellSize    float64 `json:"cell_size"`
	Rotation    float64 `json:"rotation"` // degrees
	PositionX   float64 `json:"position_x"`
	PositionY   float64 `json:"position_y"`
	LineColor   string  `json:"line_color"`
	LineWidth   float64 `json:"line_width"`
	LineOpacity float64 `json:"line_opacity"`
}

// DefaultState returns the parameters a fresh session starts with.
func DefaultState() State {
	return State{
		GridN:       8,
		CellSize:    60,
		LineColor:   "#ffffff",
		LineWidth:   1,
		LineOpacity: 0.8,
	}
}

// EffectiveN is the number of cells per side used for drawing.
func (s State) EffectiveN() int {
	if s.GridN < 1 {
		return 1
	}
	return s.GridN
}

// TotalGridSize is the side length of the whole grid in pixels.
func (s State) TotalGridSize() float64 {
	return float64(s.EffectiveN()) * s.CellSize
}

// Reader is the read side of a grid configuration, enough to draw it.
type Reader interface {
	State() State
}

// Listener is invoked after every mutation with the configuration itself.
// Listeners read current state; no diff is passed.
type Listener func(c *Config)

// Config owns the grid transform state for one document session. It is not
// safe for concurrent use: it belongs to the UI event loop, and other
// goroutines hand work to that loop instead of touching Config directly.
type Config struct {
	state     State
	listeners listenerSet
}

// NewConfig returns a configuration holding DefaultState.
func NewConfig() *Config {
	return &Config{state: DefaultState()}
}

// NewConfigFrom returns a configuration seeded from s. Every field goes
// through its clamp, so s may hold out-of-range values.
func NewConfigFrom(s State) *Config {
	c := &Config{}
	c.state = State{
		GridN:       clampGridN(float64(s.GridN)),
		CellSize:    clampFloat(s.CellSize, MinCellSize, MaxCellSize),
		Rotation:    clampFloat(s.Rotation, MinRotation, MaxRotation),
		PositionX:   finiteOrZero(s.PositionX),
		PositionY:   finiteOrZero(s.PositionY),
		LineColor:   s.LineColor,
		LineWidth:   clampFloat(s.LineWidth, MinLineWidth, MaxLineWidth),
		LineOpacity: clampFloat(s.LineOpacity, MinLineOpacity, MaxLineOpacity),
	}
	return c
}

// State returns a snapshot of the current parameters.
func (c *Config) State() State { return c.state }

func (c *Config) GridN() int { return c.state.GridN }
func (c *Config) CellSize() float64 { return c.state.CellSize }
func (c *Config) Rotation() float64 { return c.state.Rotation }
func (c *Config) PositionX() float64 { return c.state.PositionX }
func (c *Config) PositionY() float64 { return c.state.PositionY }
func (c *Config) LineColor() string { return c.state.LineColor }
func (c *Config) LineWidth() float64 { return c.state.LineWidth }
func (c *Config) LineOpacity() float64 { return c.state.LineOpacity }
func (c *Config) EffectiveN() int { return c.state.EffectiveN() }
func (c *Config) TotalGridSize() float64 { return c.state.TotalGridSize() }

// SetGridN rounds v to the nearest integer and clamps it to [1,128].
// It takes a float so that slider and text input need no pre-rounding.
func (c *Config) SetGridN(v float64) {
	c.state.GridN = clampGridN(v)
	c.notify()
}

func (c *Config) SetCellSize(v float64) {
	c.state.CellSize = clampFloat(v, MinCellSize, MaxCellSize)
	c.notify()
}

// SetRotation stores the rotation in degrees, clamped to [-180,180].
// Values are clamped, not wrapped: 190 reads back as 180.
func (c *Config) SetRotation(v float64) {
	c.state.Rotation = clampFloat(v, MinRotation, MaxRotation)
	c.notify()
}

func (c *Config) SetPositionX(v float64) {
	c.state.PositionX = finiteOrZero(v)
	c.notify()
}

func (c *Config) SetPositionY(v float64) {
	c.state.PositionY = finiteOrZero(v)
	c.notify()
}

// SetPosition assigns both offsets and notifies once.
func (c *Config) SetPosition(x, y float64) {
	c.state.PositionX = finiteOrZero(x)
	c.state.PositionY = finiteOrZero(y)
	c.notify()
}

// SetLineColor stores v as given. It is parsed when the grid is drawn.
func (c *Config) SetLineColor(v string) {
	c.state.LineColor = v
	c.notify()
}

func (c *Config) SetLineWidth(v float64) {
	c.state.LineWidth = clampFloat(v, MinLineWidth, MaxLineWidth)
	c.notify()
}

func (c *Config) SetLineOpacity(v float64) {
	c.state.LineOpacity = clampFloat(v, MinLineOpacity, MaxLineOpacity)
	c.notify()
}

// CenterGrid moves the grid back to the middle of the target.
func (c *Config) CenterGrid() {
	c.state.PositionX = 0
	c.state.PositionY = 0
	c.notify()
}

// Reset restores DefaultState through the regular setters.
func (c *Config) Reset() {
	c.Apply(PatchFromState(DefaultState()))
}

// Subscribe registers fn and returns a function that removes it again.
// The returned function may be called any number of times, including from
// inside a notification.
func (c *Config) Subscribe(fn Listener) (unsubscribe func()) {
	return c.listeners.add(fn)
}

func (c *Config) notify() {
	c.listeners.dispatch(c)
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampGridN(v float64) int {
	return int(math.Round(clampFloat(v, MinGridN, MaxGridN)))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
