package grid

import (
	"math"
	"testing"
)

func TestSettersClamp(t *testing.T) {
	cases := []struct {
		name string
		set  func(c *Config, v float64)
		get  func(c *Config) float64
		in   float64
		want float64
	}{
		{"cellSize below", (*Config).SetCellSize, (*Config).CellSize, 3, 10},
		{"cellSize inside", (*Config).SetCellSize, (*Config).CellSize, 42.5, 42.5},
		{"cellSize above", (*Config).SetCellSize, (*Config).CellSize, 1000, 400},
		{"cellSize +inf", (*Config).SetCellSize, (*Config).CellSize, math.Inf(1), 400},
		{"cellSize NaN", (*Config).SetCellSize, (*Config).CellSize, math.NaN(), 10},
		{"rotation above", (*Config).SetRotation, (*Config).Rotation, 190, 180},
		{"rotation below", (*Config).SetRotation, (*Config).Rotation, -720, -180},
		{"rotation inside", (*Config).SetRotation, (*Config).Rotation, -33.3, -33.3},
		{"lineWidth below", (*Config).SetLineWidth, (*Config).LineWidth, 0.1, 0.5},
		{"lineWidth above", (*Config).SetLineWidth, (*Config).LineWidth, 9, 5},
		{"lineOpacity below", (*Config).SetLineOpacity, (*Config).LineOpacity, 0, 0.1},
		{"lineOpacity above", (*Config).SetLineOpacity, (*Config).LineOpacity, 1.5, 1},
		{"positionX free", (*Config).SetPositionX, (*Config).PositionX, -12345.5, -12345.5},
		{"positionY free", (*Config).SetPositionY, (*Config).PositionY, 98765, 98765},
		{"positionX NaN", (*Config).SetPositionX, (*Config).PositionX, math.NaN(), 0},
		{"positionY -inf", (*Config).SetPositionY, (*Config).PositionY, math.Inf(-1), 0},
	}

	for _, tc := range cases {
		c := NewConfig()
		tc.set(c, tc.in)
		if got := tc.get(c); got != tc.want {
			t.Fatalf("%s: set(%v) read back %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestSetGridNRoundsAndClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-7, 1},
		{1, 1},
		{3.4, 3},
		{3.5, 4},
		{127.6, 128},
		{500, 128},
		{math.NaN(), 1},
	}
	for _, tc := range cases {
		c := NewConfig()
		c.SetGridN(tc.in)
		if c.GridN() != tc.want {
			t.Fatalf("SetGridN(%v) -> %d, want %d", tc.in, c.GridN(), tc.want)
		}
	}
}

func TestEffectiveNNeverBelowOne(t *testing.T) {
	c := NewConfig()
	for _, v := range []float64{0, -1, -1000, 0.4, 1e9, -0.5} {
		c.SetGridN(v)
		if c.EffectiveN() < 1 {
			t.Fatalf("EffectiveN after SetGridN(%v) = %d, want >= 1", v, c.EffectiveN())
		}
	}

	// The derivation itself is defensive even for a hand-built state.
	if n := (State{GridN: 0}).EffectiveN(); n != 1 {
		t.Fatalf("State{GridN: 0}.EffectiveN() = %d, want 1", n)
	}
}

func TestTotalGridSize(t *testing.T) {
	c := NewConfig()
	c.SetGridN(4)
	c.SetCellSize(60)
	if got := c.TotalGridSize(); got != 240 {
		t.Fatalf("TotalGridSize = %v, want 240", got)
	}
}

func TestEverySetterNotifiesOnce(t *testing.T) {
	c := NewConfig()
	calls := 0
	var seen *Config
	c.Subscribe(func(cfg *Config) {
		calls++
		seen = cfg
	})

	setters := []func(){
		func() { c.SetGridN(5) },
		func() { c.SetCellSize(20) },
		func() { c.SetRotation(15) },
		func() { c.SetPositionX(1) },
		func() { c.SetPositionY(2) },
		func() { c.SetPosition(3, 4) },
		func() { c.SetLineColor("#123456") },
		func() { c.SetLineWidth(2) },
		func() { c.SetLineOpacity(0.5) },
		func() { c.CenterGrid() },
	}
	for i, set := range setters {
		before := calls
		set()
		if calls != before+1 {
			t.Fatalf("setter %d notified %d times, want 1", i, calls-before)
		}
	}
	if seen != c {
		t.Fatalf("listener received %p, want %p", seen, c)
	}
}

func TestListenerSeesStoredValue(t *testing.T) {
	c := NewConfig()
	var got float64
	c.Subscribe(func(cfg *Config) { got = cfg.CellSize() })
	c.SetCellSize(9999)
	if got != MaxCellSize {
		t.Fatalf("listener read %v, want clamped %v", got, MaxCellSize)
	}
}

func TestCenterGrid(t *testing.T) {
	c := NewConfig()
	c.SetPosition(40, -25)
	c.CenterGrid()
	if c.PositionX() != 0 || c.PositionY() != 0 {
		t.Fatalf("position after CenterGrid = (%v, %v), want (0, 0)", c.PositionX(), c.PositionY())
	}
}

func TestUnsubscribe(t *testing.T) {
	c := NewConfig()
	calls := 0
	unsub := c.Subscribe(func(*Config) { calls++ })
	c.SetRotation(1)
	unsub()
	unsub()
	c.SetRotation(2)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if n := c.listeners.len(); n != 0 {
		t.Fatalf("listener count = %d, want 0", n)
	}
}

func TestListenerUnsubscribesItselfDuringDispatch(t *testing.T) {
	c := NewConfig()
	var unsub func()
	selfCalls, otherCalls := 0, 0
	unsub = c.Subscribe(func(*Config) {
		selfCalls++
		unsub()
	})
	c.Subscribe(func(*Config) { otherCalls++ })

	c.SetCellSize(30)
	c.SetCellSize(40)

	if selfCalls != 1 {
		t.Fatalf("self-removing listener ran %d times, want 1", selfCalls)
	}
	if otherCalls != 2 {
		t.Fatalf("other listener ran %d times, want 2", otherCalls)
	}
}

func TestListenerRemovedByAnotherIsSkipped(t *testing.T) {
	c := NewConfig()
	var unsubSecond func()
	secondCalls := 0
	c.Subscribe(func(*Config) { unsubSecond() })
	unsubSecond = c.Subscribe(func(*Config) { secondCalls++ })

	c.SetRotation(10)
	if secondCalls != 0 {
		t.Fatalf("removed listener ran %d times, want 0", secondCalls)
	}
}

func TestNewConfigFromClamps(t *testing.T) {
	c := NewConfigFrom(State{GridN: 0, CellSize: 1, Rotation: 270, LineWidth: 10, LineOpacity: 0})
	s := c.State()
	if s.GridN != 1 || s.CellSize != 10 || s.Rotation != 180 || s.LineWidth != 5 || s.LineOpacity != 0.1 {
		t.Fatalf("NewConfigFrom state = %+v, want clamped values", s)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c := NewConfig()
	c.Apply(Patch{GridN: Float(3), Rotation: Float(45), LineColor: String("red")})
	c.Reset()
	if got, want := c.State(), DefaultState(); got != want {
		t.Fatalf("State after Reset = %+v, want %+v", got, want)
	}
}
