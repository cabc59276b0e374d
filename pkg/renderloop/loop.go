// Package renderloop redraws the live grid surface only when something
// changed. Configuration notifications and resizes set a dirty flag; the
// host's frame callback clears it by drawing once, so any number of
// mutations between two frames cost a single redraw.
package renderloop

import (
	"log/slog"
	"math"

	"github.com/OpenTraceLab/OpenTraceGrid/internal/logging"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
)

// Surface is the live drawing target.
type Surface interface {
	render.Surface

	// Clear erases the previous frame and resets the transform to the base
	// density scale.
	Clear()
	// Present hands the finished frame to the display.
	Present()
	// Resize sets the backing store size in device pixels and the base
	// scale applied after every Clear.
	Resize(backingW, backingH int, density float64)
}

// Scheduler runs fn on the next display frame. The returned function
// cancels a request that has not run yet.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// ResizeNotifier reports the displayed size (logical units) and pixel
// density of the surface whenever either changes.
type ResizeNotifier interface {
	Observe(fn func(width, height, density float64)) (disconnect func())
}

// Config is what the loop needs from the grid configuration.
type Config interface {
	grid.Reader
	Subscribe(fn grid.Listener) (unsubscribe func())
}

// Stats counts frame callbacks.
type Stats struct {
	Frames int // callbacks received
	Drawn  int // callbacks that redrew
}

// Loop owns the dirty flag and the frame subscription.
type Loop struct {
	cfg     Config
	surface Surface
	sched   Scheduler
	resize  ResizeNotifier
	log     *slog.Logger
	onDirty func()

	width, height float64
	density       float64
	sized         bool
	dirty         bool
	running       bool
	stats         Stats

	cancelFrame func()
	disconnect  func()
	unsubscribe func()
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger routes loop diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(lp *Loop) { lp.log = logging.OrNop(l) }
}

// WithWake registers fn to be called whenever the loop becomes dirty.
// Hosts that only deliver frames on demand use it to request one.
func WithWake(fn func()) Option {
	return func(lp *Loop) { lp.onDirty = fn }
}

// New builds a stopped loop. Call Start to begin drawing.
func New(cfg Config, surface Surface, sched Scheduler, resize ResizeNotifier, opts ...Option) *Loop {
	lp := &Loop{
		cfg:     cfg,
		surface: surface,
		sched:   sched,
		resize:  resize,
		log:     logging.Nop(),
		density: 1,
		dirty:   true,
	}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

// Start subscribes to the configuration and the resize notifier and
// schedules the first frame. Starting a running loop does nothing.
func (lp *Loop) Start() {
	if lp.running {
		return
	}
	lp.running = true
	lp.unsubscribe = lp.cfg.Subscribe(func(*grid.Config) { lp.Invalidate() })
	lp.disconnect = lp.resize.Observe(lp.resized)
	lp.schedule()
	lp.log.Debug("render loop started")
}

// Stop cancels the pending frame and drops both subscriptions. It is safe
// to call more than once.
func (lp *Loop) Stop() {
	if !lp.running {
		return
	}
	lp.running = false
	for _, fn := range []func(){lp.cancelFrame, lp.disconnect, lp.unsubscribe} {
		if fn != nil {
			fn()
		}
	}
	lp.cancelFrame, lp.disconnect, lp.unsubscribe = nil, nil, nil
	lp.log.Debug("render loop stopped", "frames", lp.stats.Frames, "drawn", lp.stats.Drawn)
}

// Running reports whether Start was called without a matching Stop.
func (lp *Loop) Running() bool { return lp.running }

// Dirty reports whether the next frame will redraw.
func (lp *Loop) Dirty() bool { return lp.dirty }

// Stats returns the frame counters.
func (lp *Loop) Stats() Stats { return lp.stats }

// Size returns the displayed size and density last reported by the host.
func (lp *Loop) Size() (width, height, density float64) {
	return lp.width, lp.height, lp.density
}

// Invalidate forces a redraw on the next frame. Media changes and other
// inputs outside the grid configuration use it.
func (lp *Loop) Invalidate() {
	wasDirty := lp.dirty
	lp.dirty = true
	if !wasDirty && lp.onDirty != nil {
		lp.onDirty()
	}
}

func (lp *Loop) resized(width, height, density float64) {
	if density <= 0 || math.IsNaN(density) {
		density = 1
	}
	if lp.sized && width == lp.width && height == lp.height && density == lp.density {
		return
	}
	lp.sized = true
	lp.width, lp.height, lp.density = width, height, density
	bw := int(math.Round(width * density))
	bh := int(math.Round(height * density))
	lp.surface.Resize(bw, bh, density)
	lp.log.Debug("surface resized", "width", width, "height", height, "density", density, "backing", [2]int{bw, bh})
	lp.Invalidate()
}

func (lp *Loop) schedule() {
	lp.cancelFrame = lp.sched.RequestFrame(lp.frame)
}

func (lp *Loop) frame() {
	if !lp.running {
		return
	}
	lp.stats.Frames++
	if lp.dirty {
		lp.surface.Clear()
		render.Draw(lp.surface, lp.width, lp.height, lp.cfg)
		lp.surface.Present()
		lp.dirty = false
		lp.stats.Drawn++
	}
	lp.schedule()
}
