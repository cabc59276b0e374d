// Package snapshot composites media and grid into an offscreen image.
//
// The grid is drawn with render.Draw at the same logical size as the live
// preview, so the exported lines land where they were on screen; Scale
// only changes the pixel density of the output.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/media"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
)

// Options describe the export target.
type Options struct {
	Width, Height float64     // logical size, normally the live display size
	Scale         float64     // output pixels per logical unit; 0 means 1
	Background    color.Color // nil means opaque black
}

// ForMedia returns options sized to the media's natural dimensions, or to
// the fallback size when the media has none.
func ForMedia(m *media.Media, fallbackW, fallbackH float64) Options {
	if m.Drawable() {
		return Options{Width: float64(m.Width), Height: float64(m.Height), Scale: 1}
	}
	return Options{Width: fallbackW, Height: fallbackH, Scale: 1}
}

// PixelSize is the output size in pixels.
func (o Options) PixelSize() (int, int) {
	s := o.scale()
	return int(math.Round(o.Width * s)), int(math.Round(o.Height * s))
}

func (o Options) scale() float64 {
	if o.Scale <= 0 || math.IsNaN(o.Scale) {
		return 1
	}
	return o.Scale
}

// Snapshot is a composited frame. Close releases the drawing context.
// A snapshot of a target with no pixels is empty: it has a zero-sized
// image and writes nothing.
type Snapshot struct {
	dc *gg.Context
}

// Capture renders the background, the media fitted inside the target and
// the grid on top. A target smaller than one pixel yields an empty
// snapshot, not an error.
func Capture(m *media.Media, cfg grid.Reader, opts Options) (*Snapshot, error) {
	pw, ph := opts.PixelSize()
	if pw < 1 || ph < 1 {
		return &Snapshot{}, nil
	}

	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	canvas := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if m.Drawable() {
		fit := Contain(m.Width, m.Height, pw, ph)
		draw.CatmullRom.Scale(canvas, fit, m.Image, m.Image.Bounds(), draw.Over, nil)
	}

	dc := gg.NewContextForImage(canvas)
	surf := render.NewGGSurface(dc)
	s := opts.scale()
	surf.Scale(s, s)
	render.Draw(surf, opts.Width, opts.Height, cfg)
	if err := surf.Err(); err != nil {
		_ = dc.Close()
		return nil, fmt.Errorf("draw grid: %w", err)
	}
	return &Snapshot{dc: dc}, nil
}

// Empty reports whether the snapshot has no pixels.
func (s *Snapshot) Empty() bool { return s.dc == nil }

// Image returns the composited pixels.
func (s *Snapshot) Image() image.Image {
	if s.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	return s.dc.Image()
}

// Size is the output size in pixels.
func (s *Snapshot) Size() (int, int) {
	if s.Empty() {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

// EncodePNG writes the snapshot as PNG. An empty snapshot writes nothing.
func (s *Snapshot) EncodePNG(w io.Writer) error {
	if s.Empty() {
		return nil
	}
	return s.dc.EncodePNG(w)
}

// WritePNG writes the snapshot to path. An empty snapshot creates no file.
func (s *Snapshot) WritePNG(path string) (err error) {
	if s.Empty() {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := s.EncodePNG(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Close releases the drawing context.
func (s *Snapshot) Close() error {
	if s.Empty() {
		return nil
	}
	return s.dc.Close()
}

// Contain fits a srcW×srcH picture inside dstW×dstH keeping its aspect
// ratio, centred. It is the layout the live view uses as well.
func Contain(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}
	x, y, w, h := ContainF(float64(srcW), float64(srcH), float64(dstW), float64(dstH))
	p := image.Pt(int(math.Round(x)), int(math.Round(y)))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(int(math.Round(w)), int(math.Round(h))))}
}

// ContainF is Contain in floating point, for targets in logical units.
func ContainF(srcW, srcH, dstW, dstH float64) (x, y, w, h float64) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, 0, 0
	}
	k := math.Min(dstW/srcW, dstH/srcH)
	w, h = srcW*k, srcH*k
	return (dstW - w) / 2, (dstH - h) / 2, w, h
}
