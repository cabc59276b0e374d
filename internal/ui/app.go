package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gioui.org/app"
	gfont "gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/gesture"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceGrid/internal/logging"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/media"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/snapshot"
)

// Options configure a new App.
type Options struct {
	MediaPath  string     // preloaded at startup when set
	Patch      grid.Patch // applied over the configured defaults
	Config     *AppConfig // nil loads the config file
	ConfigPath string     // where settings are saved; "" uses ConfigPath()
	Logger     *slog.Logger
}

const maxLogLines = 500

// errEmptyExport stops an export before the save dialog opens.
var errEmptyExport = errors.New("empty export")

type colorPreset struct {
	name  string
	value string
}

var colorPresets = []colorPreset{
	{"White", "#ffffff"},
	{"Black", "#000000"},
	{"Red", "#ff3b30"},
	{"Lime", "#00ff00"},
	{"Yellow", "#ffd60a"},
	{"Cyan", "#00e5ff"},
	{"Magenta", "#ff00ff"},
}

// App is the grid overlay window: toolbar, parameter sidebar, canvas,
// log pane and status bar.
type App struct {
	window *app.Window
	ops    op.Ops
	log    *slog.Logger

	gvTheme  *theme.Theme
	darkMode bool

	settings     *AppConfig
	settingsPath string

	cfg        *grid.Config
	startPatch grid.Patch // --set values, reapplied on reset
	canvas     *Canvas

	openIcon   *widget.Icon
	exportIcon *widget.Icon
	centerIcon *widget.Icon
	resetIcon  *widget.Icon

	openBtn   widget.Clickable
	exportBtn widget.Clickable
	centerBtn widget.Clickable
	resetBtn  widget.Clickable

	sliders   []*sliderField
	sideList  widget.List
	posX      widget.Editor
	posY      widget.Editor
	colorEd   widget.Editor
	commandEd widget.Editor
	applyBtn  widget.Clickable

	colorMenu    *menu.DropdownMenu
	colorMenuBtn widget.Clickable

	darkModeSwitch widget.Bool

	explorer *explorer.Explorer
	results  chan func()
	busy     string

	logs          []string
	logText       string
	logSelectable widget.Selectable
	logPaneHeight float32
	logSplitter   gesture.Drag
	logSplitDrag  bool
	logSplitLastY float32
	logList       widget.List
	monoShaper    *text.Shaper
}

// New creates the app for window w.
func New(w *app.Window, opts Options) *App {
	if w == nil {
		w = new(app.Window)
	}
	w.Option(app.Title("OpenTraceGrid"), app.Size(unit.Dp(1280), unit.Dp(820)))

	settings := opts.Config
	if settings == nil {
		var err error
		if opts.ConfigPath != "" {
			settings, err = LoadConfigFile(opts.ConfigPath)
		} else {
			settings, err = LoadConfig()
		}
		if err != nil || settings == nil {
			settings = DefaultAppConfig()
		}
	}

	a := &App{
		window:       w,
		log:          logging.OrNop(opts.Logger),
		gvTheme:      theme.NewTheme("", nil, true),
		darkMode:     settings.DarkMode,
		settings:     settings,
		settingsPath: opts.ConfigPath,
		cfg:          grid.NewConfig(),
		startPatch:   opts.Patch,
		explorer:     explorer.NewExplorer(w),
		results:      make(chan func(), 16),
	}
	a.cfg.Apply(opts.Patch)
	a.canvas = NewCanvas(a.cfg, a.log, a.invalidate, a.Logf)
	a.sliders = a.buildSliders()

	for _, ic := range []struct {
		dst  **widget.Icon
		data []byte
	}{
		{&a.openIcon, icons.FileFolderOpen},
		{&a.exportIcon, icons.FileFileDownload},
		{&a.centerIcon, icons.ImageCenterFocusStrong},
		{&a.resetIcon, icons.NavigationRefresh},
	} {
		if icon, err := widget.NewIcon(ic.data); err == nil {
			*ic.dst = icon
		}
	}

	for _, ed := range []*widget.Editor{&a.posX, &a.posY, &a.colorEd, &a.commandEd} {
		ed.SingleLine = true
		ed.Submit = true
	}
	a.colorMenu = a.buildColorMenu()
	a.darkModeSwitch.Value = a.darkMode
	a.sideList.Axis = layout.Vertical

	monoFaces := filterMonoFaces()
	if len(monoFaces) > 0 {
		a.monoShaper = text.NewShaper(text.WithCollection(monoFaces), text.NoSystemFonts())
	}
	a.logSelectable.WrapPolicy = text.WrapGraphemes
	a.logList.Axis = layout.Vertical
	a.logList.ScrollToEnd = true

	a.applyPalette()
	a.Logf("[BOOT] Grid %d x %d, cell %.0f px", a.cfg.GridN(), a.cfg.GridN(), a.cfg.CellSize())
	a.Logf("[INFO] Drag to move, ctrl+wheel or pinch to scale, two fingers to rotate")
	if opts.MediaPath != "" {
		a.loadMediaPath(opts.MediaPath)
	}
	return a
}

// Config returns the live grid configuration.
func (a *App) Config() *grid.Config { return a.cfg }

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	defer a.canvas.Close()
	for {
		e := a.window.Event()
		a.explorer.ListenEvents(e)
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.drainResults()
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

// post hands fn to the event loop. Background goroutines use it instead
// of touching UI state directly.
func (a *App) post(fn func()) {
	a.results <- fn
	a.invalidate()
}

func (a *App) drainResults() {
	for {
		select {
		case fn := <-a.results:
			fn()
		default:
			return
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, a.layoutWorkspace),
		layout.Rigid(a.layoutLogSplitter),
		layout.Rigid(a.layoutLogPane),
		layout.Rigid(a.layoutStatusBar),
	)
}

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	if a.openBtn.Clicked(gtx) {
		a.openMediaPicker()
	}
	if a.exportBtn.Clicked(gtx) {
		a.exportSnapshot()
	}
	if a.centerBtn.Clicked(gtx) {
		a.cfg.CenterGrid()
		a.Logf("[INFO] Grid centred")
	}
	if a.resetBtn.Clicked(gtx) {
		resetGrid(a.cfg, a.startPatch)
		a.Logf("[INFO] Grid reset to startup values")
	}

	button := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if icon == nil {
				return material.Button(a.gvTheme.Theme, btn, desc).Layout(gtx)
			}
			ib := material.IconButton(a.gvTheme.Theme, btn, icon, desc)
			ib.Size = unit.Dp(20)
			ib.Inset = layout.UniformInset(unit.Dp(8))
			return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, ib.Layout)
		})
	}
	return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			button(&a.openBtn, a.openIcon, "Open media"),
			button(&a.exportBtn, a.exportIcon, "Export PNG"),
			button(&a.centerBtn, a.centerIcon, "Center grid"),
			button(&a.resetBtn, a.resetIcon, "Reset grid"),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				title := material.H6(a.gvTheme.Theme, "OpenTraceGrid")
				title.Color = a.opaqueFg()
				return title.Layout(gtx)
			}),
		)
	})
}

func (a *App) layoutWorkspace(gtx layout.Context) layout.Dimensions {
	bg := a.gvTheme.Bg2
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(unit.Dp(280))
			gtx.Constraints.Min.X = width
			gtx.Constraints.Max.X = width
			paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, a.layoutSidebar)
		}),
		layout.Flexed(1, a.canvas.Layout),
	)
}

func (a *App) layoutSidebar(gtx layout.Context) layout.Dimensions {
	a.handleEditors(gtx)

	rows := make([]layout.Widget, 0, len(a.sliders)+6)
	for _, s := range a.sliders {
		s := s
		rows = append(rows, func(gtx layout.Context) layout.Dimensions { return s.layout(gtx, a.gvTheme.Theme) })
	}
	rows = append(rows,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return a.field(gtx, "Position X", &a.posX) }),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return a.field(gtx, "Position Y", &a.posY) }),
			)
		},
		a.layoutColorRow,
		func(gtx layout.Context) layout.Dimensions { return a.field(gtx, "Command (e.g. n=12 rot=-15)", &a.commandEd) },
		func(gtx layout.Context) layout.Dimensions {
			if a.applyBtn.Clicked(gtx) {
				a.applyCommand()
			}
			return material.Button(a.gvTheme.Theme, &a.applyBtn, "Apply").Layout(gtx)
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.layoutSettingsSwitch(gtx, "Dark mode", "Switch between light and dark palettes.", &a.darkModeSwitch, a.setDarkMode)
			})
		},
	)

	return material.List(a.gvTheme.Theme, &a.sideList).Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(10)}.Layout(gtx, rows[i])
	})
}

func (a *App) layoutColorRow(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.End}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return a.field(gtx, "Line color", &a.colorEd) }),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if a.colorMenu != nil && a.colorMenuBtn.Clicked(gtx) {
				a.colorMenu.ToggleVisibility(gtx)
			}
			dims := material.Button(a.gvTheme.Theme, &a.colorMenuBtn, "Presets").Layout(gtx)
			if a.colorMenu != nil {
				a.colorMenu.Layout(gtx, a.gvTheme)
			}
			return dims
		}),
	)
}

func (a *App) field(gtx layout.Context, label string, editor *widget.Editor) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.Caption(a.gvTheme.Theme, label).Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(a.gvTheme.Theme, editor, "")
			ed.TextSize = unit.Sp(14)
			return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2)}.Layout(gtx, ed.Layout)
		}),
	)
}

// handleEditors applies submitted fields and refreshes the others from
// the configuration.
func (a *App) handleEditors(gtx layout.Context) {
	submitted := func(ed *widget.Editor) bool {
		hit := false
		for {
			ev, ok := ed.Update(gtx)
			if !ok {
				break
			}
			if _, ok := ev.(widget.SubmitEvent); ok {
				hit = true
			}
		}
		return hit
	}

	if submitted(&a.posX) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(a.posX.Text()), 64); err == nil {
			a.cfg.SetPositionX(v)
		} else {
			a.Logf("[WARN] Position X: %v", err)
		}
	}
	if submitted(&a.posY) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(a.posY.Text()), 64); err == nil {
			a.cfg.SetPositionY(v)
		} else {
			a.Logf("[WARN] Position Y: %v", err)
		}
	}
	if submitted(&a.colorEd) {
		a.cfg.SetLineColor(strings.TrimSpace(a.colorEd.Text()))
	}
	if submitted(&a.commandEd) {
		a.applyCommand()
	}

	syncEditor(gtx, &a.posX, strconv.FormatFloat(a.cfg.PositionX(), 'f', 1, 64))
	syncEditor(gtx, &a.posY, strconv.FormatFloat(a.cfg.PositionY(), 'f', 1, 64))
	syncEditor(gtx, &a.colorEd, a.cfg.LineColor())
}

func syncEditor(gtx layout.Context, ed *widget.Editor, value string) {
	if gtx.Focused(ed) || ed.Text() == value {
		return
	}
	ed.SetText(value)
}

func (a *App) applyCommand() {
	input := strings.TrimSpace(a.commandEd.Text())
	if input == "" {
		return
	}
	p, err := grid.ParsePatch(input)
	if err != nil {
		a.Logf("[WARN] %v", err)
		return
	}
	a.cfg.Apply(p)
	a.commandEd.SetText("")
	a.Logf("[INFO] Applied %q", input)
}

func (a *App) layoutSettingsSwitch(gtx layout.Context, title, subtitle string, control *widget.Bool, onChange func(bool)) layout.Dimensions {
	prev := control.Value
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(material.Body2(a.gvTheme.Theme, title).Layout),
				layout.Rigid(material.Caption(a.gvTheme.Theme, subtitle).Layout),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			sw := material.Switch(a.gvTheme.Theme, control, title)
			d := sw.Layout(gtx)
			if prev != control.Value {
				onChange(control.Value)
			}
			return d
		}),
	)
}

func (a *App) buildColorMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(colorPresets))
	for _, p := range colorPresets {
		preset := p
		swatch := render.ParseColor(preset.value)
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.cfg.SetLineColor(preset.value)
				a.Logf("[INFO] Line color %s", preset.name)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						sz := gtx.Dp(unit.Dp(14))
						paint.FillShape(gtx.Ops, swatch, clip.Rect{Max: image.Pt(sz, sz)}.Op())
						return layout.Dimensions{Size: image.Pt(sz, sz)}
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body1(th.Theme, preset.name)
						if strings.EqualFold(a.cfg.LineColor(), preset.value) {
							lbl.Color = th.Palette.ContrastBg
						}
						return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
					}),
				)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(200)
	return drop
}

func (a *App) openMediaPicker() {
	if a.busy != "" {
		return
	}
	a.busy = "Opening media"
	go func() {
		file, err := a.explorer.ChooseFile(media.Extensions()...)
		if err != nil {
			a.post(func() {
				a.busy = ""
				if !errors.Is(err, explorer.ErrUserDecline) {
					a.Logf("[ERROR] File picker failed: %v", err)
				}
			})
			return
		}
		defer file.Close()

		m, err := media.Decode(file)
		if err == nil {
			if f, ok := file.(*os.File); ok {
				m.Path = f.Name()
			}
		}
		a.post(func() {
			a.busy = ""
			a.mediaLoaded(m, err)
		})
	}()
}

func (a *App) loadMediaPath(path string) {
	a.busy = "Loading " + path
	go func() {
		m, err := media.Load(path)
		a.post(func() {
			a.busy = ""
			a.mediaLoaded(m, err)
		})
	}()
}

func (a *App) mediaLoaded(m *media.Media, err error) {
	if err != nil {
		a.Logf("[MEDIA] Load failed: %v", err)
		return
	}
	a.canvas.SetMedia(m)
	if m.Kind == media.KindVideo {
		a.Logf("[MEDIA] %s has no preview; exports contain the grid only", m.Name())
	}
	a.invalidate()
}

func (a *App) exportSnapshot() {
	if a.busy != "" {
		return
	}
	w, h := a.canvas.LogicalSize()
	scale := a.settings.ExportScale
	if scale <= 0 {
		scale = a.canvas.Density()
	}
	opts := snapshot.Options{Width: w, Height: h, Scale: scale, Background: canvasBg}
	state := grid.NewConfigFrom(a.cfg.State())
	m := a.canvas.Media()
	a.busy = "Exporting"

	go func() {
		err := func() error {
			snap, err := snapshot.Capture(m, state, opts)
			if err != nil {
				return err
			}
			defer snap.Close()
			if snap.Empty() {
				return errEmptyExport
			}

			out, err := a.explorer.CreateFile("grid-snapshot.png")
			if err != nil {
				return err
			}
			if err := snap.EncodePNG(out); err != nil {
				out.Close()
				return fmt.Errorf("encode png: %w", err)
			}
			return out.Close()
		}()
		pw, ph := opts.PixelSize()
		a.post(func() {
			a.busy = ""
			switch {
			case errors.Is(err, explorer.ErrUserDecline):
			case errors.Is(err, errEmptyExport):
				a.Logf("[EXPORT] Canvas has no pixels, nothing exported")
			case err != nil:
				a.Logf("[EXPORT] Failed: %v", err)
			default:
				a.Logf("[EXPORT] Wrote %dx%d PNG", pw, ph)
			}
		})
	}()
}

// resetGrid restores the built-in defaults and then the startup patch.
func resetGrid(cfg *grid.Config, start grid.Patch) {
	cfg.Reset()
	if !start.Empty() {
		cfg.Apply(start)
	}
}

func (a *App) persistSettings() {
	var err error
	if a.settingsPath != "" {
		err = SaveConfigFile(a.settingsPath, a.settings)
	} else {
		err = SaveConfig(a.settings)
	}
	if err != nil {
		a.Logf("[ERROR] Failed to save config: %v", err)
	}
}

func (a *App) layoutLogSplitter(gtx layout.Context) layout.Dimensions {
	height := gtx.Dp(unit.Dp(6))
	if height < 4 {
		height = 4
	}
	size := image.Pt(gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: size}.Op())

	stack := clip.Rect{Max: size}.Push(gtx.Ops)
	pointer.CursorRowResize.Add(gtx.Ops)
	a.logSplitter.Add(gtx.Ops)
	stack.Pop()

	for {
		ev, ok := a.logSplitter.Update(gtx.Metric, gtx.Source, gesture.Vertical)
		if !ok {
			break
		}
		switch ev.Kind {
		case pointer.Press:
			a.logSplitDrag = true
			a.logSplitLastY = ev.Position.Y
		case pointer.Drag:
			if a.logSplitDrag {
				dy := ev.Position.Y - a.logSplitLastY
				a.logSplitLastY = ev.Position.Y
				a.logPaneHeight -= dy
				a.clampLogPaneHeight(gtx)
				a.invalidate()
			}
		case pointer.Release, pointer.Cancel:
			a.logSplitDrag = false
		}
	}
	return layout.Dimensions{Size: size}
}

func (a *App) layoutLogPane(gtx layout.Context) layout.Dimensions {
	a.ensureLogPaneHeight(gtx)
	h := int(a.logPaneHeight)
	gtx.Constraints.Min.Y = h
	gtx.Constraints.Max.Y = h

	size := image.Pt(max(gtx.Constraints.Max.X, 1), max(h, 1))
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: size}.Op())

	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return a.logList.Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
			label := material.Body2(a.gvTheme.Theme, a.logText)
			label.State = &a.logSelectable
			label.WrapPolicy = text.WrapGraphemes
			label.Alignment = text.Start
			label.Font.Typeface = gfont.Typeface("Go Mono")
			if a.monoShaper != nil {
				label.Shaper = a.monoShaper
			}
			label.Color = a.opaqueFg()
			label.SelectionColor = a.selectionColor()
			return label.Layout(gtx)
		})
	})
}

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				msg := "Ready"
				if a.busy != "" {
					dots := int(time.Now().UnixMilli()/500) % 4
					msg = a.busy + strings.Repeat(".", dots)
					gtx.Execute(op.InvalidateCmd{At: gtx.Now.Add(500 * time.Millisecond)})
				} else if hover := a.canvas.HoverText(); hover != "" {
					msg = hover
				}
				return material.Body2(a.gvTheme.Theme, msg).Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				st := a.canvas.Stats()
				status := fmt.Sprintf("%s | n=%d cell=%.0f rot=%.1f° | drawn %d/%d",
					a.canvas.Media(), a.cfg.GridN(), a.cfg.CellSize(), a.cfg.Rotation(), st.Drawn, st.Frames)
				return material.Body2(a.gvTheme.Theme, status).Layout(gtx)
			}),
		)
	})
}

func (a *App) applyPalette() {
	if a.gvTheme == nil {
		return
	}
	if a.darkMode {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 120, G: 150, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
	} else {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
		})
	}
}

func (a *App) setDarkMode(enabled bool) {
	if a.darkMode == enabled {
		return
	}
	a.darkMode = enabled
	a.darkModeSwitch.Value = enabled
	a.applyPalette()
	a.settings.DarkMode = enabled
	a.persistSettings()
	if enabled {
		a.Logf("[INFO] Theme switched to dark mode")
	} else {
		a.Logf("[INFO] Theme switched to light mode")
	}
	a.invalidate()
}

func (a *App) ensureLogPaneHeight(gtx layout.Context) {
	if a.logPaneHeight > 0 {
		return
	}
	a.logPaneHeight = float32(gtx.Dp(unit.Dp(120)))
	a.clampLogPaneHeight(gtx)
}

func (a *App) clampLogPaneHeight(gtx layout.Context) {
	lo := float32(gtx.Dp(unit.Dp(60)))
	hi := float32(gtx.Dp(unit.Dp(360)))
	if a.logPaneHeight < lo {
		a.logPaneHeight = lo
	}
	if a.logPaneHeight > hi {
		a.logPaneHeight = hi
	}
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

// Logf appends a line to the log pane. Call it from the event loop only.
func (a *App) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.log.Debug(msg)
	entry := fmt.Sprintf("[%s] %s", time.Now().Format(time.Stamp), msg)
	a.logs = append(a.logs, entry)
	if len(a.logs) > maxLogLines {
		a.logs = a.logs[len(a.logs)-maxLogLines:]
	}
	a.logText = strings.Join(a.logs, "\n")
	a.logSelectable.SetText(a.logText)
	a.invalidate()
}

func (a *App) opaqueFg() color.NRGBA {
	fg := a.gvTheme.Palette.Fg
	fg.A = 0xFF
	return fg
}

func (a *App) selectionColor() color.NRGBA {
	bg := a.gvTheme.Palette.ContrastBg
	return color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0x88}
}

func filterMonoFaces() []gfont.FontFace {
	var mono []gfont.FontFace
	for _, face := range gofont.Collection() {
		if face.Font.Typeface == gfont.Typeface("Go Mono") {
			mono = append(mono, face)
		}
	}
	return mono
}
