package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"os"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/RubricViewer/cmd/rubricviewer/uihelpers"
	"github.com/iafilius/RubricViewer/src/config"
	"github.com/iafilius/RubricViewer/src/logging"
	"github.com/iafilius/RubricViewer/src/render"
	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

// Space reserved around the chart for the curve list and the control bar.
const (
	sidebarWidth   = 260
	controlsHeight = 110
)

var log = logging.New("viewer")

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.Config

	reg     *traces.Registry
	driver  *render.Driver
	charter *render.ImageCharter
	handle  *render.Handle

	// selection
	selected types.IDSet
	legacy   []float64
	// suppresses per-check renders while checks are set in bulk
	bulk bool

	showHints bool

	// widgets
	checks   map[types.CurveID]*widget.Check
	chartImg *canvas.Image
	readout  *widget.Label

	onChange func()
	onResize func()
}

// Selection implements render.SelectionSource.
func (s *uiState) Selection() traces.Selection {
	return traces.Selection{IDs: s.selected.Sorted(), Legacy: append([]float64(nil), s.legacy...)}
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var (
		configFlag      string
		screenshotsFlag bool
		outFlag         string
		logLevelFlag    string
	)
	flag.StringVar(&configFlag, "config", config.DefaultConfigPath(), "Path to rubric.yaml")
	flag.BoolVar(&screenshotsFlag, "screenshots", false, "Render the screenshot set headlessly and exit")
	flag.StringVar(&outFlag, "out", "", "Output directory for -screenshots (default: output.dir from config)")
	flag.StringVar(&logLevelFlag, "log-level", "", "Override log_level (debug|info|warn|error)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if !logging.SetLogLevel(cfg.LogLevel) {
		log.Warnf("unknown log level %q, keeping info", cfg.LogLevel)
	}

	if screenshotsFlag {
		if _, err := RunScreenshotsMode(cfg, outFlag); err != nil {
			log.Errorf("screenshots: %v", err)
			os.Exit(1)
		}
		return
	}

	reg, err := traces.NewRegistry(cfg.Params())
	if err != nil {
		fmt.Fprintf(os.Stderr, "curves: %v\n", err)
		os.Exit(2)
	}

	a := app.NewWithID("com.rubric.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Rubric Viewer")
	w.Resize(fyne.NewSize(float32(cfg.Chart.Width+sidebarWidth), float32(cfg.Chart.Height+controlsHeight)))

	state := &uiState{
		app:       a,
		window:    w,
		cfg:       cfg,
		reg:       reg,
		handle:    render.NewHandle("rubric-chart"),
		checks:    map[types.CurveID]*widget.Check{},
		showHints: a.Preferences().BoolWithFallback("showHints", cfg.Chart.ShowHints),
	}
	loadSelectionPrefs(state)

	state.chartImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	state.chartImg.FillMode = canvas.ImageFillContain
	state.chartImg.SetMinSize(fyne.NewSize(uihelpers.MinChartSide, uihelpers.MinChartSide))
	state.readout = widget.NewLabel("")

	state.charter = render.NewImageCharter(func() (int, int) {
		c := w.Canvas()
		if c == nil {
			return cfg.Chart.Width, cfg.Chart.Height
		}
		sz := c.Size()
		return uihelpers.ComputeChartDimensions(int(sz.Width)-sidebarWidth, int(sz.Height)-controlsHeight)
	}, func(_ *render.Handle, img image.Image) {
		state.chartImg.Image = img
		state.chartImg.Refresh()
	})
	state.charter.ShowHints = state.showHints
	state.driver = render.NewDriver(reg, state.charter)
	if cfg.Chart.Title != "" {
		state.driver.Layout.Title = cfg.Chart.Title
	}
	state.onChange, state.onResize = state.driver.Bind(state.handle, state)

	// curve list in display order
	curveBox := container.NewVBox(widget.NewLabelWithStyle("Curves", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, id := range reg.Order() {
		id := id
		chk := widget.NewCheck(curveLabel(reg, id), nil)
		chk.SetChecked(state.selected.Has(id))
		chk.OnChanged = func(b bool) {
			if b {
				state.selected.Add(id)
			} else {
				state.selected.Remove(id)
			}
			if state.bulk {
				return
			}
			savePrefs(state)
			state.onChange()
		}
		state.checks[id] = chk
		curveBox.Add(chk)
	}
	defaultsBtn := widget.NewButton("Defaults", func() { applyDefaults(state) })

	legacyEntry := widget.NewEntry()
	legacyEntry.SetPlaceHolder("k presets, e.g. 0.5,2")
	legacyEntry.SetText(uihelpers.FormatLegacyPresets(state.legacy))
	legacyEntry.OnSubmitted = func(s string) {
		vs, err := uihelpers.ParseLegacyPresets(s)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		state.legacy = vs
		savePrefs(state)
		state.onChange()
	}

	sidebar := container.NewVBox(curveBox, defaultsBtn, widget.NewSeparator(), widget.NewLabel("Legacy k presets"), legacyEntry)

	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		state.charter.ShowHints = b
		savePrefs(state)
		state.onResize()
	}
	zoomIn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { zoomChart(state, 0.5) })
	zoomOut := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { zoomChart(state, 2) })
	zoomReset := widget.NewButtonWithIcon("", theme.ZoomFitIcon(), func() {
		if err := state.charter.ResetZoom(state.handle); err != nil {
			log.Debugf("reset zoom: %v", err)
		}
	})
	exportBtn := widget.NewButtonWithIcon("Export PNG", theme.DocumentSaveIcon(), func() { exportChartPNG(state) })

	controls := container.NewHBox(zoomIn, zoomOut, zoomReset, hintsChk, exportBtn)
	chartArea := container.NewBorder(nil, state.readout, nil, nil, newChartHover(state))
	content := container.NewBorder(controls, nil, container.NewVScroll(sidebar), nil, chartArea)
	w.SetContent(content)

	// Redraw the chart on window resize so it tracks the available space
	if w.Canvas() != nil {
		prev := w.Canvas().Size()
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					sz := c.Size()
					if sz != prev {
						prev = sz
						fyne.Do(func() { state.onResize() })
					}
				}
			}
		}()
	}

	state.onChange()
	w.ShowAndRun()
}

// curveLabel is the legend label of id, or the id itself for unlabelled curves.
func curveLabel(reg *traces.Registry, id types.CurveID) string {
	f, ok := reg.Lookup(id)
	if !ok {
		return string(id)
	}
	if l := f().Label; l != "" {
		return l
	}
	return string(id)
}

// applyDefaults checks exactly the default curves and clears legacy presets.
func applyDefaults(state *uiState) {
	defaults := types.NewIDSet(traces.DefaultIDs...)
	state.bulk = true
	for id, chk := range state.checks {
		chk.SetChecked(defaults.Has(id))
	}
	state.bulk = false
	state.legacy = nil
	savePrefs(state)
	state.onChange()
}

func zoomChart(state *uiState, factor float64) {
	if err := state.charter.Zoom(state.handle, factor); err != nil {
		log.Debugf("zoom: %v", err)
	}
}

// export PNG
func exportChartPNG(state *uiState) {
	img := state.charter.Image(state.handle)
	if img == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("rubric.png")
	fs.Show()
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("curves", uihelpers.EncodeCurveIDs(state.selected.Sorted()))
	prefs.SetString("kPresets", uihelpers.FormatLegacyPresets(state.legacy))
	prefs.SetBool("showHints", state.showHints)
}

// loadSelectionPrefs restores the last selection, falling back to the config
// and then to the default curves so the check boxes show what is drawn.
func loadSelectionPrefs(state *uiState) {
	prefs := state.app.Preferences()
	cfgSel := state.cfg.InitialSelection()
	ids := uihelpers.DecodeCurveIDs(prefs.StringWithFallback("curves", uihelpers.EncodeCurveIDs(cfgSel.IDs)))
	if len(ids) == 0 {
		ids = traces.DefaultIDs
	}
	state.selected = types.NewIDSet(ids...)

	raw := prefs.StringWithFallback("kPresets", uihelpers.FormatLegacyPresets(cfgSel.Legacy))
	vs, err := uihelpers.ParseLegacyPresets(raw)
	if err != nil {
		log.Warnf("ignoring stored k presets %q: %v", raw, err)
		vs = nil
	}
	state.legacy = vs
}

// chartHover shows the chart image and reports the nearest curve point
// under the pointer.
type chartHover struct {
	widget.BaseWidget
	state *uiState
}

func newChartHover(state *uiState) *chartHover {
	c := &chartHover{state: state}
	c.ExtendBaseWidget(c)
	return c
}

func (c *chartHover) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.state.chartImg)
}

func (c *chartHover) MouseIn(*desktop.MouseEvent) {}

func (c *chartHover) MouseMoved(ev *desktop.MouseEvent) {
	s := c.state
	img := s.charter.Image(s.handle)
	view, ok := s.charter.Viewport(s.handle)
	if img == nil || !ok {
		return
	}
	b := img.Bounds()
	sz := c.Size()
	dx, dy, _, _, scale := uihelpers.ComputeContainRect(float32(b.Dx()), float32(b.Dy()), sz.Width, sz.Height)
	if scale <= 0 {
		return
	}
	px := (ev.Position.X - dx) / scale
	py := (ev.Position.Y - dy) / scale
	plot := render.PlotArea(s.handle.Series(), s.driver.Layout, b.Dx(), b.Dy())
	x, y, inside := uihelpers.PixelToData(px, py, plot, view.XMin, view.XMax, view.YMin, view.YMax)
	if !inside {
		s.readout.SetText("")
		return
	}
	if label, p, found := uihelpers.NearestSample(s.handle.Series(), x, y); found {
		s.readout.SetText(uihelpers.HoverText(label, p))
	}
}

func (c *chartHover) MouseOut() { c.state.readout.SetText("") }

var _ desktop.Hoverable = (*chartHover)(nil)
