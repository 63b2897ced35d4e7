package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iafilius/RubricViewer/src/logging"
	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

var log = logging.New("render")

// ErrNoBackend is returned by a charter that has no backing chart engine,
// such as a nil *ImageCharter.
var ErrNoBackend = errors.New("render: charting backend not available")

// Handle is the chart instance a driver renders into. It is created once per
// render target and passed explicitly; its ID stays the same across updates so
// backends can keep per-chart state (zoom) keyed by it.
type Handle struct {
	ID     uuid.UUID
	Target string

	initialized bool
	series      []types.Series
	renders     int
}

// NewHandle returns an uninitialized handle for the named target.
func NewHandle(target string) *Handle {
	return &Handle{ID: uuid.New(), Target: target}
}

// Initialized reports whether the first render has happened.
func (h *Handle) Initialized() bool { return h.initialized }

// Series returns the series of the last successful render.
func (h *Handle) Series() []types.Series { return h.series }

// Renders counts successful renders.
func (h *Handle) Renders() int { return h.renders }

// Charter is a charting backend. Initialize creates the chart for a handle,
// Update replaces its data while keeping the chart's identity and view state,
// Resize re-lays it out for a new container size.
type Charter interface {
	Initialize(h *Handle, series []types.Series, layout Layout, cfg RenderConfig) error
	Update(h *Handle, series []types.Series, layout Layout, cfg RenderConfig) error
	Resize(h *Handle) error
}

// SelectionSource is the selection UI as seen by the driver.
type SelectionSource interface {
	Selection() traces.Selection
}

// SelectionFunc adapts a plain function to SelectionSource.
type SelectionFunc func() traces.Selection

func (f SelectionFunc) Selection() traces.Selection { return f() }

// Driver resolves a selection, assembles its series and hands them to the Charter.
type Driver struct {
	Registry *traces.Registry
	Charter  Charter
	Layout   Layout
	Config   RenderConfig
}

// NewDriver uses the default layout and render config.
func NewDriver(reg *traces.Registry, c Charter) *Driver {
	return &Driver{
		Registry: reg,
		Charter:  c,
		Layout:   DefaultLayout(),
		Config:   DefaultRenderConfig(),
	}
}

// Render recomputes every series for sel and draws them into h. A nil handle
// (no render target) is a no-op; a missing Charter is logged and skipped.
func (d *Driver) Render(h *Handle, sel traces.Selection) error {
	if h == nil {
		log.Debugf("no chart target; nothing to draw")
		return nil
	}
	if d.Charter == nil {
		log.Errorf("charting backend not available; skipping render of %q", h.Target)
		return nil
	}
	defer log.TimeTrack(time.Now(), "render "+h.Target)

	series := traces.Build(d.Registry, sel)
	var err error
	if h.initialized {
		err = d.Charter.Update(h, series, d.Layout, d.Config)
	} else {
		err = d.Charter.Initialize(h, series, d.Layout, d.Config)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", h.Target, err)
	}
	h.initialized = true
	h.series = series
	h.renders++
	log.Debugf("%s: %d series %v", h.Target, len(series), traces.IDs(series))
	return nil
}

// Resize forwards a viewport change to the backend for charts that exist.
func (d *Driver) Resize(h *Handle) error {
	if h == nil || !h.initialized || d.Charter == nil {
		return nil
	}
	if err := d.Charter.Resize(h); err != nil {
		return fmt.Errorf("resize %s: %w", h.Target, err)
	}
	return nil
}

// Bind returns the callbacks to hook up to the selection-change and
// viewport-resize notifications. Errors are logged; the callbacks never panic
// on a failed render.
func (d *Driver) Bind(h *Handle, src SelectionSource) (onChange func(), onResize func()) {
	onChange = func() {
		var sel traces.Selection
		if src != nil {
			sel = src.Selection()
		}
		if err := d.Render(h, sel); err != nil {
			log.Errorf("%v", err)
		}
	}
	onResize = func() {
		if err := d.Resize(h); err != nil {
			log.Errorf("%v", err)
		}
	}
	return onChange, onResize
}
