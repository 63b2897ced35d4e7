package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/iafilius/RubricViewer/src/config"
	"github.com/iafilius/RubricViewer/src/logging"
	"github.com/iafilius/RubricViewer/src/render"
	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

// shot is one headless render: a selection and an optional zoomed window.
type shot struct {
	name string
	sel  traces.Selection
	view *render.Viewport
}

// PlotlyFigureFile is written next to the PNGs for the web page.
const PlotlyFigureFile = "rubric_plotly.json"

func screenshotSet(reg *traces.Registry) []shot {
	var powers []types.CurveID
	for _, id := range reg.Order() {
		if strings.HasPrefix(string(id), "k-") {
			powers = append(powers, id)
		}
	}
	return []shot{
		{name: "rubric_default.png"},
		{name: "rubric_all.png", sel: traces.Selection{IDs: reg.Order()}},
		{name: "rubric_powers.png", sel: traces.Selection{IDs: append(powers, types.IDBaseline)}},
		{name: "rubric_hybrids.png", sel: traces.Selection{IDs: []types.CurveID{
			types.IDHybComposite, types.IDHybPiecewise, types.IDHybExotic, types.IDHybBand, types.IDBaseline,
		}}},
		{name: "rubric_band_zoom.png", sel: traces.Selection{IDs: []types.CurveID{types.IDHybBand, types.IDPower3}},
			view: &render.Viewport{XMin: 0.55, XMax: 0.95, YMin: 0.4, YMax: 0.8}},
	}
}

// RunScreenshotsMode renders a curated set of charts and writes them as PNGs
// under outDir, plus the Plotly figure of the configured selection. It runs
// headlessly without creating a UI window and returns the written paths.
func RunScreenshotsMode(cfg *config.Config, outDir string) ([]string, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	reg, err := traces.NewRegistry(cfg.Params())
	if err != nil {
		return nil, fmt.Errorf("build curves: %w", err)
	}
	layout := render.DefaultLayout()
	if cfg.Chart.Title != "" {
		layout.Title = cfg.Chart.Title
	}

	var written []string
	for _, item := range screenshotSet(reg) {
		charter := render.NewImageCharter(func() (int, int) { return cfg.Chart.Width, cfg.Chart.Height }, nil)
		d := render.NewDriver(reg, charter)
		d.Layout = layout
		h := render.NewHandle(item.name)
		if err := d.Render(h, item.sel); err != nil {
			return written, err
		}
		if item.view != nil {
			if err := charter.SetViewport(h, *item.view); err != nil {
				return written, err
			}
		}
		img := charter.Image(h)
		if img == nil {
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return written, fmt.Errorf("png encode %s: %w", item.name, err)
		}
		outPath := filepath.Join(outDir, item.name)
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		written = append(written, outPath)
	}

	var fig bytes.Buffer
	d := render.NewDriver(reg, &render.PlotlyCharter{W: &fig, Indent: true})
	d.Layout = layout
	if err := d.Render(render.NewHandle("rubric-chart"), cfg.InitialSelection()); err != nil {
		return written, err
	}
	figPath := filepath.Join(outDir, PlotlyFigureFile)
	if err := os.WriteFile(figPath, fig.Bytes(), 0o644); err != nil {
		return written, fmt.Errorf("write %s: %w", figPath, err)
	}
	written = append(written, figPath)
	log.Infof("screenshots: wrote %d files to %s", len(written), outDir)
	return written, nil
}
