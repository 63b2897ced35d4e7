package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/iafilius/RubricViewer/src/logging"
	"github.com/iafilius/RubricViewer/src/render"
	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

var (
	log     = logging.New("shell")
	errQuit = errors.New("quit")
)

// commands is the static list of shell commands, used for help and completion.
var commands = []string{
	"toggle", "on", "off", "legacy", "clear", "defaults",
	"list", "show", "render", "json", "zoom", "help", "quit",
}

// Shell holds one selection and redraws the chart into a PNG file after
// every change.
type Shell struct {
	reg     *traces.Registry
	driver  *render.Driver
	charter *render.ImageCharter
	handle  *render.Handle
	out     io.Writer

	pngPath string
	ids     types.IDSet
	legacy  []float64
}

// NewShell returns a shell drawing width×height frames into pngPath. An empty
// pngPath keeps frames in memory only.
func NewShell(reg *traces.Registry, out io.Writer, pngPath string, width, height int) *Shell {
	s := &Shell{
		reg:     reg,
		out:     out,
		pngPath: pngPath,
		handle:  render.NewHandle("rubricshell"),
		ids:     types.NewIDSet(),
	}
	s.charter = render.NewImageCharter(func() (int, int) { return width, height }, s.writeFrame)
	s.driver = render.NewDriver(reg, s.charter)
	return s
}

// Selection implements render.SelectionSource.
func (s *Shell) Selection() traces.Selection {
	return traces.Selection{IDs: s.ids.Sorted(), Legacy: append([]float64(nil), s.legacy...)}
}

func (s *Shell) writeFrame(_ *render.Handle, img image.Image) {
	if s.pngPath == "" {
		return
	}
	if err := writePNG(s.pngPath, img); err != nil {
		log.Errorf("%v", err)
	}
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exec runs one command line. It returns errQuit for quit.
func (s *Shell) Exec(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return errQuit

	case "help", "h", "?":
		s.printHelp()

	case "toggle", "t":
		if len(args) == 0 {
			return fmt.Errorf("usage: toggle <curve-id>...")
		}
		for _, a := range args {
			id := types.CurveID(a)
			if err := s.known(id); err != nil {
				return err
			}
			if s.ids.Has(id) {
				s.ids.Remove(id)
			} else {
				s.ids.Add(id)
			}
		}
		return s.render()

	case "on", "off":
		if len(args) == 0 {
			return fmt.Errorf("usage: %s <curve-id>...", cmd)
		}
		for _, a := range args {
			id := types.CurveID(a)
			if err := s.known(id); err != nil {
				return err
			}
			if cmd == "on" {
				s.ids.Add(id)
			} else {
				s.ids.Remove(id)
			}
		}
		return s.render()

	case "legacy":
		return s.handleLegacy(args)

	case "clear", "defaults":
		s.ids = types.NewIDSet()
		s.legacy = nil
		fmt.Fprintln(s.out, "Selection cleared; showing default curves.")
		return s.render()

	case "list", "ls":
		s.printList()

	case "show":
		fmt.Fprintln(s.out, strings.Join(idStrings(traces.IDs(traces.Build(s.reg, s.Selection()))), " "))

	case "render", "r":
		return s.render()

	case "json":
		p := &render.PlotlyCharter{W: s.out, Indent: len(args) > 0 && args[0] == "-indent"}
		return p.Initialize(s.handle, traces.Build(s.reg, s.Selection()), s.driver.Layout, s.driver.Config)

	case "zoom", "z":
		return s.handleZoom(args)

	default:
		return fmt.Errorf("unknown command: %s (try help)", cmd)
	}
	return nil
}

func (s *Shell) known(id types.CurveID) error {
	if _, ok := s.reg.Lookup(id); !ok {
		return fmt.Errorf("unknown curve %q (see list)", id)
	}
	return nil
}

// handleLegacy adds bare exponents the way the older preset list did; each
// value v selects curve k-v when the registry has it.
func (s *Shell) handleLegacy(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "legacy presets: %v\n", s.legacy)
		return nil
	}
	if args[0] == "clear" {
		s.legacy = nil
		return s.render()
	}
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("legacy %q: %w", a, err)
		}
		s.legacy = append(s.legacy, v)
		if _, ok := s.reg.Lookup(traces.LegacyID(v)); !ok {
			fmt.Fprintf(s.out, "note: no curve %s; value kept but not drawn\n", traces.LegacyID(v))
		}
	}
	return s.render()
}

func (s *Shell) handleZoom(args []string) error {
	if !s.handle.Initialized() {
		if err := s.render(); err != nil {
			return err
		}
	}
	if len(args) == 0 {
		v, _ := s.charter.Viewport(s.handle)
		fmt.Fprintf(s.out, "x [%.3f, %.3f]  y [%.3f, %.3f]\n", v.XMin, v.XMax, v.YMin, v.YMax)
		return nil
	}
	switch args[0] {
	case "in":
		return s.charter.Zoom(s.handle, 0.5)
	case "out":
		return s.charter.Zoom(s.handle, 2)
	case "reset":
		return s.charter.ResetZoom(s.handle)
	}
	if len(args) != 4 {
		return fmt.Errorf("usage: zoom in|out|reset|<x0> <x1> <y0> <y1>")
	}
	var vals [4]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("zoom %q: %w", a, err)
		}
		vals[i] = v
	}
	if vals[0] >= vals[1] || vals[2] >= vals[3] {
		return fmt.Errorf("zoom window must have x0<x1 and y0<y1")
	}
	return s.charter.SetViewport(s.handle, render.Viewport{XMin: vals[0], XMax: vals[1], YMin: vals[2], YMax: vals[3]})
}

func (s *Shell) render() error {
	return s.driver.Render(s.handle, s.Selection())
}

func (s *Shell) printList() {
	drawn := types.NewIDSet(traces.IDs(traces.Build(s.reg, s.Selection()))...)
	for _, id := range s.reg.Order() {
		mark := " "
		if s.ids.Has(id) {
			mark = "x"
		}
		suffix := ""
		if drawn.Has(id) && !s.ids.Has(id) {
			suffix = "  (drawn)"
		}
		fmt.Fprintf(s.out, "[%s] %-14s%s\n", mark, id, suffix)
	}
}

func (s *Shell) printHelp() {
	sorted := append([]string(nil), commands...)
	sort.Strings(sorted)
	fmt.Fprintln(s.out, "Commands: "+strings.Join(sorted, ", "))
	fmt.Fprintln(s.out, "  toggle|on|off <id>...   change the selection (ids from list)")
	fmt.Fprintln(s.out, "  legacy <k>... | clear   select power curves by bare exponent")
	fmt.Fprintln(s.out, "  clear|defaults          empty selection (default curves)")
	fmt.Fprintln(s.out, "  list|show               all curves with marks | ids being drawn")
	fmt.Fprintln(s.out, "  render                  redraw the PNG")
	fmt.Fprintln(s.out, "  zoom in|out|reset|x0 x1 y0 y1")
	fmt.Fprintln(s.out, "  json [-indent]          print the Plotly figure")
	fmt.Fprintln(s.out, "  help|quit")
}

func idStrings(ids []types.CurveID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
