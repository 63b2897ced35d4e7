// Command rubricdump prints the Plotly figure for a curve selection, or a
// short per-curve summary with -summary.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iafilius/RubricViewer/src/config"
	"github.com/iafilius/RubricViewer/src/render"
	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rubricdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath string
		curves     string
		legacy     string
		indent     bool
		summary    bool
	)
	fs.StringVar(&configPath, "config", "", "Path to rubric.yaml (defaults when empty)")
	fs.StringVar(&curves, "curves", "", "Comma separated curve ids (empty: config selection or defaults)")
	fs.StringVar(&legacy, "legacy", "", "Comma separated bare exponents, each selecting k-<v>")
	fs.BoolVar(&indent, "indent", false, "Indent the JSON output")
	fs.BoolVar(&summary, "summary", false, "Print one line per drawn curve instead of JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	reg, err := traces.NewRegistry(cfg.Params())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	sel := cfg.InitialSelection()
	if curves != "" {
		sel.IDs = nil
		for _, c := range strings.Split(curves, ",") {
			if c = strings.TrimSpace(c); c != "" {
				sel.IDs = append(sel.IDs, types.CurveID(c))
			}
		}
	}
	if legacy != "" {
		sel.Legacy = nil
		for _, v := range strings.Split(legacy, ",") {
			k, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				fmt.Fprintf(stderr, "error: -legacy %q: %v\n", v, err)
				return 2
			}
			sel.Legacy = append(sel.Legacy, k)
		}
	}

	if summary {
		series := traces.Build(reg, sel)
		fmt.Fprintf(stdout, "Total curves: %d\n", len(series))
		for _, s := range series {
			fmt.Fprintf(stdout, "%s\t%s\t%d points\t%s\n", s.ID, s.Label, len(s.Points), midValue(s))
		}
		return 0
	}

	layout := render.DefaultLayout()
	if cfg.Chart.Title != "" {
		layout.Title = cfg.Chart.Title
	}
	d := render.NewDriver(reg, &render.PlotlyCharter{W: stdout, Indent: indent})
	d.Layout = layout
	if err := d.Render(render.NewHandle("rubric-chart"), sel); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// midValue reports the payout of the sample nearest x=0.5.
func midValue(s types.Series) string {
	if len(s.Points) == 0 {
		return "-"
	}
	best := s.Points[0]
	for _, p := range s.Points[1:] {
		if math.Abs(p.X-0.5) < math.Abs(best.X-0.5) {
			best = p
		}
	}
	return fmt.Sprintf("y(%.3f)=%.3f", best.X, best.Y)
}
