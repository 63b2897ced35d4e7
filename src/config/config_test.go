package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iafilius/RubricViewer/src/rubric"
	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestDefaultMatchesRegistryDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	reg, err := traces.NewRegistry(cfg.Params())
	if err != nil {
		t.Fatalf("registry from defaults: %v", err)
	}
	want := traces.Default().Order()
	got := reg.Order()
	if len(got) != len(want) {
		t.Fatalf("order len %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d]=%s want %s", i, got[i], want[i])
		}
	}
	if !cfg.InitialSelection().Empty() {
		t.Fatalf("default selection should be empty (resolver defaults)")
	}
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `log_level: debug
selection:
  curves: [hyb-band, baseline]
  legacy_exponents: [2]
curves:
  powers: [0.5, 4]
  band:
    mu: 0.7
    sigma: 0.05
    eps: 0.01
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.Chart.Width != 900 || cfg.Curves.Points != rubric.DefaultPoints {
		t.Errorf("defaults lost: %+v %+v", cfg.Chart, cfg.Curves)
	}
	p := cfg.Params()
	if len(p.Exponents) != 2 || p.Exponents[1] != 4 {
		t.Errorf("exponents = %v", p.Exponents)
	}
	if p.Band.Mu != 0.7 || p.Band.N != rubric.DefaultBandPoints {
		t.Errorf("band = %+v", p.Band)
	}
	sel := cfg.InitialSelection()
	ids := traces.Resolve(sel)
	for _, id := range []types.CurveID{"hyb-band", "baseline", "k-2"} {
		if !ids.Has(id) {
			t.Errorf("resolved selection missing %s: %v", id, ids.Sorted())
		}
	}
}

func TestLoadedPowersDrawInAscendingOrder(t *testing.T) {
	path := writeConfig(t, "curves:\n  powers: [3, 2, 1, 0.5, 0.333]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg, err := traces.NewRegistry(cfg.Params())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	got := traces.IDs(traces.Assemble(reg, types.NewIDSet("k-1", "k-3", "baseline")))
	want := []types.CurveID{"k-1", "k-3", "baseline"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if first := reg.Order()[0]; first != "k-0.333" {
		t.Fatalf("first curve %s, want k-0.333", first)
	}
}

func TestLoadRejectsInvalidExponent(t *testing.T) {
	path := writeConfig(t, "curves:\n  powers: [1, -2]\n")
	_, err := Load(path)
	if !errors.Is(err, rubric.ErrInvalidExponent) {
		t.Fatalf("expected ErrInvalidExponent, got %v", err)
	}
}

func TestLoadRejectsEmptyComposite(t *testing.T) {
	path := writeConfig(t, "curves:\n  composite: []\n")
	_, err := Load(path)
	if !errors.Is(err, rubric.ErrEmptyParts) {
		t.Fatalf("expected ErrEmptyParts, got %v", err)
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: chatty\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoadYAMLParseError(t *testing.T) {
	path := writeConfig(t, "chart:\n  width: [\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Chart.Height != 900 {
		t.Fatalf("unexpected config %+v", cfg.Chart)
	}
	if cfg, err = LoadOrDefault(""); err != nil || cfg == nil {
		t.Fatalf("empty path: %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rubric.yaml")
	cfg := Default()
	cfg.Selection.Curves = []string{"k-3"}
	cfg.Curves.Piecewise.A = 0.4
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(back.Selection.Curves) != 1 || back.Selection.Curves[0] != "k-3" {
		t.Errorf("selection = %v", back.Selection.Curves)
	}
	if back.Curves.Piecewise.A != 0.4 || len(back.Curves.Composite) != 3 {
		t.Errorf("curves = %+v", back.Curves)
	}
}

func TestInitConfigKeepsExistingFile(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")
	if err := InitConfig(path); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := Load(path)
	if err != nil || cfg.LogLevel != "warn" {
		t.Fatalf("existing file overwritten: %v %+v", err, cfg)
	}
}
