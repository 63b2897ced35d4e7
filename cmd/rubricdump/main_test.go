package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/RubricViewer/src/render"
)

func TestDumpDefaultFigure(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	var fig render.PlotlyFigure
	if err := json.Unmarshal(out.Bytes(), &fig); err != nil {
		t.Fatalf("figure: %v", err)
	}
	if len(fig.Data) != 7 || fig.Data[6].ID != "baseline" {
		t.Fatalf("default figure has %d traces", len(fig.Data))
	}
	if fig.Layout == nil || fig.Layout.Title != "Normalized Power Rubric for Different k" {
		t.Fatalf("layout %+v", fig.Layout)
	}
}

func TestDumpCurvesAndLegacyMerge(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-curves", "hyb-band, baseline", "-legacy", "0.5,2", "-summary"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "Total curves: 4" {
		t.Fatalf("summary header %q", lines[0])
	}
	order := []string{"k-0.5", "k-2", "hyb-band", "baseline"}
	for i, id := range order {
		if !strings.HasPrefix(lines[i+1], id+"\t") {
			t.Fatalf("line %d = %q, want %s first", i+1, lines[i+1], id)
		}
	}
	if !strings.Contains(lines[3], "Hybrid (band 0.66–0.84)") {
		t.Fatalf("band label missing: %q", lines[3])
	}
	if !strings.Contains(lines[4], "y(0.500)=0.500") {
		t.Fatalf("baseline midpoint: %q", lines[4])
	}
}

func TestDumpBadLegacyValue(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-legacy", "two"}, &out, &errOut); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}

func TestDumpInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	if err := os.WriteFile(path, []byte("curves:\n  powers: [0]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	if code := run([]string{"-config", path}, &out, &errOut); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "exponent") {
		t.Fatalf("stderr %q", errOut.String())
	}
}
