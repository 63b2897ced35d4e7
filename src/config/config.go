// Package config handles rubric viewer configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/RubricViewer/src/logging"
	"github.com/iafilius/RubricViewer/src/rubric"
	"github.com/iafilius/RubricViewer/src/traces"
	"github.com/iafilius/RubricViewer/src/types"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Chart     ChartConfig     `yaml:"chart"`
	Selection SelectionConfig `yaml:"selection"`
	Curves    CurvesConfig    `yaml:"curves"`
	Output    OutputConfig    `yaml:"output"`
}

// ChartConfig holds chart canvas settings.
type ChartConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	ShowHints bool   `yaml:"show_hints"`
}

// SelectionConfig is the initial curve selection. Empty means defaults.
type SelectionConfig struct {
	Curves []string `yaml:"curves"`
	// Exponents from the older "k" preset list; each maps to curve k-<v>.
	LegacyExponents []float64 `yaml:"legacy_exponents"`
}

// PiecewiseConfig holds the piecewise hybrid slopes.
type PiecewiseConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
}

// BandConfig holds the band-pass hybrid parameters.
type BandConfig struct {
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`
	Eps   float64 `yaml:"eps"`
}

// CurvesConfig holds curve parameters.
type CurvesConfig struct {
	Powers     []float64       `yaml:"powers"`
	Piecewise  PiecewiseConfig `yaml:"piecewise"`
	Composite  []rubric.Part   `yaml:"composite"`
	Band       BandConfig      `yaml:"band"`
	Points     int             `yaml:"points"`
	BandPoints int             `yaml:"band_points"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the default configuration.
func Default() *Config {
	p := traces.DefaultParams()
	return &Config{
		LogLevel: "info",
		Chart: ChartConfig{
			Width:     900,
			Height:    900,
			Title:     "Normalized Power Rubric for Different k",
			ShowHints: true,
		},
		Curves: CurvesConfig{
			Powers:     p.Exponents,
			Piecewise:  PiecewiseConfig{A: p.Piecewise.A, B: p.Piecewise.B},
			Composite:  p.Parts,
			Band:       BandConfig{Mu: p.Band.Mu, Sigma: p.Band.Sigma, Eps: p.Band.Eps},
			Points:     p.Points,
			BandPoints: p.Band.N,
		},
		Output: OutputConfig{
			Dir: "./screenshots",
		},
	}
}

// Load loads configuration from a file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the log level, the canvas size and every curve parameter.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	for _, v := range c.Selection.LegacyExponents {
		if err := rubric.ValidateExponent(v); err != nil {
			return fmt.Errorf("legacy_exponents: %w", err)
		}
	}
	return c.Params().Validate()
}

// Params converts the curves section into registry parameters.
func (c *Config) Params() traces.Params {
	return traces.Params{
		Exponents: append([]float64(nil), c.Curves.Powers...),
		Piecewise: rubric.Piecewise{A: c.Curves.Piecewise.A, B: c.Curves.Piecewise.B},
		Parts:     append([]rubric.Part(nil), c.Curves.Composite...),
		Band: rubric.BandPass{
			Mu:    c.Curves.Band.Mu,
			Sigma: c.Curves.Band.Sigma,
			Eps:   c.Curves.Band.Eps,
			N:     c.Curves.BandPoints,
		},
		Points: c.Curves.Points,
	}
}

// InitialSelection converts the selection section into a resolver input.
func (c *Config) InitialSelection() traces.Selection {
	sel := traces.Selection{Legacy: append([]float64(nil), c.Selection.LegacyExponents...)}
	for _, id := range c.Selection.Curves {
		sel.IDs = append(sel.IDs, types.CurveID(id))
	}
	return sel
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if _, err := os.Stat("rubric.yaml"); err == nil {
		return "rubric.yaml"
	}
	if _, err := os.Stat("config/rubric.yaml"); err == nil {
		return "config/rubric.yaml"
	}
	return "rubric.yaml"
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := Default()
	return cfg.Save(path)
}
