package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/bands/bands"
	"gopkg.in/yaml.v3"
)

// Config represents the complete analysis configuration
type Config struct {
	Symbol    string        `json:"symbol" yaml:"symbol"`
	Months    int           `json:"months" yaml:"months"`
	DataDir   string        `json:"data_dir" yaml:"data_dir"`
	Bands     BandsConfig   `json:"bands" yaml:"bands"`
	Indicator string        `json:"indicator,omitempty" yaml:"indicator,omitempty"`
	Journal   JournalConfig `json:"journal" yaml:"journal"`
	Chart     ChartConfig   `json:"chart" yaml:"chart"`
}

// BandsConfig holds one entry per band family
type BandsConfig struct {
	Ledoux    BandConfig `json:"ledoux" yaml:"ledoux"`
	Percent   BandConfig `json:"percent" yaml:"percent"`
	Donchian  BandConfig `json:"donchian" yaml:"donchian"`
	Keltner   BandConfig `json:"keltner" yaml:"keltner"`
	Bollinger BandConfig `json:"bollinger" yaml:"bollinger"`
	Envelope  BandConfig `json:"envelope" yaml:"envelope"`
}

// BandConfig enables a family and sets its parameters. A nil Width uses the
// family default; an explicit 0 collapses the band onto its middle line.
type BandConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Length  int      `json:"length,omitempty" yaml:"length,omitempty"`
	Width   *float64 `json:"width,omitempty" yaml:"width,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// ChartConfig controls the render document
type ChartConfig struct {
	Out      string  `json:"out,omitempty" yaml:"out,omitempty"`
	BarWidth float64 `json:"bar_width" yaml:"bar_width"`
}

// Band returns the entry for family f.
func (b *BandsConfig) Band(f bands.Family) *BandConfig {
	switch f {
	case bands.Ledoux:
		return &b.Ledoux
	case bands.Percent:
		return &b.Percent
	case bands.Donchian:
		return &b.Donchian
	case bands.Keltner:
		return &b.Keltner
	case bands.Bollinger:
		return &b.Bollinger
	case bands.Envelope:
		return &b.Envelope
	}
	return nil
}

// Enabled lists the enabled families in display order.
func (b *BandsConfig) Enabled() []bands.Family {
	var out []bands.Family
	for _, f := range bands.Families() {
		if b.Band(f).Enabled {
			out = append(out, f)
		}
	}
	return out
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.Months <= 0 {
		return fmt.Errorf("months must be positive")
	}
	enabled := c.Bands.Enabled()
	if len(enabled) == 0 {
		return fmt.Errorf("at least one band must be enabled")
	}
	for _, f := range enabled {
		if err := c.params(f).Validate(f); err != nil {
			return fmt.Errorf("bands.%s: %w", strings.ToLower(f.String()), err)
		}
	}
	if c.Indicator != "" {
		f, err := bands.ParseFamily(c.Indicator)
		if err != nil {
			return fmt.Errorf("indicator: %w", err)
		}
		if !f.HasMiddle() {
			return fmt.Errorf("indicator: %s has no middle band", f)
		}
		if err := c.params(f).Validate(f); err != nil {
			return fmt.Errorf("indicator: %w", err)
		}
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.Dir == "" {
			return fmt.Errorf("journal dir required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Chart.BarWidth < 0 {
		return fmt.Errorf("chart.bar_width must not be negative")
	}
	return nil
}

// params fills unset length/width from the family defaults.
func (c *Config) params(f bands.Family) bands.Params {
	p := bands.DefaultParams(f)
	bc := c.Bands.Band(f)
	if bc.Length != 0 {
		p.Length = bc.Length
	}
	if bc.Width != nil {
		p.Width = *bc.Width
	}
	return p
}

// Request converts the configuration into an analysis request.
func (c *Config) Request() (bands.Request, error) {
	if err := c.Validate(); err != nil {
		return bands.Request{}, err
	}

	r := bands.Request{
		Families: c.Bands.Enabled(),
		Params:   make(map[bands.Family]bands.Params),
		Months:   c.Months,
	}
	if c.Indicator != "" {
		f, err := bands.ParseFamily(c.Indicator)
		if err != nil {
			return bands.Request{}, err
		}
		r.IndicatorFamily = f
	}
	for _, f := range bands.Families() {
		r.Params[f] = c.params(f)
	}
	return r, nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	cfg := &Config{
		Symbol:    "SPY",
		Months:    12,
		DataDir:   "./data",
		Indicator: "bollinger",
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./bands.sqlite",
		},
		Chart: ChartConfig{
			Out:      "./bands.json",
			BarWidth: 1.2,
		},
	}
	for _, f := range bands.Families() {
		p := bands.DefaultParams(f)
		bc := BandConfig{Enabled: true, Length: p.Length}
		if p.Width != 0 {
			bc.Width = width(p.Width)
		}
		*cfg.Bands.Band(f) = bc
	}
	return cfg
}

func width(w float64) *float64 {
	return &w
}
