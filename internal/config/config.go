package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/centsible-dev/centsible/internal/decode"
)

// Config represents the top-level centsible.yaml configuration.
type Config struct {
	Profile    ProfileConfig          `yaml:"profile"`
	Thresholds ThresholdsConfig       `yaml:"thresholds"`
	Trends     TrendsConfig           `yaml:"trends"`
	Git        GitConfig              `yaml:"git"`
	Presets    []decode.ColumnMapping `yaml:"presets,omitempty"`
}

// ProfileConfig identifies the budget profile.
type ProfileConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// ThresholdsConfig controls which suggestions surface during review.
type ThresholdsConfig struct {
	AutoAccept float64 `yaml:"auto_accept"`
	ReviewFlag float64 `yaml:"review_flag"`
}

// TrendsConfig controls the budget-trend miner.
type TrendsConfig struct {
	WindowMonths int `yaml:"window_months"`
}

// GitConfig controls git integration for the profile directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a centsible.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new profile.
func Default(profileName string) *Config {
	return &Config{
		Profile: ProfileConfig{
			Name:     profileName,
			Currency: "USD",
		},
		Thresholds: ThresholdsConfig{
			AutoAccept: 0.95,
			ReviewFlag: 0.70,
		},
		Trends: TrendsConfig{
			WindowMonths: 6,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Centsible",
			AuthorEmail: "robot@centsible.dev",
		},
	}
}

// Registry builds the decoder registry with any user preset overrides
// layered over the built-ins. A preset sharing a built-in name replaces
// it.
func (c *Config) Registry() *decode.Registry {
	presets := decode.Presets()
	byName := make(map[string]int, len(presets))
	for i, p := range presets {
		byName[p.Name] = i
	}
	for _, override := range c.Presets {
		if i, ok := byName[override.Name]; ok {
			presets[i] = override
		} else {
			presets = append(presets, override)
		}
	}

	r := decode.NewRegistry()
	for _, p := range presets {
		r.Register(&decode.CSVDecoder{Mapping: p})
	}
	r.Register(&decode.OFXDecoder{})
	return r
}
