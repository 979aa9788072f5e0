// Package config loads matching and deduplication settings from TOML
// configuration files and maps them onto the option types of the match and
// dedupe packages.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rvallat/crossfade/dedupe"
	"github.com/rvallat/crossfade/match"
)

type Config struct {
	Matching Matching `koanf:"matching"`
	Dedupe   Dedupe   `koanf:"dedupe"`
}

// Matching mirrors match.Options. Pointer fields distinguish "unset" from
// an explicit false so defaults can differ from the zero value.
type Matching struct {
	Strict            *bool `koanf:"strict"`             // default: true
	EnableDuration    *bool `koanf:"enable_duration"`    // default: true
	EnableAlbum       bool  `koanf:"enable_album"`       // default: false
	DurationTolerance int   `koanf:"duration_tolerance"` // seconds, 0 = mode default
}

type Dedupe struct {
	Threshold float64 `koanf:"threshold"` // 0 = dedupe.DefaultThreshold
}

// Load reads configuration files in priority order (XDG config dir first,
// then the working directory, last wins) and validates the result. Missing
// files are fine: the defaults describe a usable strict-mode setup.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	return unmarshal(k)
}

// LoadFile reads a single configuration file.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Matching.DurationTolerance < 0 {
		return fmt.Errorf("config: matching.duration_tolerance must not be negative, got %d",
			c.Matching.DurationTolerance)
	}
	if c.Dedupe.Threshold < 0 || c.Dedupe.Threshold > 1 {
		return fmt.Errorf("config: dedupe.threshold must be in [0,1], got %v", c.Dedupe.Threshold)
	}
	return nil
}

// MatchOptions converts the configuration into match.Options.
func (c *Config) MatchOptions() match.Options {
	opts := match.DefaultOptions()
	if c.Matching.Strict != nil {
		opts.Strict = *c.Matching.Strict
	}
	if c.Matching.EnableDuration != nil {
		opts.EnableDuration = *c.Matching.EnableDuration
	}
	opts.EnableAlbum = c.Matching.EnableAlbum
	opts.DurationTolerance = c.Matching.DurationTolerance
	return opts
}

// DedupeOptions converts the configuration into dedupe.Options.
func (c *Config) DedupeOptions() dedupe.Options {
	return dedupe.Options{Threshold: c.Dedupe.Threshold}
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "crossfade", "config.toml"),
		"crossfade.toml",
	}
}
