// Package config loads an optional palladium.toml project file, following
// the default-then-override shape of ternarybob-iter's internal/config
// (a DefaultConfig constructor, a TOML-backed Load that merges onto it).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings `palladium build` needs beyond what a single
// CLI invocation's flags carry: where to put build output, which C
// compiler to invoke, how hard to optimize, and whether to keep the
// generated .c file around for inspection.
type Config struct {
	Build BuildConfig `toml:"build"`
}

// BuildConfig mirrors the flags cmd/palladium's build subcommand accepts,
// so a project can pin them once instead of repeating them on every
// invocation. CLI flags always take precedence over these values.
type BuildConfig struct {
	OutDir   string `toml:"out_dir"`
	CC       string `toml:"cc"`
	OptLevel string `toml:"opt_level"`
	KeepC    bool   `toml:"keep_c"`
}

// Default returns the configuration used when no palladium.toml is present.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			OutDir:   ".",
			CC:       "",
			OptLevel: "2",
			KeepC:    false,
		},
	}
}

// Load reads palladium.toml at path, merging decoded values onto the
// defaults. A missing file is not an error: it simply yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
