// Package project loads calclex.toml.
package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Formats accepted by [tokenize].format.
var Formats = []string{"pretty", "json", "msgpack"}

// Config mirrors calclex.toml.
type Config struct {
	Tokenize    TokenizeConfig    `toml:"tokenize"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Log         LogConfig         `toml:"log"`
}

type TokenizeConfig struct {
	Format    string `toml:"format"`
	Extension string `toml:"extension"`
	Jobs      int    `toml:"jobs"` // 0 = GOMAXPROCS
}

type DiagnosticsConfig struct {
	Color string `toml:"color"` // auto | on | off
	Max   int    `toml:"max"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tokenize: TokenizeConfig{
			Format:    "pretty",
			Extension: ".calc",
		},
		Diagnostics: DiagnosticsConfig{
			Color: "auto",
			Max:   100,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfig decodes path over Default. Keys the schema does not know are an
// error, so typos do not go silently unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Tokenize.Format) {
		return fmt.Errorf("[tokenize].format must be one of %s, got %q", strings.Join(Formats, "|"), c.Tokenize.Format)
	}
	if !strings.HasPrefix(c.Tokenize.Extension, ".") {
		return fmt.Errorf("[tokenize].extension must start with '.', got %q", c.Tokenize.Extension)
	}
	if c.Tokenize.Jobs < 0 {
		return fmt.Errorf("[tokenize].jobs must be >= 0, got %d", c.Tokenize.Jobs)
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[diagnostics].color must be auto|on|off, got %q", c.Diagnostics.Color)
	}
	if c.Diagnostics.Max <= 0 {
		return fmt.Errorf("[diagnostics].max must be > 0, got %d", c.Diagnostics.Max)
	}
	return nil
}
