package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tool settings read from a TOML file
type Config struct {
	Log   Log   `toml:"log"`
	Store Store `toml:"store"`
	Pivot Pivot `toml:"pivot"`
}

type Log struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`
}

type Store struct {
	// Root bounds every save; meshes are never written outside of it
	Root string `toml:"root"`
	// Dir is the default save destination, relative to Root
	Dir string `toml:"dir"`
}

// Pivot holds the default bounding-box offsets, in percent
type Pivot struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
}

// Flags are command-line overrides; zero values leave the config untouched
type Flags struct {
	LogLevel  string
	StoreRoot string
	StoreDir  string
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Log:   Log{Level: "info"},
		Store: Store{Root: "assets", Dir: "meshes"},
	}
}

// Load reads a TOML config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse decodes TOML data on top of Default; name is only used in errors
func Parse(data []byte, name string) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", name, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides. Flags take priority when non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
	if flags.StoreRoot != "" {
		c.Store.Root = flags.StoreRoot
	}
	if flags.StoreDir != "" {
		c.Store.Dir = flags.StoreDir
	}
}

// Validate checks value ranges
func (c Config) Validate() error {
	for axis, v := range map[string]float64{"x": c.Pivot.X, "y": c.Pivot.Y, "z": c.Pivot.Z} {
		if !(v >= -100 && v <= 100) {
			return fmt.Errorf("pivot.%s = %v, want a percentage in [-100, 100]", axis, v)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	return nil
}
